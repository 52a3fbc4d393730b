package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// TypeSendNotification тип задачи asynq для воркера уведомлений
const TypeSendNotification = "notification:send"

const defaultMaxRetry = 5

// AsynqNotifier ставит события в очередь asynq (Redis)
type AsynqNotifier struct {
	client TaskEnqueuer
	queue  string
	log    Logger
	now    func() time.Time
}

// NewAsynqNotifier создает драйвер поверх asynq.Client
func NewAsynqNotifier(redisAddr, redisPassword string, redisDB int, queue string, log Logger) *AsynqNotifier {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})
	return NewAsynqNotifierWithClient(client, queue, log)
}

// NewAsynqNotifierWithClient создает драйвер с заданным клиентом очереди
func NewAsynqNotifierWithClient(client TaskEnqueuer, queue string, log Logger) *AsynqNotifier {
	if queue == "" {
		queue = "default"
	}
	return &AsynqNotifier{client: client, queue: queue, log: log, now: time.Now}
}

// NewNotificationTask собирает задачу asynq для события
func NewNotificationTask(event Event) (*asynq.Task, error) {
	b, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return asynq.NewTask(TypeSendNotification, b), nil
}

// Notify ставит задачу в очередь; id события служит id задачи
func (n *AsynqNotifier) Notify(ctx context.Context, kind domain.NotificationKind, recipient domain.Recipient, appointmentID int64, payload map[string]interface{}) error {
	event := newEvent(kind, recipient, appointmentID, payload, n.now())

	task, err := NewNotificationTask(event)
	if err != nil {
		return err
	}

	info, err := n.client.EnqueueContext(ctx, task,
		asynq.Queue(n.queue),
		asynq.TaskID(event.ID),
		asynq.MaxRetry(defaultMaxRetry),
	)
	if err != nil {
		return fmt.Errorf("%w: asynq queue=%s: %v", ErrPublish, n.queue, err)
	}

	taskID := event.ID
	if info != nil {
		taskID = info.ID
	}
	n.log.Info("Notifier: enqueued %s for appointment_id=%d, task_id=%s", kind, appointmentID, taskID)
	return nil
}

// Close закрывает клиента очереди
func (n *AsynqNotifier) Close() error {
	return n.client.Close()
}
