package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// KafkaNotifier публикует события в Kafka; топик совпадает с типом уведомления
type KafkaNotifier struct {
	writer MessageWriter
	log    Logger
	now    func() time.Time
}

// NewKafkaNotifier создает драйвер поверх kafka.Writer
func NewKafkaNotifier(brokers []string, log Logger) *KafkaNotifier {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
	}
	return NewKafkaNotifierWithWriter(writer, log)
}

// NewKafkaNotifierWithWriter создает драйвер с заданным writer
func NewKafkaNotifierWithWriter(writer MessageWriter, log Logger) *KafkaNotifier {
	return &KafkaNotifier{writer: writer, log: log, now: time.Now}
}

// Notify публикует событие; ключ сообщения - id записи, чтобы события одной записи шли по порядку
func (n *KafkaNotifier) Notify(ctx context.Context, kind domain.NotificationKind, recipient domain.Recipient, appointmentID int64, payload map[string]interface{}) error {
	event := newEvent(kind, recipient, appointmentID, payload, n.now())

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	msg := kafka.Message{
		Topic: string(kind),
		Key:   []byte(strconv.FormatInt(appointmentID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.ID)},
			{Key: "event_type", Value: []byte(kind)},
		},
	}
	msg.Headers = injectTraceHeaders(ctx, msg.Headers)

	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: kafka topic=%s: %v", ErrPublish, kind, err)
	}

	n.log.Info("Notifier: published %s for appointment_id=%d, event_id=%s", kind, appointmentID, event.ID)
	return nil
}

// Close закрывает writer
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
