package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeWriter struct {
	messages []kafka.Message
	err      error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (e *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{ID: "task-1"}, nil
}

func (e *fakeEnqueuer) Close() error { return nil }

func headerValue(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func tracedContext(t *testing.T) context.Context {
	t.Helper()

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc)
}

func TestKafkaNotifier_Notify(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})

	writer := &fakeWriter{}
	n := NewKafkaNotifierWithWriter(writer, nopLogger{})
	n.now = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }

	clientID := int64(5)
	recipient := domain.Recipient{BusinessID: 1, StaffID: 2, ClientID: &clientID}

	err := n.Notify(tracedContext(t), domain.NotificationAppointmentConfirmed, recipient, 77, map[string]interface{}{"date": "2025-03-02"})
	require.NoError(t, err)
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "appointment.confirmed", msg.Topic)
	assert.Equal(t, "77", string(msg.Key))
	assert.Equal(t, "appointment.confirmed", headerValue(msg.Headers, "event_type"))
	assert.NotEmpty(t, headerValue(msg.Headers, "event_id"))
	assert.Contains(t, headerValue(msg.Headers, "traceparent"), "4bf92f3577b34da6a3ce929d0e0e4736")

	var event Event
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, headerValue(msg.Headers, "event_id"), event.ID)
	assert.Equal(t, int64(77), event.AppointmentID)
	assert.Equal(t, int64(1), event.BusinessID)
	require.NotNil(t, event.ClientID)
	assert.Equal(t, int64(5), *event.ClientID)
}

func TestKafkaNotifier_WriteError(t *testing.T) {
	writer := &fakeWriter{err: errors.New("broker down")}
	n := NewKafkaNotifierWithWriter(writer, nopLogger{})

	err := n.Notify(context.Background(), domain.NotificationAppointmentBooked, domain.Recipient{BusinessID: 1}, 1, nil)
	assert.ErrorIs(t, err, ErrPublish)
}

func TestAsynqNotifier_Notify(t *testing.T) {
	enqueuer := &fakeEnqueuer{}
	n := NewAsynqNotifierWithClient(enqueuer, "", nopLogger{})

	err := n.Notify(context.Background(), domain.NotificationWaitlistConverted, domain.Recipient{BusinessID: 3, StaffID: 4}, 9, nil)
	require.NoError(t, err)
	require.Len(t, enqueuer.tasks, 1)

	task := enqueuer.tasks[0]
	assert.Equal(t, TypeSendNotification, task.Type())

	var event Event
	require.NoError(t, json.Unmarshal(task.Payload(), &event))
	assert.Equal(t, domain.NotificationWaitlistConverted, event.Kind)
	assert.Equal(t, int64(9), event.AppointmentID)
}

func TestAsynqNotifier_EnqueueError(t *testing.T) {
	n := NewAsynqNotifierWithClient(&fakeEnqueuer{err: errors.New("redis down")}, "notifications", nopLogger{})

	err := n.Notify(context.Background(), domain.NotificationAppointmentCancelled, domain.Recipient{}, 1, nil)
	assert.ErrorIs(t, err, ErrPublish)
}

func TestNew(t *testing.T) {
	n, err := New(Config{Driver: DriverLog}, nopLogger{})
	require.NoError(t, err)
	assert.IsType(t, &LogNotifier{}, n)

	_, err = New(Config{Driver: DriverKafka}, nopLogger{})
	assert.ErrorIs(t, err, ErrMisconfigured)

	_, err = New(Config{Driver: "smtp"}, nopLogger{})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, SplitBrokers(" a:9092, ,b:9092 "))
	assert.Nil(t, SplitBrokers(""))
}
