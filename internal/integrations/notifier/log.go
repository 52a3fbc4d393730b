package notifier

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// LogNotifier только пишет событие в лог; используется локально и в тестовых стендах
type LogNotifier struct {
	log Logger
}

// NewLogNotifier создает драйвер-заглушку
func NewLogNotifier(log Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify пишет событие в лог
func (n *LogNotifier) Notify(_ context.Context, kind domain.NotificationKind, recipient domain.Recipient, appointmentID int64, payload map[string]interface{}) error {
	n.log.Info("Notifier: %s appointment_id=%d business_id=%d staff_id=%d payload=%v",
		kind, appointmentID, recipient.BusinessID, recipient.StaffID, payload)
	return nil
}

// Close ничего не делает
func (n *LogNotifier) Close() error {
	return nil
}
