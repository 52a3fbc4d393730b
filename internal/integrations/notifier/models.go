package notifier

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Event событие, которое получает сервис уведомлений
type Event struct {
	ID            string                  `json:"id"`
	Kind          domain.NotificationKind `json:"kind"`
	BusinessID    int64                   `json:"businessId"`
	StaffID       int64                   `json:"staffId"`
	ClientID      *int64                  `json:"clientId,omitempty"`
	AppointmentID int64                   `json:"appointmentId"`
	OccurredAt    time.Time               `json:"occurredAt"`
	Payload       map[string]interface{}  `json:"payload,omitempty"`
}

func newEvent(kind domain.NotificationKind, recipient domain.Recipient, appointmentID int64, payload map[string]interface{}, now time.Time) Event {
	return Event{
		ID:            uuid.NewString(),
		Kind:          kind,
		BusinessID:    recipient.BusinessID,
		StaffID:       recipient.StaffID,
		ClientID:      recipient.ClientID,
		AppointmentID: appointmentID,
		OccurredAt:    now.UTC(),
		Payload:       payload,
	}
}
