package convert_waitlist

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request запрос на превращение заявки в запись
type Request struct {
	BusinessID int64
	EntryID    int64
	StaffID    *int64 // nil - предпочитаемый сотрудник из заявки
	Date       time.Time
	StartTime  types.TimeString
	Notes      *string
}

// Response созданная запись
type Response struct {
	Appointment *domain.Appointment
	EntryID     int64
}
