package get_waitlist_entry

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type WaitlistService interface {
	GetByID(ctx context.Context, businessID, id int64) (*domain.WaitlistEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
