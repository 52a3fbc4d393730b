package create_waitlist_entry

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/waitlist"
)

type WaitlistService interface {
	Create(ctx context.Context, req *waitlist.CreateEntryRequest) (*domain.WaitlistEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
