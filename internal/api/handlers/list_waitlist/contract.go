package list_waitlist

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type WaitlistService interface {
	ListActive(ctx context.Context, filter domain.WaitlistFilter) ([]*domain.WaitlistEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
