package convert_waitlist

import (
	"context"

	convertWaitlist "github.com/m04kA/SMC-AppointmentService/internal/usecase/convert_waitlist"
)

type ConvertWaitlistUseCase interface {
	Execute(ctx context.Context, req *convertWaitlist.Request) (*convertWaitlist.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
