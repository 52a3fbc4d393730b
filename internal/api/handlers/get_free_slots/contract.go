package get_free_slots

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
)

type AvailabilityService interface {
	FreeSlots(ctx context.Context, req availability.FreeSlotsRequest) (*availability.FreeSlotsResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
