package get_settings

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type SettingsService interface {
	Get(ctx context.Context, businessID int64) (*domain.BusinessSettings, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
