package settings

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек бизнеса
type SettingsRepository interface {
	Get(ctx context.Context, businessID int64) (*domain.BusinessSettings, error)
	Upsert(ctx context.Context, s *domain.BusinessSettings) (*domain.BusinessSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
