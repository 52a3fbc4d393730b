package availability

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository чтение занятости сотрудника
type AppointmentRepository interface {
	FindConflicting(ctx context.Context, filter domain.StaffDayFilter) ([]*domain.Appointment, error)
}

// CatalogClient источник длительностей и цен услуг
type CatalogClient interface {
	GetService(ctx context.Context, businessID, serviceID int64) (*domain.Service, error)
}

// SettingsProvider настройки бизнеса (буфер, часовой пояс)
type SettingsProvider interface {
	Get(ctx context.Context, businessID int64) (*domain.BusinessSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
