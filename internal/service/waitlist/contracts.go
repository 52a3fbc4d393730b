package waitlist

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	Create(ctx context.Context, e *domain.WaitlistEntry) (*domain.WaitlistEntry, error)
	GetByID(ctx context.Context, businessID, id int64) (*domain.WaitlistEntry, error)
	ListActive(ctx context.Context, filter domain.WaitlistFilter) ([]*domain.WaitlistEntry, error)
	Cancel(ctx context.Context, businessID, id int64) (bool, error)
}

// CatalogClient проверка услуг и сотрудников
type CatalogClient interface {
	GetService(ctx context.Context, businessID, serviceID int64) (*domain.Service, error)
	GetStaff(ctx context.Context, businessID, staffID int64) (*domain.Staff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
