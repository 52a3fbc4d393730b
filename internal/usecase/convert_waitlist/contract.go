package convert_waitlist

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	GetByID(ctx context.Context, businessID, id int64) (*domain.WaitlistEntry, error)
	Fulfill(ctx context.Context, cmd domain.FulfillCommand) (bool, error)
}

// AvailabilityChecker проверка занятости сотрудника
type AvailabilityChecker interface {
	Check(ctx context.Context, req availability.CheckRequest) (*availability.CheckResult, error)
}

// CatalogClient интерфейс каталога сотрудников
type CatalogClient interface {
	GetStaff(ctx context.Context, businessID, staffID int64) (*domain.Staff, error)
}

// SettingsProvider настройки бизнеса
type SettingsProvider interface {
	Get(ctx context.Context, businessID int64) (*domain.BusinessSettings, error)
}

// Notifier отправка уведомлений
type Notifier interface {
	Notify(ctx context.Context, kind domain.NotificationKind, recipient domain.Recipient, appointmentID int64, payload map[string]interface{}) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
