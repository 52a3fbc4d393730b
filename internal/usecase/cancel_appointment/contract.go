package cancel_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, businessID, id int64) (*domain.Appointment, error)
	ConditionalTransition(ctx context.Context, cmd domain.TransitionCommand) (bool, error)
}

// SettingsProvider настройки бизнеса с политикой отмены
type SettingsProvider interface {
	Get(ctx context.Context, businessID int64) (*domain.BusinessSettings, error)
}

// ClientServiceClient интерфейс клиента для ClientService
type ClientServiceClient interface {
	IncrementCancelledCount(ctx context.Context, clientID int64) error
}

// Notifier отправка уведомлений
type Notifier interface {
	Notify(ctx context.Context, kind domain.NotificationKind, recipient domain.Recipient, appointmentID int64, payload map[string]interface{}) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
