package discounts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// PromotionRepository интерфейс репозитория промоакций
type PromotionRepository interface {
	Create(ctx context.Context, p *domain.Promotion) (*domain.Promotion, error)
	GetActiveByCode(ctx context.Context, businessID int64, code string, now time.Time) (*domain.Promotion, error)
	IncrementUsage(ctx context.Context, businessID, id int64) (bool, error)
	ListByBusiness(ctx context.Context, businessID int64) ([]*domain.Promotion, error)
}

// TimeProvider интерфейс для получения текущего времени
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
