package list_promotions

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type DiscountService interface {
	List(ctx context.Context, businessID int64) ([]*domain.Promotion, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
