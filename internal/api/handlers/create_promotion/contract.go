package create_promotion

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/discounts"
)

type DiscountService interface {
	Create(ctx context.Context, req *discounts.CreatePromotionRequest) (*domain.Promotion, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
