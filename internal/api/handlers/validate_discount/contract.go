package validate_discount

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/discounts"
)

type DiscountService interface {
	Validate(ctx context.Context, req discounts.ValidateRequest) (*discounts.ValidateResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
