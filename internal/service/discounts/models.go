package discounts

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ValidateRequest запрос проверки промокода для корзины
type ValidateRequest struct {
	BusinessID int64
	Code       string
	Subtotal   float64
	ServiceIDs []int64
}

// ValidateResult результат проверки. Неприменимый промокод не является ошибкой.
type ValidateResult struct {
	Applicable     bool
	Reason         domain.DiscountRejection
	Promotion      *domain.Promotion
	DiscountAmount float64
	FinalAmount    float64
}

// CreatePromotionRequest запрос на создание промоакции
type CreatePromotionRequest struct {
	BusinessID        int64
	Code              string
	Name              string
	DiscountType      domain.DiscountType
	Value             float64
	MaxDiscountAmount *float64
	ValidFrom         time.Time
	ValidUntil        time.Time
	MinPurchase       float64
	ServiceIDs        []int64
	MaxUses           *int
}

// ToDomain собирает промоакцию из запроса
func (r *CreatePromotionRequest) ToDomain() *domain.Promotion {
	return &domain.Promotion{
		BusinessID:        r.BusinessID,
		Code:              domain.NormalizePromotionCode(r.Code),
		Name:              r.Name,
		DiscountType:      r.DiscountType,
		Value:             r.Value,
		MaxDiscountAmount: r.MaxDiscountAmount,
		ValidFrom:         r.ValidFrom,
		ValidUntil:        r.ValidUntil,
		MinPurchase:       r.MinPurchase,
		ServiceIDs:        r.ServiceIDs,
		MaxUses:           r.MaxUses,
		Status:            domain.PromotionActive,
	}
}
