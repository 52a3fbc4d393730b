package create_promotion

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/discounts"
)

// CreatePromotionRequest HTTP request model; validFrom/validUntil в RFC3339
type CreatePromotionRequest struct {
	Code              string   `json:"code"`
	Name              string   `json:"name"`
	DiscountType      string   `json:"discountType"` // percentage | fixed
	Value             float64  `json:"value"`
	MaxDiscountAmount *float64 `json:"maxDiscountAmount,omitempty"`
	ValidFrom         string   `json:"validFrom"`
	ValidUntil        string   `json:"validUntil"`
	MinPurchase       float64  `json:"minPurchase"`
	ServiceIDs        []int64  `json:"serviceIds,omitempty"`
	MaxUses           *int     `json:"maxUses,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса; даты в RFC3339
func (r *CreatePromotionRequest) ToServiceRequest(businessID int64) (*discounts.CreatePromotionRequest, error) {
	validFrom, err := time.Parse(time.RFC3339, r.ValidFrom)
	if err != nil {
		return nil, fmt.Errorf("invalid validFrom: %w", err)
	}
	validUntil, err := time.Parse(time.RFC3339, r.ValidUntil)
	if err != nil {
		return nil, fmt.Errorf("invalid validUntil: %w", err)
	}
	return &discounts.CreatePromotionRequest{
		BusinessID:        businessID,
		Code:              r.Code,
		Name:              r.Name,
		DiscountType:      domain.DiscountType(r.DiscountType),
		Value:             r.Value,
		MaxDiscountAmount: r.MaxDiscountAmount,
		ValidFrom:         validFrom,
		ValidUntil:        validUntil,
		MinPurchase:       r.MinPurchase,
		ServiceIDs:        r.ServiceIDs,
		MaxUses:           r.MaxUses,
	}, nil
}
