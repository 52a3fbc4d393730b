package handlers

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// PromotionResponse промоакция в ответах API
type PromotionResponse struct {
	ID                int64    `json:"id"`
	Code              string   `json:"code"`
	Name              string   `json:"name"`
	DiscountType      string   `json:"discountType"`
	Value             float64  `json:"value"`
	MaxDiscountAmount *float64 `json:"maxDiscountAmount,omitempty"`
	ValidFrom         string   `json:"validFrom"`
	ValidUntil        string   `json:"validUntil"`
	MinPurchase       float64  `json:"minPurchase"`
	ServiceIDs        []int64  `json:"serviceIds"`
	UsesCount         int      `json:"usesCount"`
	MaxUses           *int     `json:"maxUses,omitempty"`
	Status            string   `json:"status"`
}

func FromPromotion(p *domain.Promotion) *PromotionResponse {
	serviceIDs := p.ServiceIDs
	if serviceIDs == nil {
		serviceIDs = []int64{}
	}
	return &PromotionResponse{
		ID:                p.ID,
		Code:              p.Code,
		Name:              p.Name,
		DiscountType:      string(p.DiscountType),
		Value:             p.Value,
		MaxDiscountAmount: p.MaxDiscountAmount,
		ValidFrom:         p.ValidFrom.Format(time.RFC3339),
		ValidUntil:        p.ValidUntil.Format(time.RFC3339),
		MinPurchase:       p.MinPurchase,
		ServiceIDs:        serviceIDs,
		UsesCount:         p.UsesCount,
		MaxUses:           p.MaxUses,
		Status:            string(p.Status),
	}
}

func FromPromotions(list []*domain.Promotion) []*PromotionResponse {
	result := make([]*PromotionResponse, 0, len(list))
	for _, p := range list {
		result = append(result, FromPromotion(p))
	}
	return result
}
