package domain

import (
	"strings"
	"time"
)

// DiscountType тип скидки промоакции
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// PromotionStatus статус промоакции
type PromotionStatus string

const (
	PromotionActive   PromotionStatus = "active"
	PromotionInactive PromotionStatus = "inactive"
)

// Promotion промоакция с кодом
type Promotion struct {
	ID         int64
	BusinessID int64
	Code       string // всегда в верхнем регистре
	Name       string

	DiscountType      DiscountType
	Value             float64
	MaxDiscountAmount *float64 // только для процентных скидок

	ValidFrom   time.Time
	ValidUntil  time.Time
	MinPurchase float64
	ServiceIDs  []int64 // пусто - действует на все услуги

	UsesCount int
	MaxUses   *int

	Status    PromotionStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizePromotionCode приводит код к виду, в котором он хранится
func NormalizePromotionCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsWithinValidity returns true if validFrom <= now <= validUntil
func (p *Promotion) IsWithinValidity(now time.Time) bool {
	return !now.Before(p.ValidFrom) && !now.After(p.ValidUntil)
}

// HasUsesLeft returns true if the usage limit is not reached or not set
func (p *Promotion) HasUsesLeft() bool {
	return p.MaxUses == nil || p.UsesCount < *p.MaxUses
}

// IsUsable returns true for an active promotion inside its window with uses left
func (p *Promotion) IsUsable(now time.Time) bool {
	return p.Status == PromotionActive && p.IsWithinValidity(now) && p.HasUsesLeft()
}

// AppliesToServices returns true if the promotion is not restricted
// or at least one of serviceIDs is in its allow-list
func (p *Promotion) AppliesToServices(serviceIDs []int64) bool {
	if len(p.ServiceIDs) == 0 {
		return true
	}
	allowed := make(map[int64]struct{}, len(p.ServiceIDs))
	for _, id := range p.ServiceIDs {
		allowed[id] = struct{}{}
	}
	for _, id := range serviceIDs {
		if _, ok := allowed[id]; ok {
			return true
		}
	}
	return false
}

// CalculateDiscountAmount считает скидку без округления.
// Процентная скидка ограничивается MaxDiscountAmount, фиксированная не ограничивается суммой.
func CalculateDiscountAmount(p *Promotion, subtotal float64) float64 {
	switch p.DiscountType {
	case DiscountPercentage:
		amount := subtotal * p.Value / 100
		if p.MaxDiscountAmount != nil && amount > *p.MaxDiscountAmount {
			return *p.MaxDiscountAmount
		}
		return amount
	case DiscountFixed:
		return p.Value
	default:
		return 0
	}
}

// DiscountRejection причина, по которой промокод не применился
type DiscountRejection string

const (
	RejectionNone            DiscountRejection = ""
	RejectionUsageLimit      DiscountRejection = "usage_limit_reached"
	RejectionMinPurchase     DiscountRejection = "below_min_purchase"
	RejectionServiceMismatch DiscountRejection = "services_not_eligible"
)

// CheckEligibility returns the first reason the promotion cannot be applied to the cart
func (p *Promotion) CheckEligibility(subtotal float64, serviceIDs []int64) DiscountRejection {
	switch {
	case !p.HasUsesLeft():
		return RejectionUsageLimit
	case subtotal < p.MinPurchase:
		return RejectionMinPurchase
	case !p.AppliesToServices(serviceIDs):
		return RejectionServiceMismatch
	default:
		return RejectionNone
	}
}
