package domain

import (
	"fmt"
	"time"
)

// PenaltyType тип штрафа за позднюю отмену
type PenaltyType string

const (
	PenaltyNone       PenaltyType = "none"
	PenaltyPercentage PenaltyType = "percentage"
	PenaltyFixed      PenaltyType = "fixed"
)

// ErrCancellationNotAllowed бизнес запретил отмену записей
var ErrCancellationNotAllowed = fmt.Errorf("%w: cancellation is not allowed by business policy", ErrBadRequest)

// CancellationPolicy политика отмены бизнеса
type CancellationPolicy struct {
	AllowCancellation      bool
	HoursBeforeAppointment float64
	PenaltyType            PenaltyType
	PenaltyAmount          float64
}

// RefundResult результат расчёта возврата депозита
type RefundResult struct {
	PenaltyApplied bool
	PenaltyAmount  float64
	RefundAmount   float64
}

// CalculateRefund считает штраф и возврат депозита при отмене в момент now.
// Возврат всегда в пределах [0, deposit].
func CalculateRefund(startAt, now time.Time, policy CancellationPolicy, deposit float64) (RefundResult, error) {
	if !policy.AllowCancellation {
		return RefundResult{}, ErrCancellationNotAllowed
	}
	if deposit < 0 {
		deposit = 0
	}

	hoursUntil := startAt.Sub(now).Hours()
	if hoursUntil >= policy.HoursBeforeAppointment || policy.PenaltyType == PenaltyNone {
		return RefundResult{RefundAmount: deposit}, nil
	}

	var penalty float64
	switch policy.PenaltyType {
	case PenaltyPercentage:
		penalty = deposit * policy.PenaltyAmount / 100
	case PenaltyFixed:
		penalty = policy.PenaltyAmount
	default:
		return RefundResult{RefundAmount: deposit}, nil
	}
	penalty = clamp(penalty, 0, deposit)

	return RefundResult{
		PenaltyApplied: true,
		PenaltyAmount:  penalty,
		RefundAmount:   deposit - penalty,
	}, nil
}
