package models

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// UpdateSettingsRequest частичное обновление настроек; nil поля не меняются
type UpdateSettingsRequest struct {
	BusinessID    int64
	BufferMinutes *int
	Timezone      *string
	Cancellation  *CancellationPolicyUpdate
	Deposit       *DepositRulesUpdate
}

// CancellationPolicyUpdate изменения политики отмены
type CancellationPolicyUpdate struct {
	AllowCancellation      *bool
	HoursBeforeAppointment *float64
	PenaltyType            *domain.PenaltyType
	PenaltyAmount          *float64
}

// DepositRulesUpdate изменения правил депозита
type DepositRulesUpdate struct {
	Type   *domain.DepositType
	Amount *float64
}

// Apply применяет изменения к копии текущих настроек
func (r *UpdateSettingsRequest) Apply(current domain.BusinessSettings) *domain.BusinessSettings {
	updated := current

	if r.BufferMinutes != nil {
		updated.BufferMinutes = *r.BufferMinutes
	}
	if r.Timezone != nil {
		updated.Timezone = *r.Timezone
	}

	if c := r.Cancellation; c != nil {
		if c.AllowCancellation != nil {
			updated.Cancellation.AllowCancellation = *c.AllowCancellation
		}
		if c.HoursBeforeAppointment != nil {
			updated.Cancellation.HoursBeforeAppointment = *c.HoursBeforeAppointment
		}
		if c.PenaltyType != nil {
			updated.Cancellation.PenaltyType = *c.PenaltyType
		}
		if c.PenaltyAmount != nil {
			updated.Cancellation.PenaltyAmount = *c.PenaltyAmount
		}
	}

	if d := r.Deposit; d != nil {
		if d.Type != nil {
			updated.Deposit.Type = *d.Type
		}
		if d.Amount != nil {
			updated.Deposit.Amount = *d.Amount
		}
	}

	return &updated
}
