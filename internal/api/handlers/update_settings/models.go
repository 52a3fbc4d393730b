package update_settings

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
)

// UpdateSettingsRequest HTTP request model; отсутствующие поля не меняются
type UpdateSettingsRequest struct {
	BufferMinutes      *int                      `json:"bufferMinutes,omitempty"`
	Timezone           *string                   `json:"timezone,omitempty"`
	CancellationPolicy *CancellationPolicyUpdate `json:"cancellationPolicy,omitempty"`
	DepositRules       *DepositRulesUpdate       `json:"depositRules,omitempty"`
}

// CancellationPolicyUpdate изменения политики отмены
type CancellationPolicyUpdate struct {
	AllowCancellation      *bool    `json:"allowCancellation,omitempty"`
	HoursBeforeAppointment *float64 `json:"hoursBeforeAppointment,omitempty"`
	PenaltyType            *string  `json:"penaltyType,omitempty"`
	PenaltyAmount          *float64 `json:"penaltyAmount,omitempty"`
}

// DepositRulesUpdate изменения правил депозита
type DepositRulesUpdate struct {
	Type   *string  `json:"type,omitempty"`
	Amount *float64 `json:"amount,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest(businessID int64) *models.UpdateSettingsRequest {
	req := &models.UpdateSettingsRequest{
		BusinessID:    businessID,
		BufferMinutes: r.BufferMinutes,
		Timezone:      r.Timezone,
	}

	if c := r.CancellationPolicy; c != nil {
		req.Cancellation = &models.CancellationPolicyUpdate{
			AllowCancellation:      c.AllowCancellation,
			HoursBeforeAppointment: c.HoursBeforeAppointment,
			PenaltyAmount:          c.PenaltyAmount,
		}
		if c.PenaltyType != nil {
			penaltyType := domain.PenaltyType(*c.PenaltyType)
			req.Cancellation.PenaltyType = &penaltyType
		}
	}

	if d := r.DepositRules; d != nil {
		req.Deposit = &models.DepositRulesUpdate{Amount: d.Amount}
		if d.Type != nil {
			depositType := domain.DepositType(*d.Type)
			req.Deposit.Type = &depositType
		}
	}

	return req
}
