package handlers

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// CancellationPolicyResponse политика отмены
type CancellationPolicyResponse struct {
	AllowCancellation      bool    `json:"allowCancellation"`
	HoursBeforeAppointment float64 `json:"hoursBeforeAppointment"`
	PenaltyType            string  `json:"penaltyType"`
	PenaltyAmount          float64 `json:"penaltyAmount"`
}

// DepositRulesResponse правила депозита
type DepositRulesResponse struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

// SettingsResponse настройки бизнеса
type SettingsResponse struct {
	BusinessID    int64                      `json:"businessId"`
	BufferMinutes int                        `json:"bufferMinutes"`
	Timezone      string                     `json:"timezone"`
	Cancellation  CancellationPolicyResponse `json:"cancellationPolicy"`
	Deposit       DepositRulesResponse       `json:"depositRules"`
}

func FromSettings(s *domain.BusinessSettings) *SettingsResponse {
	return &SettingsResponse{
		BusinessID:    s.BusinessID,
		BufferMinutes: s.BufferMinutes,
		Timezone:      s.Timezone,
		Cancellation: CancellationPolicyResponse{
			AllowCancellation:      s.Cancellation.AllowCancellation,
			HoursBeforeAppointment: s.Cancellation.HoursBeforeAppointment,
			PenaltyType:            string(s.Cancellation.PenaltyType),
			PenaltyAmount:          s.Cancellation.PenaltyAmount,
		},
		Deposit: DepositRulesResponse{
			Type:   string(s.Deposit.Type),
			Amount: s.Deposit.Amount,
		},
	}
}
