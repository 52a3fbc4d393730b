package cancel_appointment

import (
	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	cancelAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/cancel_appointment"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// RefundResponse расчёт возврата депозита
type RefundResponse struct {
	PenaltyApplied bool    `json:"penaltyApplied"`
	PenaltyAmount  float64 `json:"penaltyAmount"`
	RefundAmount   float64 `json:"refundAmount"`
}

// CancelAppointmentResponse HTTP response model
type CancelAppointmentResponse struct {
	Appointment *handlers.AppointmentResponse `json:"appointment"`
	Refund      RefundResponse                `json:"refund"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelAppointmentRequest) ToUseCaseRequest(businessID, appointmentID, clientID int64) *cancelAppointment.Request {
	return &cancelAppointment.Request{
		BusinessID:    businessID,
		AppointmentID: appointmentID,
		ClientID:      clientID,
		Reason:        r.Reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelAppointment.Response) *CancelAppointmentResponse {
	return &CancelAppointmentResponse{
		Appointment: handlers.FromAppointment(resp.Appointment),
		Refund: RefundResponse{
			PenaltyApplied: resp.Refund.PenaltyApplied,
			PenaltyAmount:  resp.Refund.PenaltyAmount,
			RefundAmount:   resp.Refund.RefundAmount,
		},
	}
}
