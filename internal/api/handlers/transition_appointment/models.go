package transition_appointment

import (
	transitionAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/transition_appointment"
)

// TransitionRequest необязательное тело действия: чаевые при complete, причина при cancel
type TransitionRequest struct {
	Tip    *float64 `json:"tip,omitempty"`
	Reason *string  `json:"reason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *TransitionRequest) ToUseCaseRequest(businessID, appointmentID int64, action string) *transitionAppointment.Request {
	return &transitionAppointment.Request{
		BusinessID:    businessID,
		AppointmentID: appointmentID,
		Action:        action,
		Tip:           r.Tip,
		Reason:        r.Reason,
	}
}
