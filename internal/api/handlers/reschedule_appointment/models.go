package reschedule_appointment

import (
	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	rescheduleAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// RescheduleRequest новое время записи; staffId не обязателен
type RescheduleRequest struct {
	StaffID   *int64 `json:"staffId,omitempty"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(businessID, appointmentID int64) (*rescheduleAppointment.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	return &rescheduleAppointment.Request{
		BusinessID:    businessID,
		AppointmentID: appointmentID,
		StaffID:       r.StaffID,
		Date:          date,
		StartTime:     startTime,
	}, nil
}
