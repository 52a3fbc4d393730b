package create_appointment

import (
	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	StaffID       int64   `json:"staffId"`
	ServiceIDs    []int64 `json:"serviceIds"`
	Date          string  `json:"date"`      // "2025-10-15"
	StartTime     string  `json:"startTime"` // "10:00"
	PromotionCode *string `json:"promotionCode,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// CreateAppointmentResponse HTTP response model
type CreateAppointmentResponse struct {
	*handlers.AppointmentResponse
	ServiceDuration int `json:"serviceDuration"`
	BufferMinutes   int `json:"bufferMinutes"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case; клиент берётся из X-User-ID
func (r *CreateAppointmentRequest) ToUseCaseRequest(businessID, clientID int64) (*createAppointment.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	return &createAppointment.Request{
		BusinessID:    businessID,
		StaffID:       r.StaffID,
		ServiceIDs:    r.ServiceIDs,
		Date:          date,
		StartTime:     startTime,
		Source:        domain.SourceOnline,
		ClientID:      &clientID,
		PromotionCode: r.PromotionCode,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *CreateAppointmentResponse {
	return &CreateAppointmentResponse{
		AppointmentResponse: handlers.FromAppointment(resp.Appointment),
		ServiceDuration:     resp.ServiceDuration,
		BufferMinutes:       resp.BufferMinutes,
	}
}
