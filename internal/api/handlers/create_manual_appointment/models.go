package create_manual_appointment

import (
	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ManualAppointmentRequest HTTP request model; клиент указывается ссылкой или текстом
type ManualAppointmentRequest struct {
	StaffID       int64   `json:"staffId"`
	ServiceIDs    []int64 `json:"serviceIds"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	ClientID      *int64  `json:"clientId,omitempty"`
	ClientInfo    *string `json:"clientInfo,omitempty"`
	PromotionCode *string `json:"promotionCode,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ManualAppointmentRequest) ToUseCaseRequest(businessID int64) (*createAppointment.Request, error) {
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
		Source:        domain.SourceManual,
		ClientID:      r.ClientID,
		ClientInfo:    r.ClientInfo,
		PromotionCode: r.PromotionCode,
		Notes:         r.Notes,
	}, nil
}
