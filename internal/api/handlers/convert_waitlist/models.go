package convert_waitlist

import (
	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	convertWaitlist "github.com/m04kA/SMC-AppointmentService/internal/usecase/convert_waitlist"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ConvertWaitlistRequest предложенное время; staffId по умолчанию из заявки
type ConvertWaitlistRequest struct {
	StaffID   *int64  `json:"staffId,omitempty"`
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	Notes     *string `json:"notes,omitempty"`
}

// ConvertWaitlistResponse созданная запись и закрытая заявка
type ConvertWaitlistResponse struct {
	EntryID     int64                         `json:"entryId"`
	Appointment *handlers.AppointmentResponse `json:"appointment"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель usecase
func (r *ConvertWaitlistRequest) ToUseCaseRequest(businessID, entryID int64) (*convertWaitlist.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	return &convertWaitlist.Request{
		BusinessID: businessID,
		EntryID:    entryID,
		StaffID:    r.StaffID,
		Date:       date,
		StartTime:  startTime,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP ответ
func FromUseCaseResponse(resp *convertWaitlist.Response) *ConvertWaitlistResponse {
	return &ConvertWaitlistResponse{
		EntryID:     resp.EntryID,
		Appointment: handlers.FromAppointment(resp.Appointment),
	}
}
