package get_free_slots

import (
	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// FreeSlotsRequest HTTP request model
type FreeSlotsRequest struct {
	StaffID     int64   `json:"staffId"`
	ServiceIDs  []int64 `json:"serviceIds"`
	Date        string  `json:"date"`
	From        string  `json:"from"` // начало окна, "09:00"
	To          string  `json:"to"`   // конец окна, "18:00"
	StepMinutes int     `json:"stepMinutes,omitempty"`
}

// SlotResponse свободный интервал
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FreeSlotsResponse HTTP response model
type FreeSlotsResponse struct {
	Date            string         `json:"date"`
	ServiceDuration int            `json:"serviceDuration"`
	TotalDuration   int            `json:"totalDuration"`
	Slots           []SlotResponse `json:"slots"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *FreeSlotsRequest) ToServiceRequest(businessID int64) (availability.FreeSlotsRequest, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return availability.FreeSlotsRequest{}, err
	}
	from, err := types.NewTimeStringFromString(r.From)
	if err != nil {
		return availability.FreeSlotsRequest{}, err
	}
	to, err := types.NewTimeStringFromString(r.To)
	if err != nil {
		return availability.FreeSlotsRequest{}, err
	}
	return availability.FreeSlotsRequest{
		BusinessID:  businessID,
		StaffID:     r.StaffID,
		ServiceIDs:  r.ServiceIDs,
		Date:        date,
		From:        from,
		To:          to,
		StepMinutes: r.StepMinutes,
	}, nil
}

func fromResult(date string, res *availability.FreeSlotsResult) *FreeSlotsResponse {
	slots := make([]SlotResponse, 0, len(res.Slots))
	for _, s := range res.Slots {
		slots = append(slots, SlotResponse{StartTime: s.StartTime.String(), EndTime: s.EndTime.String()})
	}
	return &FreeSlotsResponse{
		Date:            date,
		ServiceDuration: res.ServiceDuration,
		TotalDuration:   res.TotalDuration,
		Slots:           slots,
	}
}
