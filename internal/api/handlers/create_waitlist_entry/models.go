package create_waitlist_entry

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/waitlist"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// CreateWaitlistEntryRequest HTTP request model; все ограничения, кроме услуг, необязательны
type CreateWaitlistEntryRequest struct {
	ServiceIDs       []int64 `json:"serviceIds"`
	PreferredStaffID *int64  `json:"preferredStaffId,omitempty"`
	DateFrom         *string `json:"dateFrom,omitempty"`
	DateTo           *string `json:"dateTo,omitempty"`
	TimeFrom         *string `json:"timeFrom,omitempty"`
	TimeTo           *string `json:"timeTo,omitempty"`
	DaysOfWeek       []int   `json:"daysOfWeek,omitempty"`
	Priority         string  `json:"priority,omitempty"` // normal | vip
	Notes            *string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса; клиент берётся из X-User-ID
func (r *CreateWaitlistEntryRequest) ToServiceRequest(businessID, clientID int64) (*waitlist.CreateEntryRequest, error) {
	req := &waitlist.CreateEntryRequest{
		BusinessID:       businessID,
		ClientID:         clientID,
		ServiceIDs:       r.ServiceIDs,
		PreferredStaffID: r.PreferredStaffID,
		DaysOfWeek:       r.DaysOfWeek,
		Priority:         domain.WaitlistPriority(r.Priority),
		Notes:            r.Notes,
	}
	if req.Priority == "" {
		req.Priority = domain.PriorityNormal
	}

	var err error
	if req.DateFrom, err = parseOptionalDate(r.DateFrom); err != nil {
		return nil, fmt.Errorf("invalid dateFrom: %w", err)
	}
	if req.DateTo, err = parseOptionalDate(r.DateTo); err != nil {
		return nil, fmt.Errorf("invalid dateTo: %w", err)
	}
	if req.TimeFrom, err = parseOptionalTime(r.TimeFrom); err != nil {
		return nil, fmt.Errorf("invalid timeFrom: %w", err)
	}
	if req.TimeTo, err = parseOptionalTime(r.TimeTo); err != nil {
		return nil, fmt.Errorf("invalid timeTo: %w", err)
	}

	return req, nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	date, err := handlers.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func parseOptionalTime(s *string) (*types.TimeString, error) {
	if s == nil {
		return nil, nil
	}
	t, err := types.NewTimeStringFromString(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
