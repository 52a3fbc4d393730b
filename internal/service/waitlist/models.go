package waitlist

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// CreateEntryRequest запрос на постановку в лист ожидания
type CreateEntryRequest struct {
	BusinessID       int64
	ClientID         int64
	ServiceIDs       []int64
	PreferredStaffID *int64
	DateFrom         *time.Time
	DateTo           *time.Time
	TimeFrom         *types.TimeString
	TimeTo           *types.TimeString
	DaysOfWeek       []int
	Priority         domain.WaitlistPriority
	Notes            *string
}

// ToDomain собирает заявку из запроса
func (r *CreateEntryRequest) ToDomain() *domain.WaitlistEntry {
	priority := r.Priority
	if priority == "" {
		priority = domain.PriorityNormal
	}
	days := r.DaysOfWeek
	if days == nil {
		days = []int{}
	}

	return &domain.WaitlistEntry{
		BusinessID:       r.BusinessID,
		ClientID:         r.ClientID,
		ServiceIDs:       r.ServiceIDs,
		PreferredStaffID: r.PreferredStaffID,
		DateFrom:         r.DateFrom,
		DateTo:           r.DateTo,
		TimeFrom:         r.TimeFrom,
		TimeTo:           r.TimeTo,
		DaysOfWeek:       days,
		Priority:         priority,
		Status:           domain.WaitlistActive,
		Notes:            r.Notes,
	}
}
