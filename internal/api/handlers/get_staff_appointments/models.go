package get_staff_appointments

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// StaffAppointmentsResponse записи сотрудника за день
type StaffAppointmentsResponse struct {
	StaffID      int64                           `json:"staffId"`
	Date         string                          `json:"date"`
	Appointments []*handlers.AppointmentResponse `json:"appointments"`
}

// parseFilter собирает фильтр из query: date обязателен, includeInactive по умолчанию false
func parseFilter(businessID, staffID int64, query url.Values) (domain.StaffDayFilter, error) {
	filter := domain.StaffDayFilter{
		BusinessID: businessID,
		StaffID:    staffID,
	}

	date, err := handlers.ParseDate(query.Get("date"))
	if err != nil {
		return filter, fmt.Errorf("invalid date: %w", err)
	}
	filter.Date = date

	if raw := query.Get("includeInactive"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid includeInactive: %w", err)
		}
		filter.IncludeInactive = include
	}

	return filter, nil
}
