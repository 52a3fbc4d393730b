package check_availability

import (
	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	StaffID              int64   `json:"staffId"`
	ServiceIDs           []int64 `json:"serviceIds"`
	Date                 string  `json:"date"`      // "2025-10-15"
	StartTime            string  `json:"startTime"` // "10:00"
	ExcludeAppointmentID *int64  `json:"excludeAppointmentId,omitempty"`
}

// CheckAvailabilityResponse HTTP response model
type CheckAvailabilityResponse struct {
	Available       bool                             `json:"available"`
	StartTime       string                           `json:"startTime"`
	EndTime         string                           `json:"endTime"`
	ServiceDuration int                              `json:"serviceDuration"`
	BufferMinutes   int                              `json:"bufferMinutes"`
	TotalDuration   int                              `json:"totalDuration"`
	Services        []handlers.BookedServiceResponse `json:"services"`
	ConflictIDs     []int64                          `json:"conflictingAppointmentIds"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CheckAvailabilityRequest) ToServiceRequest(businessID int64) (availability.CheckRequest, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return availability.CheckRequest{}, err
	}
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return availability.CheckRequest{}, err
	}
	return availability.CheckRequest{
		BusinessID:           businessID,
		StaffID:              r.StaffID,
		ServiceIDs:           r.ServiceIDs,
		Date:                 date,
		StartTime:            startTime,
		ExcludeAppointmentID: r.ExcludeAppointmentID,
	}, nil
}

// FromCheckResult конвертирует результат проверки в HTTP response
func FromCheckResult(res *availability.CheckResult) *CheckAvailabilityResponse {
	services := make([]handlers.BookedServiceResponse, 0, len(res.Services))
	for _, s := range res.Services {
		services = append(services, handlers.BookedServiceResponse{
			ServiceID:       s.ServiceID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		})
	}
	return &CheckAvailabilityResponse{
		Available:       res.Available,
		StartTime:       res.StartTime.String(),
		EndTime:         res.EndTime.String(),
		ServiceDuration: res.ServiceDuration,
		BufferMinutes:   res.BufferMinutes,
		TotalDuration:   res.TotalDuration,
		Services:        services,
		ConflictIDs:     res.ConflictIDs,
	}
}
