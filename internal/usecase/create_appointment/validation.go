package create_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest проверяет структуру запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 || req.StaffID <= 0 {
		return fmt.Errorf("%w: business and staff ids are required", ErrInvalidInput)
	}
	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	if len(req.ServiceIDs) > domain.MaxServicesPerAppointment {
		return fmt.Errorf("%w: too many services, max %d", ErrInvalidInput, domain.MaxServicesPerAppointment)
	}
	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: invalid service id %d", ErrInvalidInput, id)
		}
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	switch req.Source {
	case domain.SourceOnline:
		if req.ClientID == nil || *req.ClientID <= 0 {
			return fmt.Errorf("%w: client id is required", ErrInvalidInput)
		}
	case domain.SourceManual:
		hasInfo := req.ClientInfo != nil && strings.TrimSpace(*req.ClientInfo) != ""
		if (req.ClientID == nil || *req.ClientID <= 0) && !hasInfo {
			return fmt.Errorf("%w: client id or client info is required", ErrInvalidInput)
		}
		if req.ClientInfo != nil && len(*req.ClientInfo) > domain.MaxClientInfoLength {
			return fmt.Errorf("%w: client info is too long", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unsupported source %q", ErrInvalidInput, req.Source)
	}

	return nil
}

// validateNotInPast сравнивает начало записи с текущим моментом в часовом поясе бизнеса
func validateNotInPast(req *Request, now time.Time, loc *time.Location) error {
	startAt, err := req.StartTime.On(req.Date, loc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if startAt.Before(now) {
		return ErrDateInPast
	}
	return nil
}
