package convert_waitlist

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func validateRequest(req *Request) error {
	if req.BusinessID <= 0 || req.EntryID <= 0 {
		return fmt.Errorf("%w: business and entry ids are required", ErrInvalidInput)
	}
	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: invalid staff id", ErrInvalidInput)
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
	return nil
}

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

// staffFor сотрудник из запроса важнее предпочтения в заявке
func staffFor(req *Request, entry *domain.WaitlistEntry) (int64, error) {
	if req.StaffID != nil {
		return *req.StaffID, nil
	}
	if entry.PreferredStaffID != nil {
		return *entry.PreferredStaffID, nil
	}
	return 0, ErrStaffRequired
}
