package reschedule_appointment

import (
	"fmt"
	"time"
)

func validateRequest(req *Request) error {
	if req.BusinessID <= 0 || req.AppointmentID <= 0 {
		return fmt.Errorf("%w: business and appointment ids are required", ErrInvalidInput)
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
