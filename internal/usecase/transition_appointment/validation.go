package transition_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func validateRequest(req *Request, action domain.Action) error {
	if req.BusinessID <= 0 || req.AppointmentID <= 0 {
		return fmt.Errorf("%w: business and appointment ids are required", ErrInvalidInput)
	}
	if req.Tip != nil {
		if action != domain.ActionComplete {
			return fmt.Errorf("%w: tip is accepted only on complete", ErrInvalidInput)
		}
		if *req.Tip < 0 {
			return fmt.Errorf("%w: tip must not be negative", ErrInvalidInput)
		}
	}
	if req.Reason != nil {
		if action != domain.ActionCancel {
			return fmt.Errorf("%w: reason is accepted only on cancel", ErrInvalidInput)
		}
		if len(*req.Reason) > domain.MaxCancellationReasonLength {
			return fmt.Errorf("%w: reason is too long", ErrInvalidInput)
		}
	}
	return nil
}
