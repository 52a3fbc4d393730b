package cancel_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func validateRequest(req *Request) error {
	if req.BusinessID <= 0 || req.AppointmentID <= 0 {
		return fmt.Errorf("%w: business and appointment ids are required", ErrInvalidInput)
	}
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: client id is required", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}
	return nil
}

// ownedBy запись клиента; чужие записи неотличимы от несуществующих
func ownedBy(a *domain.Appointment, clientID int64) bool {
	return a.ClientID != nil && *a.ClientID == clientID
}
