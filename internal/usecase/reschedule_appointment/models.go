package reschedule_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request запрос на перенос записи
type Request struct {
	BusinessID    int64
	AppointmentID int64
	StaffID       *int64 // nil - сотрудник не меняется
	Date          time.Time
	StartTime     types.TimeString
}
