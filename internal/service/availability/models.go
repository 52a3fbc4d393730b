package availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// CheckRequest запрос проверки доступности интервала
type CheckRequest struct {
	BusinessID           int64
	StaffID              int64
	ServiceIDs           []int64 // порядок сохраняется в снимках услуг
	Date                 time.Time
	StartTime            types.TimeString
	ExcludeAppointmentID *int64 // перенос: собственная запись не считается конфликтом
}

// CheckResult результат проверки
type CheckResult struct {
	Available bool

	StartTime types.TimeString
	EndTime   types.TimeString
	StartAt   time.Time
	EndAt     time.Time

	ServiceDuration int
	BufferMinutes   int
	TotalDuration   int // ServiceDuration + BufferMinutes

	Services    []domain.BookedService
	ConflictIDs []int64
	Settings    *domain.BusinessSettings
}

// Slot возвращает проверенный интервал
func (r *CheckResult) Slot() domain.Slot {
	return domain.Slot{Start: r.StartAt, End: r.EndAt}
}

// FreeSlotsRequest запрос свободных времен начала в окне [From, To)
type FreeSlotsRequest struct {
	BusinessID  int64
	StaffID     int64
	ServiceIDs  []int64
	Date        time.Time
	From        types.TimeString
	To          types.TimeString
	StepMinutes int
}

// FreeSlot свободный интервал
type FreeSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// FreeSlotsResult список свободных интервалов
type FreeSlotsResult struct {
	ServiceDuration int
	TotalDuration   int
	Slots           []FreeSlot
}
