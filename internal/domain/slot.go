package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Slot полуоткрытый интервал [Start, End), который занимает запись
type Slot struct {
	Start time.Time
	End   time.Time
}

// NewSlot строит интервал по дате и времени начала/окончания в зоне loc
func NewSlot(date time.Time, start, end types.TimeString, loc *time.Location) (Slot, error) {
	startAt, err := start.On(date, loc)
	if err != nil {
		return Slot{}, err
	}
	endAt, err := end.On(date, loc)
	if err != nil {
		return Slot{}, err
	}
	return Slot{Start: startAt, End: endAt}, nil
}

// Overlaps проверяет пересечение полуоткрытых интервалов: s1 < e2 && e1 > s2.
// Запись, заканчивающаяся ровно в момент начала другой, с ней не пересекается.
func (s Slot) Overlaps(other Slot) bool {
	return s.Start.Before(other.End) && s.End.After(other.Start)
}

// Duration длительность интервала
func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}
