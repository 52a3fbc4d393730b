package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func mustSlot(t *testing.T, start, end types.TimeString) Slot {
	t.Helper()
	s, err := NewSlot(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), start, end, time.UTC)
	require.NoError(t, err)
	return s
}

func TestSlot_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Slot
		b    Slot
		want bool
	}{
		{name: "back to back", a: mustSlot(t, "09:00", "10:00"), b: mustSlot(t, "10:00", "10:30"), want: false},
		{name: "partial", a: mustSlot(t, "09:00", "10:00"), b: mustSlot(t, "09:30", "10:30"), want: true},
		{name: "contained", a: mustSlot(t, "09:00", "12:00"), b: mustSlot(t, "10:00", "10:30"), want: true},
		{name: "identical", a: mustSlot(t, "09:00", "10:00"), b: mustSlot(t, "09:00", "10:00"), want: true},
		{name: "disjoint", a: mustSlot(t, "08:00", "08:30"), b: mustSlot(t, "11:00", "11:30"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestSlot_OverlapsAcrossZones(t *testing.T) {
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	utc, err := NewSlot(date, "09:00", "10:00", time.UTC)
	require.NoError(t, err)
	plusThree, err := NewSlot(date, "12:00", "12:30", time.FixedZone("MSK", 3*60*60))
	require.NoError(t, err)

	assert.True(t, utc.Overlaps(plusThree))
	assert.Equal(t, time.Hour, utc.Duration())
}
