package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateRefund(t *testing.T) {
	start := time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)
	fixed500 := CancellationPolicy{
		AllowCancellation:      true,
		HoursBeforeAppointment: 24,
		PenaltyType:            PenaltyFixed,
		PenaltyAmount:          500,
	}

	tests := []struct {
		name        string
		now         time.Time
		policy      CancellationPolicy
		deposit     float64
		wantPenalty bool
		wantRefund  float64
	}{
		{
			name:        "fixed penalty exceeding deposit",
			now:         start.Add(-2 * time.Hour),
			policy:      fixed500,
			deposit:     100,
			wantPenalty: true,
			wantRefund:  0,
		},
		{
			name:       "sufficient notice",
			now:        start.Add(-48 * time.Hour),
			policy:     fixed500,
			deposit:    100,
			wantRefund: 100,
		},
		{
			name:       "exactly at threshold",
			now:        start.Add(-24 * time.Hour),
			policy:     fixed500,
			deposit:    100,
			wantRefund: 100,
		},
		{
			name: "percentage penalty",
			now:  start.Add(-time.Hour),
			policy: CancellationPolicy{
				AllowCancellation:      true,
				HoursBeforeAppointment: 12,
				PenaltyType:            PenaltyPercentage,
				PenaltyAmount:          30,
			},
			deposit:     200,
			wantPenalty: true,
			wantRefund:  140,
		},
		{
			name: "no penalty type",
			now:  start.Add(-time.Hour),
			policy: CancellationPolicy{
				AllowCancellation:      true,
				HoursBeforeAppointment: 12,
				PenaltyType:            PenaltyNone,
				PenaltyAmount:          30,
			},
			deposit:    200,
			wantRefund: 200,
		},
		{
			name:        "already started",
			now:         start.Add(30 * time.Minute),
			policy:      fixed500,
			deposit:     700,
			wantPenalty: true,
			wantRefund:  200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateRefund(start, tt.now, tt.policy, tt.deposit)
			require.NoError(t, err)

			assert.Equal(t, tt.wantPenalty, got.PenaltyApplied)
			assert.InDelta(t, tt.wantRefund, got.RefundAmount, 1e-9)
			assert.InDelta(t, tt.deposit, got.RefundAmount+got.PenaltyAmount, 1e-9)
		})
	}
}

func TestCalculateRefund_NotAllowed(t *testing.T) {
	_, err := CalculateRefund(time.Now().Add(72*time.Hour), time.Now(), CancellationPolicy{}, 100)

	assert.ErrorIs(t, err, ErrCancellationNotAllowed)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestCalculateRefund_FixedMonotonic(t *testing.T) {
	start := time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)
	now := start.Add(-time.Hour)
	deposit := 150.0
	prev := deposit

	for penalty := 0.0; penalty <= 400; penalty += 10 {
		got, err := CalculateRefund(start, now, CancellationPolicy{
			AllowCancellation:      true,
			HoursBeforeAppointment: 24,
			PenaltyType:            PenaltyFixed,
			PenaltyAmount:          penalty,
		}, deposit)
		require.NoError(t, err)

		assert.LessOrEqual(t, got.RefundAmount, prev)
		assert.GreaterOrEqual(t, got.RefundAmount, 0.0)
		assert.LessOrEqual(t, got.RefundAmount, deposit)
		prev = got.RefundAmount
	}
}
