package domain

import "time"

// BusinessSettings настройки бизнеса, влияющие на расписание и деньги
type BusinessSettings struct {
	BusinessID    int64
	BufferMinutes int    // перерыв после записи, только увеличивает totalDuration
	Timezone      string // IANA, например Europe/Moscow
	Cancellation  CancellationPolicy
	Deposit       DepositRules
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DefaultBusinessSettings настройки для бизнеса, который ещё ничего не настроил
func DefaultBusinessSettings(businessID int64) *BusinessSettings {
	return &BusinessSettings{
		BusinessID:    businessID,
		BufferMinutes: DefaultBufferMinutes,
		Timezone:      DefaultTimezone,
		Cancellation: CancellationPolicy{
			AllowCancellation:      true,
			HoursBeforeAppointment: DefaultCancellationHours,
			PenaltyType:            PenaltyNone,
		},
		Deposit: DepositRules{Type: DepositNone},
	}
}

// Location returns the business time zone, UTC when unknown
func (s *BusinessSettings) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
