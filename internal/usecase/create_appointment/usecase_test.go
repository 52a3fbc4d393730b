package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/service/discounts"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeTx struct {
	commitErr error
	calls     int
}

func (tx *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return tx.commitErr
}

type fakeRepo struct {
	created []*domain.Appointment
	err     error
}

func (r *fakeRepo) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if r.err != nil {
		return nil, r.err
	}
	a.ID = int64(len(r.created) + 1)
	r.created = append(r.created, a)
	return a, nil
}

type fakeAvailability struct {
	result *availability.CheckResult
	err    error
	last   availability.CheckRequest
}

func (f *fakeAvailability) Check(_ context.Context, req availability.CheckRequest) (*availability.CheckResult, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	copied := *f.result
	return &copied, nil
}

type fakeDiscounts struct {
	result    *discounts.ValidateResult
	err       error
	redeemErr error
	redeemed  int
}

func (f *fakeDiscounts) Validate(_ context.Context, _ discounts.ValidateRequest) (*discounts.ValidateResult, error) {
	return f.result, f.err
}

func (f *fakeDiscounts) Redeem(_ context.Context, _ *domain.Promotion) error {
	if f.redeemErr != nil {
		return f.redeemErr
	}
	f.redeemed++
	return nil
}

type fakeCatalog struct {
	staff map[int64]*domain.Staff
}

func (c *fakeCatalog) GetStaff(_ context.Context, _ int64, staffID int64) (*domain.Staff, error) {
	s, ok := c.staff[staffID]
	if !ok {
		return nil, catalogservice.ErrStaffNotFound
	}
	return s, nil
}

type fakeSettings struct {
	settings *domain.BusinessSettings
}

func (f *fakeSettings) Get(_ context.Context, _ int64) (*domain.BusinessSettings, error) {
	return f.settings, nil
}

type fakeNotifier struct {
	kinds []domain.NotificationKind
	err   error
}

func (n *fakeNotifier) Notify(_ context.Context, kind domain.NotificationKind, _ domain.Recipient, _ int64, _ map[string]interface{}) error {
	n.kinds = append(n.kinds, kind)
	return n.err
}

type fixture struct {
	uc        *UseCase
	repo      *fakeRepo
	avail     *fakeAvailability
	discounts *fakeDiscounts
	notifier  *fakeNotifier
	tx        *fakeTx
}

var (
	bookingDate = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	now         = time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC)
)

func newFixture() *fixture {
	settings := domain.DefaultBusinessSettings(1)
	settings.BufferMinutes = 10
	settings.Deposit = domain.DepositRules{Type: domain.DepositPercentage, Amount: 20}

	f := &fixture{
		repo: &fakeRepo{},
		avail: &fakeAvailability{result: &availability.CheckResult{
			Available:       true,
			StartTime:       "10:00",
			EndTime:         "11:00",
			StartAt:         time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC),
			EndAt:           time.Date(2025, 6, 10, 11, 0, 0, 0, time.UTC),
			ServiceDuration: 60,
			BufferMinutes:   10,
			TotalDuration:   70,
			Services: []domain.BookedService{
				{ServiceID: 5, Name: "Haircut", DurationMinutes: 60, Price: 1000},
			},
			Settings: settings,
		}},
		discounts: &fakeDiscounts{},
		notifier:  &fakeNotifier{},
		tx:        &fakeTx{},
	}

	catalog := &fakeCatalog{staff: map[int64]*domain.Staff{
		2: {ID: 2, BusinessID: 1, Name: "Anna", IsActive: true},
		3: {ID: 3, BusinessID: 1, Name: "Oleg", IsActive: false},
	}}

	f.uc = NewUseCase(f.repo, f.avail, f.discounts, catalog, &fakeSettings{settings: settings}, f.notifier, f.tx, nopLogger{})
	f.uc.timeProvider = fixedClock{now: now}
	return f
}

func onlineRequest() *Request {
	return &Request{
		BusinessID: 1,
		StaffID:    2,
		ServiceIDs: []int64{5},
		Date:       bookingDate,
		StartTime:  "10:00",
		Source:     domain.SourceOnline,
		ClientID:   ptr.Ptr(int64(42)),
	}
}

func TestExecute_OnlineBooking(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), onlineRequest())
	require.NoError(t, err)

	a := resp.Appointment
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, domain.StatusPending, a.Status)
	assert.Equal(t, domain.SourceOnline, a.Source)
	assert.Equal(t, "Anna", a.StaffName)
	assert.Equal(t, "11:00", a.EndTime.String())
	assert.Equal(t, 70, a.TotalDuration)
	assert.Equal(t, 1000.0, a.Pricing.Subtotal)
	assert.Equal(t, 1000.0, a.Pricing.Total)
	assert.Equal(t, 200.0, a.Pricing.DepositAmount)
	assert.Nil(t, a.Pricing.PromotionID)
	assert.Equal(t, 60, resp.ServiceDuration)
	assert.Equal(t, 10, resp.BufferMinutes)

	assert.Equal(t, []int64{5}, f.avail.last.ServiceIDs)
	assert.Nil(t, f.avail.last.ExcludeAppointmentID)
	assert.Equal(t, []domain.NotificationKind{domain.NotificationAppointmentBooked}, f.notifier.kinds)
}

func TestExecute_ManualEntry(t *testing.T) {
	f := newFixture()
	req := onlineRequest()
	req.Source = domain.SourceManual
	req.ClientID = nil
	req.ClientInfo = ptr.Ptr("Ivan, +7 900 000-00-00")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, resp.Appointment.Status)
	assert.Equal(t, domain.SourceManual, resp.Appointment.Source)
	assert.Nil(t, resp.Appointment.ClientID)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *Request)
	}{
		{name: "no services", modify: func(r *Request) { r.ServiceIDs = nil }},
		{name: "too many services", modify: func(r *Request) {
			r.ServiceIDs = make([]int64, domain.MaxServicesPerAppointment+1)
			for i := range r.ServiceIDs {
				r.ServiceIDs[i] = int64(i + 1)
			}
		}},
		{name: "bad start time", modify: func(r *Request) { r.StartTime = "25:00" }},
		{name: "online without client", modify: func(r *Request) { r.ClientID = nil }},
		{name: "manual without client", modify: func(r *Request) {
			r.Source = domain.SourceManual
			r.ClientID = nil
			r.ClientInfo = ptr.Ptr("  ")
		}},
		{name: "unknown source", modify: func(r *Request) { r.Source = domain.SourceWaitlist }},
		{name: "past date", modify: func(r *Request) { r.Date = now.AddDate(0, 0, -1) }},
		{name: "earlier today", modify: func(r *Request) {
			r.Date = now
			r.StartTime = "11:30"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := onlineRequest()
			tt.modify(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrBadRequest)
			assert.Zero(t, f.tx.calls)
		})
	}
}

func TestExecute_Staff(t *testing.T) {
	f := newFixture()
	req := onlineRequest()
	req.StaffID = 99
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	req.StaffID = 3
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStaffInactive)
}

func TestExecute_SlotTaken(t *testing.T) {
	t.Run("conflict found by check", func(t *testing.T) {
		f := newFixture()
		f.avail.result.Available = false
		f.avail.result.ConflictIDs = []int64{7}

		_, err := f.uc.Execute(context.Background(), onlineRequest())
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Empty(t, f.repo.created)
		assert.Empty(t, f.notifier.kinds)
	})

	t.Run("exclusion constraint", func(t *testing.T) {
		f := newFixture()
		f.repo.err = fmt.Errorf("%w: Create - execute insert: 23P01", appointmentRepo.ErrSlotTaken)

		_, err := f.uc.Execute(context.Background(), onlineRequest())
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("serialization failure on commit", func(t *testing.T) {
		f := newFixture()
		f.tx.commitErr = fmt.Errorf("%w: 40001", txmanager.ErrSerialization)

		_, err := f.uc.Execute(context.Background(), onlineRequest())
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Empty(t, f.notifier.kinds)
	})

	t.Run("serialization failure on locked staff day read", func(t *testing.T) {
		f := newFixture()
		f.avail.err = fmt.Errorf("%w: failed to load appointments: %w", availability.ErrInternal, &pq.Error{Code: "40001"})

		_, err := f.uc.Execute(context.Background(), onlineRequest())
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
		assert.NotErrorIs(t, err, ErrInternal)
		assert.Empty(t, f.repo.created)
		assert.Empty(t, f.notifier.kinds)
	})
}

func TestExecute_AvailabilityErrors(t *testing.T) {
	f := newFixture()
	f.avail.err = availability.ErrServiceNotFound
	_, err := f.uc.Execute(context.Background(), onlineRequest())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	f.avail.err = errors.New("db is down")
	_, err = f.uc.Execute(context.Background(), onlineRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_Promotion(t *testing.T) {
	promotion := &domain.Promotion{ID: 11, BusinessID: 1, Code: "SUMMER"}

	t.Run("applied", func(t *testing.T) {
		f := newFixture()
		f.discounts.result = &discounts.ValidateResult{Applicable: true, Promotion: promotion, DiscountAmount: 250, FinalAmount: 750}
		req := onlineRequest()
		req.PromotionCode = ptr.Ptr("summer")

		resp, err := f.uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 1, f.discounts.redeemed)
		assert.Equal(t, 250.0, resp.Appointment.Pricing.DiscountAmount)
		assert.Equal(t, 750.0, resp.Appointment.Pricing.Total)
		assert.Equal(t, 150.0, resp.Appointment.Pricing.DepositAmount)
		require.NotNil(t, resp.Appointment.Pricing.PromotionID)
		assert.Equal(t, int64(11), *resp.Appointment.Pricing.PromotionID)
	})

	t.Run("not applicable", func(t *testing.T) {
		f := newFixture()
		f.discounts.result = &discounts.ValidateResult{Promotion: promotion, Reason: domain.RejectionMinPurchase}
		req := onlineRequest()
		req.PromotionCode = ptr.Ptr("summer")

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrPromotionNotApplicable)
		assert.ErrorIs(t, err, domain.ErrBadRequest)
		assert.Empty(t, f.repo.created)
	})

	t.Run("unknown code", func(t *testing.T) {
		f := newFixture()
		f.discounts.err = discounts.ErrPromotionNotFound
		req := onlineRequest()
		req.PromotionCode = ptr.Ptr("nope")

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("exhausted at redeem", func(t *testing.T) {
		f := newFixture()
		f.discounts.result = &discounts.ValidateResult{Applicable: true, Promotion: promotion, DiscountAmount: 250}
		f.discounts.redeemErr = discounts.ErrPromotionExhausted
		req := onlineRequest()
		req.PromotionCode = ptr.Ptr("summer")

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Empty(t, f.repo.created)
	})
}

func TestExecute_NotifierFailureDoesNotFail(t *testing.T) {
	f := newFixture()
	f.notifier.err = errors.New("broker unavailable")

	resp, err := f.uc.Execute(context.Background(), onlineRequest())
	require.NoError(t, err)
	assert.NotZero(t, resp.Appointment.ID)
}
