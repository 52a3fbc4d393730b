package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	appointments map[int64]*domain.Appointment
	markCalls    int
	lastFilter   domain.StaffDayFilter
}

func (r *fakeRepo) GetByID(_ context.Context, businessID, id int64) (*domain.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok || a.BusinessID != businessID {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeRepo) ListStaffDay(_ context.Context, filter domain.StaffDayFilter) ([]*domain.Appointment, error) {
	r.lastFilter = filter
	var result []*domain.Appointment
	for _, a := range r.appointments {
		if a.StaffID == filter.StaffID && (filter.IncludeInactive || a.IsActive()) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *fakeRepo) MarkDepositPaid(_ context.Context, businessID, id int64) (bool, error) {
	r.markCalls++
	a, ok := r.appointments[id]
	if !ok || a.BusinessID != businessID || a.Status.IsTerminal() {
		return false, nil
	}
	a.Pricing.DepositPaid = true
	return true, nil
}

func newRepo() *fakeRepo {
	return &fakeRepo{appointments: map[int64]*domain.Appointment{
		1: {ID: 1, BusinessID: 1, StaffID: 2, Status: domain.StatusConfirmed, Pricing: domain.Pricing{DepositAmount: 300}},
		2: {ID: 2, BusinessID: 1, StaffID: 2, Status: domain.StatusCompleted, Pricing: domain.Pricing{DepositAmount: 300}},
		3: {ID: 3, BusinessID: 1, StaffID: 2, Status: domain.StatusPending},
		4: {ID: 4, BusinessID: 1, StaffID: 2, Status: domain.StatusCancelled},
	}}
}

func TestGetByID(t *testing.T) {
	svc := NewService(newRepo(), inlineTx{}, nopLogger{})

	got, err := svc.GetByID(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)

	_, err = svc.GetByID(context.Background(), 2, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListStaffDay(t *testing.T) {
	repo := newRepo()
	svc := NewService(repo, inlineTx{}, nopLogger{})
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	active, err := svc.ListStaffDay(context.Background(), domain.StaffDayFilter{BusinessID: 1, StaffID: 2, Date: date})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	all, err := svc.ListStaffDay(context.Background(), domain.StaffDayFilter{BusinessID: 1, StaffID: 2, Date: date, IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	_, err = svc.ListStaffDay(context.Background(), domain.StaffDayFilter{BusinessID: 1, StaffID: 2})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestMarkDepositPaid(t *testing.T) {
	repo := newRepo()
	svc := NewService(repo, inlineTx{}, nopLogger{})

	got, err := svc.MarkDepositPaid(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.True(t, got.Pricing.DepositPaid)
	assert.True(t, repo.appointments[1].Pricing.DepositPaid)

	_, err = svc.MarkDepositPaid(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.markCalls)

	_, err = svc.MarkDepositPaid(context.Background(), 1, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.MarkDepositPaid(context.Background(), 1, 3)
	assert.ErrorIs(t, err, ErrNoDeposit)
}
