package transition_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// memRepo применяет условный переход так же, как UPDATE ... WHERE status IN (...)
type memRepo struct {
	appointments map[int64]*domain.Appointment
	lastCmd      domain.TransitionCommand
	failUpdate   error
}

func (r *memRepo) GetByID(_ context.Context, businessID, id int64) (*domain.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok || a.BusinessID != businessID {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *memRepo) ConditionalTransition(_ context.Context, cmd domain.TransitionCommand) (bool, error) {
	r.lastCmd = cmd
	if r.failUpdate != nil {
		return false, r.failUpdate
	}
	a, ok := r.appointments[cmd.AppointmentID]
	if !ok || a.BusinessID != cmd.BusinessID {
		return false, nil
	}
	allowed := false
	for _, s := range cmd.From {
		if s == a.Status {
			allowed = true
		}
	}
	if !allowed {
		return false, nil
	}
	a.Status = cmd.To
	if cmd.Cancellation != nil {
		c := *cmd.Cancellation
		a.Cancellation = &c
	}
	if cmd.Tip != nil {
		a.Pricing.Tip = *cmd.Tip
		a.Pricing.FinalTotal = a.Pricing.Total + *cmd.Tip
	}
	return true, nil
}

type fakeNotifier struct {
	kinds []domain.NotificationKind
}

func (n *fakeNotifier) Notify(_ context.Context, kind domain.NotificationKind, _ domain.Recipient, _ int64, _ map[string]interface{}) error {
	n.kinds = append(n.kinds, kind)
	return nil
}

var now = time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC)

func newUseCase(statuses map[int64]domain.AppointmentStatus) (*UseCase, *memRepo, *fakeNotifier) {
	repo := &memRepo{appointments: map[int64]*domain.Appointment{}}
	for id, status := range statuses {
		repo.appointments[id] = &domain.Appointment{
			ID:         id,
			BusinessID: 1,
			StaffID:    2,
			Status:     status,
			Pricing:    domain.Pricing{Total: 1000, FinalTotal: 1000, DepositAmount: 200, DepositPaid: true},
		}
	}
	notifier := &fakeNotifier{}
	uc := NewUseCase(repo, notifier, inlineTx{}, nopLogger{})
	uc.timeProvider = fixedClock{now: now}
	return uc, repo, notifier
}

func TestExecute_TransitionTable(t *testing.T) {
	all := []domain.AppointmentStatus{
		domain.StatusPending, domain.StatusConfirmed, domain.StatusCheckedIn, domain.StatusInProgress,
		domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow,
	}

	for _, action := range domain.Actions() {
		transition, err := domain.TransitionFor(action)
		require.NoError(t, err)

		for _, from := range all {
			t.Run(string(action)+"/"+string(from), func(t *testing.T) {
				uc, _, _ := newUseCase(map[int64]domain.AppointmentStatus{1: from})

				got, err := uc.Execute(context.Background(), &Request{BusinessID: 1, AppointmentID: 1, Action: string(action)})
				if transition.Allows(from) {
					require.NoError(t, err)
					assert.Equal(t, transition.To, got.Status)
					return
				}
				assert.ErrorIs(t, err, domain.ErrNotFound)
			})
		}
	}
}

func TestExecute_CompleteWithTip(t *testing.T) {
	uc, repo, _ := newUseCase(map[int64]domain.AppointmentStatus{1: domain.StatusInProgress})

	got, err := uc.Execute(context.Background(), &Request{BusinessID: 1, AppointmentID: 1, Action: "complete", Tip: ptr.Ptr(150.0)})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	assert.Equal(t, 150.0, got.Pricing.Tip)
	assert.Equal(t, 1150.0, got.Pricing.FinalTotal)
	assert.Nil(t, repo.lastCmd.Cancellation)
}

func TestExecute_BusinessCancel(t *testing.T) {
	uc, repo, notifier := newUseCase(map[int64]domain.AppointmentStatus{1: domain.StatusConfirmed})

	got, err := uc.Execute(context.Background(), &Request{BusinessID: 1, AppointmentID: 1, Action: "cancel", Reason: ptr.Ptr("staff is sick")})
	require.NoError(t, err)

	require.NotNil(t, got.Cancellation)
	assert.Equal(t, domain.CancelledByBusiness, got.Cancellation.CancelledBy)
	assert.Equal(t, now, got.Cancellation.CancelledAt)
	assert.True(t, got.Cancellation.Refunded)
	assert.Equal(t, 200.0, got.Cancellation.RefundAmount)
	assert.Equal(t, "staff is sick", *repo.lastCmd.Cancellation.Reason)
	assert.Equal(t, []domain.NotificationKind{domain.NotificationAppointmentCancelled}, notifier.kinds)
}

func TestExecute_BusinessCancelUnpaidDeposit(t *testing.T) {
	uc, repo, _ := newUseCase(map[int64]domain.AppointmentStatus{1: domain.StatusPending})
	repo.appointments[1].Pricing.DepositPaid = false

	got, err := uc.Execute(context.Background(), &Request{BusinessID: 1, AppointmentID: 1, Action: "cancel"})
	require.NoError(t, err)
	assert.False(t, got.Cancellation.Refunded)
	assert.Zero(t, got.Cancellation.RefundAmount)
	assert.Nil(t, got.Cancellation.Reason)
}

func TestExecute_Notifications(t *testing.T) {
	uc, _, notifier := newUseCase(map[int64]domain.AppointmentStatus{1: domain.StatusPending})

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 1, AppointmentID: 1, Action: "confirm"})
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), &Request{BusinessID: 1, AppointmentID: 1, Action: "check-in"})
	require.NoError(t, err)

	assert.Equal(t, []domain.NotificationKind{domain.NotificationAppointmentConfirmed}, notifier.kinds)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "unknown action", req: &Request{BusinessID: 1, AppointmentID: 1, Action: "archive"}, wantErr: domain.ErrBadRequest},
		{name: "tip on confirm", req: &Request{BusinessID: 1, AppointmentID: 1, Action: "confirm", Tip: ptr.Ptr(10.0)}, wantErr: domain.ErrBadRequest},
		{name: "negative tip", req: &Request{BusinessID: 1, AppointmentID: 1, Action: "complete", Tip: ptr.Ptr(-1.0)}, wantErr: domain.ErrBadRequest},
		{name: "reason on start", req: &Request{BusinessID: 1, AppointmentID: 1, Action: "start", Reason: ptr.Ptr("x")}, wantErr: domain.ErrBadRequest},
		{name: "missing appointment", req: &Request{BusinessID: 1, AppointmentID: 9, Action: "confirm"}, wantErr: domain.ErrNotFound},
		{name: "other business", req: &Request{BusinessID: 2, AppointmentID: 1, Action: "confirm"}, wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _ := newUseCase(map[int64]domain.AppointmentStatus{1: domain.StatusPending})
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_RepositoryFailure(t *testing.T) {
	uc, repo, notifier := newUseCase(map[int64]domain.AppointmentStatus{1: domain.StatusPending})
	repo.failUpdate = errors.New("connection reset")

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 1, AppointmentID: 1, Action: "confirm"})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, notifier.kinds)
}
