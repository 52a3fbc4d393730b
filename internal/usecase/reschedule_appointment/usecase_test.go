package reschedule_appointment

import (
	"context"
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
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeTx struct{ commitErr error }

func (tx *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return tx.commitErr
}

type memRepo struct {
	appointments  map[int64]*domain.Appointment
	getErr        error
	rescheduleErr error
}

func (r *memRepo) GetByID(_ context.Context, businessID, id int64) (*domain.Appointment, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	a, ok := r.appointments[id]
	if !ok || a.BusinessID != businessID {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *memRepo) Reschedule(_ context.Context, cmd domain.RescheduleCommand) (bool, error) {
	if r.rescheduleErr != nil {
		return false, r.rescheduleErr
	}
	a := r.appointments[cmd.AppointmentID]
	for _, s := range cmd.From {
		if s == a.Status {
			a.StaffID = cmd.StaffID
			a.StaffName = cmd.StaffName
			a.Date = cmd.Date
			a.StartTime = cmd.StartTime
			a.EndTime = cmd.EndTime
			a.StartAt = cmd.StartAt
			a.EndAt = cmd.EndAt
			a.TotalDuration = cmd.TotalDuration
			return true, nil
		}
	}
	return false, nil
}

// fakeAvailability считает конфликтом любой интервал, начинающийся в busy
type fakeAvailability struct {
	busy types.TimeString
	last availability.CheckRequest
}

func (f *fakeAvailability) Check(_ context.Context, req availability.CheckRequest) (*availability.CheckResult, error) {
	f.last = req
	start, err := req.StartTime.Minutes()
	if err != nil {
		return nil, err
	}
	end, _ := types.MinutesToTime(start + 60)
	startAt, _ := req.StartTime.On(req.Date, time.UTC)
	result := &availability.CheckResult{
		Available:       req.StartTime != f.busy,
		StartTime:       req.StartTime,
		EndTime:         end,
		StartAt:         startAt,
		EndAt:           startAt.Add(time.Hour),
		ServiceDuration: 60,
		TotalDuration:   60,
	}
	if !result.Available {
		result.ConflictIDs = []int64{77}
	}
	return result, nil
}

type fakeCatalog struct{}

func (fakeCatalog) GetStaff(_ context.Context, _ int64, staffID int64) (*domain.Staff, error) {
	switch staffID {
	case 3:
		return &domain.Staff{ID: 3, Name: "Oleg", IsActive: true}, nil
	case 4:
		return &domain.Staff{ID: 4, Name: "Vera", IsActive: false}, nil
	}
	return nil, catalogservice.ErrStaffNotFound
}

type fakeSettings struct{}

func (fakeSettings) Get(_ context.Context, businessID int64) (*domain.BusinessSettings, error) {
	return domain.DefaultBusinessSettings(businessID), nil
}

type fakeNotifier struct{ kinds []domain.NotificationKind }

func (n *fakeNotifier) Notify(_ context.Context, kind domain.NotificationKind, _ domain.Recipient, _ int64, _ map[string]interface{}) error {
	n.kinds = append(n.kinds, kind)
	return nil
}

var (
	now     = time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC)
	newDate = time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	uc       *UseCase
	repo     *memRepo
	avail    *fakeAvailability
	notifier *fakeNotifier
	tx       *fakeTx
}

func newFixture() *fixture {
	f := &fixture{
		repo: &memRepo{appointments: map[int64]*domain.Appointment{
			1: {
				ID: 1, BusinessID: 1, StaffID: 2, StaffName: "Anna",
				Status:    domain.StatusConfirmed,
				Date:      time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
				StartTime: "10:00", EndTime: "11:00",
				Services: []domain.BookedService{{ServiceID: 5, DurationMinutes: 60, Price: 1000}},
			},
			2: {ID: 2, BusinessID: 1, StaffID: 2, Status: domain.StatusCheckedIn},
		}},
		avail:    &fakeAvailability{busy: "15:00"},
		notifier: &fakeNotifier{},
		tx:       &fakeTx{},
	}
	f.uc = NewUseCase(f.repo, f.avail, fakeCatalog{}, fakeSettings{}, f.notifier, f.tx, nopLogger{})
	f.uc.timeProvider = fixedClock{now: now}
	return f
}

func TestExecute_MovesAppointment(t *testing.T) {
	f := newFixture()

	got, err := f.uc.Execute(context.Background(), &Request{BusinessID: 1, AppointmentID: 1, Date: newDate, StartTime: "13:30"})
	require.NoError(t, err)

	assert.Equal(t, newDate, got.Date)
	assert.Equal(t, types.TimeString("13:30"), got.StartTime)
	assert.Equal(t, types.TimeString("14:30"), got.EndTime)
	assert.Equal(t, int64(2), got.StaffID)
	assert.Equal(t, "Anna", got.StaffName)

	require.NotNil(t, f.avail.last.ExcludeAppointmentID)
	assert.Equal(t, int64(1), *f.avail.last.ExcludeAppointmentID)
	assert.Equal(t, []int64{5}, f.avail.last.ServiceIDs)
	assert.Equal(t, []domain.NotificationKind{domain.NotificationAppointmentRescheduled}, f.notifier.kinds)
}

func TestExecute_ChangesStaff(t *testing.T) {
	f := newFixture()

	got, err := f.uc.Execute(context.Background(), &Request{BusinessID: 1, AppointmentID: 1, StaffID: ptr.Ptr(int64(3)), Date: newDate, StartTime: "09:00"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.StaffID)
	assert.Equal(t, "Oleg", got.StaffName)
	assert.Equal(t, int64(3), f.avail.last.StaffID)

	_, err = f.uc.Execute(context.Background(), &Request{BusinessID: 1, AppointmentID: 1, StaffID: ptr.Ptr(int64(4)), Date: newDate, StartTime: "09:00"})
	assert.ErrorIs(t, err, ErrStaffInactive)

	_, err = f.uc.Execute(context.Background(), &Request{BusinessID: 1, AppointmentID: 1, StaffID: ptr.Ptr(int64(9)), Date: newDate, StartTime: "09:00"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExecute_Conflicts(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Execute(context.Background(), &Request{BusinessID: 1, AppointmentID: 1, Date: newDate, StartTime: "15:00"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, types.TimeString("10:00"), f.repo.appointments[1].StartTime)

	f = newFixture()
	f.repo.rescheduleErr = fmt.Errorf("%w: 23P01", appointmentRepo.ErrSlotTaken)
	_, err = f.uc.Execute(context.Background(), &Request{BusinessID: 1, AppointmentID: 1, Date: newDate, StartTime: "13:00"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	f = newFixture()
	f.tx.commitErr = fmt.Errorf("%w: 40001", txmanager.ErrSerialization)
	_, err = f.uc.Execute(context.Background(), &Request{BusinessID: 1, AppointmentID: 1, Date: newDate, StartTime: "13:00"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, f.notifier.kinds)

	f = newFixture()
	f.repo.getErr = fmt.Errorf("%w: GetByID - scan appointment: %w", appointmentRepo.ErrScanRow, &pq.Error{Code: "40001"})
	_, err = f.uc.Execute(context.Background(), &Request{BusinessID: 1, AppointmentID: 1, Date: newDate, StartTime: "13:00"})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.notifier.kinds)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "checked in", req: &Request{BusinessID: 1, AppointmentID: 2, Date: newDate, StartTime: "13:00"}, wantErr: domain.ErrNotFound},
		{name: "missing", req: &Request{BusinessID: 1, AppointmentID: 9, Date: newDate, StartTime: "13:00"}, wantErr: domain.ErrNotFound},
		{name: "past", req: &Request{BusinessID: 1, AppointmentID: 1, Date: now, StartTime: "08:00"}, wantErr: domain.ErrBadRequest},
		{name: "bad time", req: &Request{BusinessID: 1, AppointmentID: 1, Date: newDate, StartTime: "8:00"}, wantErr: domain.ErrBadRequest},
		{name: "no date", req: &Request{BusinessID: 1, AppointmentID: 1, StartTime: "13:00"}, wantErr: domain.ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
