package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	appointments []*domain.Appointment
	calls        int
	lastFilter   domain.StaffDayFilter
	err          error
}

func (r *fakeRepo) FindConflicting(_ context.Context, filter domain.StaffDayFilter) ([]*domain.Appointment, error) {
	r.calls++
	r.lastFilter = filter
	if r.err != nil {
		return nil, r.err
	}
	result := make([]*domain.Appointment, 0, len(r.appointments))
	for _, a := range r.appointments {
		if filter.ExcludeID != nil && a.ID == *filter.ExcludeID {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

type fakeCatalog struct {
	services map[int64]*domain.Service
}

func (c *fakeCatalog) GetService(_ context.Context, _, serviceID int64) (*domain.Service, error) {
	svc, ok := c.services[serviceID]
	if !ok {
		return nil, catalogservice.ErrServiceNotFound
	}
	return svc, nil
}

type fakeSettings struct {
	settings *domain.BusinessSettings
}

func (s *fakeSettings) Get(_ context.Context, businessID int64) (*domain.BusinessSettings, error) {
	if s.settings != nil {
		return s.settings, nil
	}
	return domain.DefaultBusinessSettings(businessID), nil
}

var testDate = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

func at(hhmm string) time.Time {
	t, err := types.TimeString(hhmm).On(testDate, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func existing(id int64, start, end string, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:         id,
		BusinessID: 1,
		StaffID:    2,
		Date:       testDate,
		StartTime:  types.TimeString(start),
		EndTime:    types.TimeString(end),
		StartAt:    at(start),
		EndAt:      at(end),
		Status:     status,
	}
}

func newCatalog() *fakeCatalog {
	return &fakeCatalog{services: map[int64]*domain.Service{
		10: {ID: 10, BusinessID: 1, Name: "Стрижка", DurationMinutes: 30, Price: 1000, IsActive: true},
		11: {ID: 11, BusinessID: 1, Name: "Укладка", DurationMinutes: 45, Price: 800, IsActive: true},
		12: {ID: 12, BusinessID: 1, Name: "Окрашивание", DurationMinutes: 60, Price: 3000, IsActive: false},
		13: {ID: 13, BusinessID: 1, Name: "Процедура", DurationMinutes: 60, Price: 2000, IsActive: true},
	}}
}

func newService(repo *fakeRepo, settings *domain.BusinessSettings) *Service {
	return NewService(repo, newCatalog(), &fakeSettings{settings: settings}, nopLogger{})
}

func request(start string, serviceIDs ...int64) CheckRequest {
	return CheckRequest{
		BusinessID: 1,
		StaffID:    2,
		ServiceIDs: serviceIDs,
		Date:       testDate,
		StartTime:  types.TimeString(start),
	}
}

func TestCheck_Overlaps(t *testing.T) {
	tests := []struct {
		name          string
		start         string
		serviceIDs    []int64
		wantAvailable bool
		wantEnd       types.TimeString
	}{
		{name: "ends when existing starts", start: "08:30", serviceIDs: []int64{10}, wantAvailable: true, wantEnd: "09:00"},
		{name: "starts when existing ends", start: "10:00", serviceIDs: []int64{10}, wantAvailable: true, wantEnd: "10:30"},
		{name: "starts inside existing", start: "09:30", serviceIDs: []int64{10}, wantAvailable: false, wantEnd: "10:00"},
		{name: "ends inside existing", start: "08:45", serviceIDs: []int64{10}, wantAvailable: false, wantEnd: "09:15"},
		{name: "covers existing", start: "08:30", serviceIDs: []int64{10, 11, 10}, wantAvailable: false, wantEnd: "10:15"},
		{name: "same interval", start: "09:00", serviceIDs: []int64{13}, wantAvailable: false, wantEnd: "10:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{appointments: []*domain.Appointment{
				existing(1, "09:00", "10:00", domain.StatusConfirmed),
			}}
			svc := newService(repo, nil)

			got, err := svc.Check(context.Background(), request(tt.start, tt.serviceIDs...))
			require.NoError(t, err)
			assert.Equal(t, tt.wantAvailable, got.Available)
			assert.Equal(t, tt.wantEnd, got.EndTime)
			if tt.wantAvailable {
				assert.Empty(t, got.ConflictIDs)
			} else {
				assert.Equal(t, []int64{1}, got.ConflictIDs)
			}
		})
	}
}

func TestCheck_InactiveAppointmentsNeverConflict(t *testing.T) {
	for _, status := range domain.InactiveStatuses {
		repo := &fakeRepo{appointments: []*domain.Appointment{existing(1, "09:00", "10:00", status)}}
		svc := newService(repo, nil)

		got, err := svc.Check(context.Background(), request("09:00", 13))
		require.NoError(t, err)
		assert.True(t, got.Available, "status %s", status)
	}
}

func TestCheck_ExcludeOwnAppointment(t *testing.T) {
	repo := &fakeRepo{appointments: []*domain.Appointment{
		existing(1, "09:00", "10:00", domain.StatusConfirmed),
		existing(2, "10:15", "11:00", domain.StatusPending),
	}}
	svc := newService(repo, nil)

	req := request("09:30", 13)
	req.ExcludeAppointmentID = ptr.Ptr(int64(1))

	got, err := svc.Check(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, got.Available)
	assert.Equal(t, []int64{2}, got.ConflictIDs)
	require.NotNil(t, repo.lastFilter.ExcludeID)
	assert.Equal(t, int64(1), *repo.lastFilter.ExcludeID)

	req = request("09:00", 13)
	req.ExcludeAppointmentID = ptr.Ptr(int64(1))
	got, err = svc.Check(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, got.Available)
}

func TestCheck_BufferIsReportedOnly(t *testing.T) {
	settings := domain.DefaultBusinessSettings(1)
	settings.BufferMinutes = 15

	repo := &fakeRepo{appointments: []*domain.Appointment{existing(1, "10:00", "11:00", domain.StatusConfirmed)}}
	svc := newService(repo, settings)

	got, err := svc.Check(context.Background(), request("09:30", 10))
	require.NoError(t, err)
	assert.True(t, got.Available)
	assert.Equal(t, 30, got.ServiceDuration)
	assert.Equal(t, 15, got.BufferMinutes)
	assert.Equal(t, 45, got.TotalDuration)
	assert.Equal(t, types.TimeString("10:00"), got.EndTime)
	assert.Equal(t, at("10:00"), got.EndAt)
}

func TestCheck_ZeroServices(t *testing.T) {
	repo := &fakeRepo{appointments: []*domain.Appointment{existing(1, "09:00", "10:00", domain.StatusConfirmed)}}
	svc := newService(repo, nil)

	got, err := svc.Check(context.Background(), request("09:30"))
	require.NoError(t, err)
	assert.True(t, got.Available)
	assert.Equal(t, 0, got.ServiceDuration)
	assert.Equal(t, 0, repo.calls)
}

func TestCheck_ServiceSnapshots(t *testing.T) {
	svc := newService(&fakeRepo{}, nil)

	got, err := svc.Check(context.Background(), request("12:00", 11, 10))
	require.NoError(t, err)
	require.Len(t, got.Services, 2)
	assert.Equal(t, int64(11), got.Services[0].ServiceID)
	assert.Equal(t, 800.0, got.Services[0].Price)
	assert.Equal(t, int64(10), got.Services[1].ServiceID)
	assert.Equal(t, 75, got.ServiceDuration)
}

func TestCheck_Errors(t *testing.T) {
	svc := newService(&fakeRepo{}, nil)

	_, err := svc.Check(context.Background(), request("10:00", 99))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Check(context.Background(), request("10:00", 12))
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	_, err = svc.Check(context.Background(), request("23:30", 13))
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	_, err = svc.Check(context.Background(), request("25:00", 10))
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	failing := newService(&fakeRepo{err: errors.New("db down")}, nil)
	_, err = failing.Check(context.Background(), request("10:00", 10))
	assert.ErrorIs(t, err, ErrInternal)
}

func TestFreeSlots(t *testing.T) {
	repo := &fakeRepo{appointments: []*domain.Appointment{existing(1, "10:00", "11:00", domain.StatusConfirmed)}}
	svc := newService(repo, nil)

	got, err := svc.FreeSlots(context.Background(), FreeSlotsRequest{
		BusinessID:  1,
		StaffID:     2,
		ServiceIDs:  []int64{13},
		Date:        testDate,
		From:        "09:00",
		To:          "12:00",
		StepMinutes: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, []FreeSlot{
		{StartTime: "09:00", EndTime: "10:00"},
		{StartTime: "11:00", EndTime: "12:00"},
	}, got.Slots)
	assert.Equal(t, 1, repo.calls)
}

func TestFreeSlots_Validation(t *testing.T) {
	svc := newService(&fakeRepo{}, nil)

	base := FreeSlotsRequest{BusinessID: 1, StaffID: 2, ServiceIDs: []int64{10}, Date: testDate, From: "09:00", To: "12:00"}

	noServices := base
	noServices.ServiceIDs = nil
	_, err := svc.FreeSlots(context.Background(), noServices)
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	reversed := base
	reversed.From, reversed.To = "12:00", "09:00"
	_, err = svc.FreeSlots(context.Background(), reversed)
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	tinyStep := base
	tinyStep.StepMinutes = 1
	_, err = svc.FreeSlots(context.Background(), tinyStep)
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	got, err := svc.FreeSlots(context.Background(), base)
	require.NoError(t, err)
	assert.Len(t, got.Slots, 11)
}
