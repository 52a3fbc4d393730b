package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	stored map[int64]*domain.BusinessSettings
	err    error
}

func (r *fakeRepo) Get(_ context.Context, businessID int64) (*domain.BusinessSettings, error) {
	if r.err != nil {
		return nil, r.err
	}
	s, ok := r.stored[businessID]
	if !ok {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeRepo) Upsert(_ context.Context, s *domain.BusinessSettings) (*domain.BusinessSettings, error) {
	copied := *s
	r.stored[s.BusinessID] = &copied
	return s, nil
}

func TestService_Get_Defaults(t *testing.T) {
	svc := NewService(&fakeRepo{stored: map[int64]*domain.BusinessSettings{}}, nopLogger{})

	got, err := svc.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.BusinessID)
	assert.Equal(t, domain.DefaultTimezone, got.Timezone)
	assert.True(t, got.Cancellation.AllowCancellation)
	assert.Equal(t, domain.DepositNone, got.Deposit.Type)
}

func TestService_Get_RepositoryError(t *testing.T) {
	svc := NewService(&fakeRepo{err: errors.New("db down")}, nopLogger{})

	_, err := svc.Get(context.Background(), 5)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Update_Partial(t *testing.T) {
	repo := &fakeRepo{stored: map[int64]*domain.BusinessSettings{}}
	svc := NewService(repo, nopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		BusinessID:    1,
		BufferMinutes: ptr.Ptr(15),
	})
	require.NoError(t, err)

	penalty := domain.PenaltyPercentage
	got, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		BusinessID: 1,
		Cancellation: &models.CancellationPolicyUpdate{
			PenaltyType:   &penalty,
			PenaltyAmount: ptr.Ptr(50.0),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 15, got.BufferMinutes)
	assert.Equal(t, domain.PenaltyPercentage, got.Cancellation.PenaltyType)
	assert.Equal(t, 50.0, got.Cancellation.PenaltyAmount)
	assert.Equal(t, float64(domain.DefaultCancellationHours), repo.stored[1].Cancellation.HoursBeforeAppointment)
}

func TestService_Update_Validation(t *testing.T) {
	unknownPenalty := domain.PenaltyType("double")
	percentage := domain.DepositPercentage

	tests := []struct {
		name string
		req  *models.UpdateSettingsRequest
	}{
		{name: "negative buffer", req: &models.UpdateSettingsRequest{BufferMinutes: ptr.Ptr(-1)}},
		{name: "huge buffer", req: &models.UpdateSettingsRequest{BufferMinutes: ptr.Ptr(domain.MaxBufferMinutes + 1)}},
		{name: "unknown timezone", req: &models.UpdateSettingsRequest{Timezone: ptr.Ptr("Mars/Olympus")}},
		{name: "empty timezone", req: &models.UpdateSettingsRequest{Timezone: ptr.Ptr("")}},
		{name: "unknown penalty", req: &models.UpdateSettingsRequest{Cancellation: &models.CancellationPolicyUpdate{PenaltyType: &unknownPenalty}}},
		{name: "negative hours", req: &models.UpdateSettingsRequest{Cancellation: &models.CancellationPolicyUpdate{HoursBeforeAppointment: ptr.Ptr(-2.0)}}},
		{name: "deposit over 100 percent", req: &models.UpdateSettingsRequest{Deposit: &models.DepositRulesUpdate{Type: &percentage, Amount: ptr.Ptr(120.0)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{stored: map[int64]*domain.BusinessSettings{}}
			svc := NewService(repo, nopLogger{})

			tt.req.BusinessID = 1
			_, err := svc.Update(context.Background(), tt.req)
			assert.ErrorIs(t, err, domain.ErrBadRequest)
			assert.Empty(t, repo.stored)
		})
	}
}
