package cancel_appointment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	cancelAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/cancel_appointment"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got *cancelAppointment.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *cancelAppointment.Request) (*cancelAppointment.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &cancelAppointment.Response{
		Appointment: &domain.Appointment{ID: req.AppointmentID, Status: domain.StatusCancelled},
		Refund: domain.RefundResult{
			PenaltyApplied: true,
			PenaltyAmount:  150,
			RefundAmount:   150,
		},
	}, nil
}

func newRequest(body string, userID int64) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/businesses/5/appointments/9/cancel", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"businessId": "5", "appointmentId": "9"})
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	return req
}

func TestHandle_Cancelled(t *testing.T) {
	uc := &fakeUseCase{}
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, newRequest(`{"reason":"заболел"}`, 7))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), uc.got.ClientID)
	require.NotNil(t, uc.got.Reason)
	assert.Equal(t, "заболел", *uc.got.Reason)

	var resp CancelAppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "cancelled", resp.Appointment.Status)
	assert.True(t, resp.Refund.PenaltyApplied)
	assert.Equal(t, 150.0, resp.Refund.RefundAmount)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		userID int64
		err    error
		status int
	}{
		{name: "no user", status: http.StatusUnauthorized},
		{name: "foreign or finished", userID: 7, err: cancelAppointment.ErrAppointmentNotFound, status: http.StatusNotFound},
		{name: "not allowed", userID: 7, err: domain.ErrCancellationNotAllowed, status: http.StatusBadRequest},
		{name: "internal", userID: 7, err: errors.New("db down"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&fakeUseCase{err: tt.err}, nopLogger{}).Handle(rec, newRequest("", tt.userID))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
