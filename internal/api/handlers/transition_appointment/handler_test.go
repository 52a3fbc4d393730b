package transition_appointment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	transitionAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/transition_appointment"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got *transitionAppointment.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *transitionAppointment.Request) (*domain.Appointment, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Appointment{ID: req.AppointmentID, Status: domain.StatusCompleted}, nil
}

func newRequest(action, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/businesses/5/appointments/9/actions/"+action, strings.NewReader(body))
	return mux.SetURLVars(req, map[string]string{
		"businessId":    "5",
		"appointmentId": "9",
		"action":        action,
	})
}

func TestHandle_WithTip(t *testing.T) {
	uc := &fakeUseCase{}
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, newRequest("complete", `{"tip":150}`))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, "complete", uc.got.Action)
	require.NotNil(t, uc.got.Tip)
	assert.Equal(t, 150.0, *uc.got.Tip)
	assert.Contains(t, rec.Body.String(), `"status":"completed"`)
}

func TestHandle_EmptyBody(t *testing.T) {
	uc := &fakeUseCase{}
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, newRequest("confirm", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, uc.got.Tip)
	assert.Nil(t, uc.got.Reason)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "broken body", body: `{"tip":`, status: http.StatusBadRequest},
		{name: "unknown action", err: domain.ErrUnknownAction, status: http.StatusBadRequest},
		{name: "wrong status", err: transitionAppointment.ErrAppointmentNotFound, status: http.StatusNotFound},
		{name: "invalid tip", err: transitionAppointment.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "internal", err: errors.New("db down"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&fakeUseCase{err: tt.err}, nopLogger{}).Handle(rec, newRequest("start", tt.body))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
