package catalogservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/internal/businesses/1/services/10", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":10,"businessId":1,"name":"Стрижка","durationMinutes":45,"price":1500,"isActive":true}`))
	})
	mux.HandleFunc("/internal/businesses/1/staff/7", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":7,"businessId":1,"name":"Анна","isActive":true}`))
	})
	mux.HandleFunc("/internal/businesses/1/services/500", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/internal/businesses/1/services/11", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetService(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(srv.URL, time.Second, nopLogger{})

	service, err := client.GetService(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), service.ID)
	assert.Equal(t, 45, service.DurationMinutes)
	assert.Equal(t, 1500.0, service.Price)
	assert.True(t, service.IsActive)
}

func TestClient_GetService_Errors(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(srv.URL, time.Second, nopLogger{})

	_, err := client.GetService(context.Background(), 1, 404)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = client.GetService(context.Background(), 1, 500)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = client.GetService(context.Background(), 1, 11)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_GetStaff(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(srv.URL, time.Second, nopLogger{})

	staff, err := client.GetStaff(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, "Анна", staff.Name)

	_, err = client.GetStaff(context.Background(), 1, 8)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestClient_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 200*time.Millisecond, nopLogger{})

	_, err := client.GetStaff(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrInternal)
}
