package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Client клиент для работы с CatalogService (услуги и сотрудники бизнеса)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CatalogService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}
}

// GetService получает услугу бизнеса
func (c *Client) GetService(ctx context.Context, businessID, serviceID int64) (*domain.Service, error) {
	url := fmt.Sprintf("%s/internal/businesses/%d/services/%d", c.baseURL, businessID, serviceID)

	var service Service
	if err := c.get(ctx, url, ErrServiceNotFound, &service); err != nil {
		if err != ErrServiceNotFound {
			c.log.Error("CatalogService: failed to get service business_id=%d, service_id=%d: %v", businessID, serviceID, err)
		}
		return nil, err
	}

	return service.ToDomain(), nil
}

// GetStaff получает сотрудника бизнеса
func (c *Client) GetStaff(ctx context.Context, businessID, staffID int64) (*domain.Staff, error) {
	url := fmt.Sprintf("%s/internal/businesses/%d/staff/%d", c.baseURL, businessID, staffID)

	var staff Staff
	if err := c.get(ctx, url, ErrStaffNotFound, &staff); err != nil {
		if err != ErrStaffNotFound {
			c.log.Error("CatalogService: failed to get staff business_id=%d, staff_id=%d: %v", businessID, staffID, err)
		}
		return nil, err
	}

	return staff.ToDomain(), nil
}

func (c *Client) get(ctx context.Context, url string, notFound error, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
