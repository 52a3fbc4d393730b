package discounts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	promotionRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/promotion"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeRepo struct {
	promotions []*domain.Promotion
	nextID     int64
}

func (r *fakeRepo) Create(_ context.Context, p *domain.Promotion) (*domain.Promotion, error) {
	for _, existing := range r.promotions {
		if existing.BusinessID == p.BusinessID && existing.Code == p.Code {
			return nil, promotionRepo.ErrDuplicateCode
		}
	}
	r.nextID++
	p.ID = r.nextID
	r.promotions = append(r.promotions, p)
	return p, nil
}

func (r *fakeRepo) GetActiveByCode(_ context.Context, businessID int64, code string, now time.Time) (*domain.Promotion, error) {
	for _, p := range r.promotions {
		if p.BusinessID == businessID && p.Code == code && p.Status == domain.PromotionActive && p.IsWithinValidity(now) {
			return p, nil
		}
	}
	return nil, promotionRepo.ErrPromotionNotFound
}

func (r *fakeRepo) IncrementUsage(_ context.Context, businessID, id int64) (bool, error) {
	for _, p := range r.promotions {
		if p.ID == id && p.BusinessID == businessID && p.HasUsesLeft() {
			p.UsesCount++
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) ListByBusiness(_ context.Context, businessID int64) ([]*domain.Promotion, error) {
	var result []*domain.Promotion
	for _, p := range r.promotions {
		if p.BusinessID == businessID {
			result = append(result, p)
		}
	}
	return result, nil
}

var now = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func newPromotion(code string) *domain.Promotion {
	return &domain.Promotion{
		ID:                1,
		BusinessID:        1,
		Code:              code,
		Name:              "Весенняя скидка",
		DiscountType:      domain.DiscountPercentage,
		Value:             50,
		MaxDiscountAmount: ptr.Ptr(200.0),
		ValidFrom:         now.Add(-24 * time.Hour),
		ValidUntil:        now.Add(24 * time.Hour),
		Status:            domain.PromotionActive,
	}
}

func newTestService(promotions ...*domain.Promotion) (*Service, *fakeRepo) {
	repo := &fakeRepo{promotions: promotions, nextID: int64(len(promotions))}
	return NewService(repo, fixedClock{now: now}, nopLogger{}), repo
}

func TestValidate_CappedPercentage(t *testing.T) {
	svc, _ := newTestService(newPromotion("SPRING"))

	got, err := svc.Validate(context.Background(), ValidateRequest{BusinessID: 1, Code: "  spring ", Subtotal: 1000})
	require.NoError(t, err)
	assert.True(t, got.Applicable)
	assert.Equal(t, 200.0, got.DiscountAmount)
	assert.Equal(t, 800.0, got.FinalAmount)
}

func TestValidate_NotApplicable(t *testing.T) {
	limited := newPromotion("LIMIT")
	limited.MaxUses = ptr.Ptr(3)
	limited.UsesCount = 3

	minPurchase := newPromotion("BIG")
	minPurchase.ID = 2
	minPurchase.MinPurchase = 5000

	restricted := newPromotion("HAIR")
	restricted.ID = 3
	restricted.ServiceIDs = []int64{7, 8}

	svc, _ := newTestService(limited, minPurchase, restricted)

	tests := []struct {
		code   string
		reason domain.DiscountRejection
	}{
		{code: "LIMIT", reason: domain.RejectionUsageLimit},
		{code: "BIG", reason: domain.RejectionMinPurchase},
		{code: "HAIR", reason: domain.RejectionServiceMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := svc.Validate(context.Background(), ValidateRequest{
				BusinessID: 1,
				Code:       tt.code,
				Subtotal:   1000,
				ServiceIDs: []int64{1, 2},
			})
			require.NoError(t, err)
			assert.False(t, got.Applicable)
			assert.Equal(t, tt.reason, got.Reason)
			assert.Zero(t, got.DiscountAmount)
			assert.Equal(t, 1000.0, got.FinalAmount)
		})
	}
}

func TestValidate_NotFound(t *testing.T) {
	expired := newPromotion("OLD")
	expired.ValidUntil = now.Add(-time.Hour)

	other := newPromotion("OTHER")
	other.BusinessID = 2

	svc, _ := newTestService(expired, other)

	for _, code := range []string{"OLD", "OTHER", "MISSING"} {
		_, err := svc.Validate(context.Background(), ValidateRequest{BusinessID: 1, Code: code, Subtotal: 100})
		assert.ErrorIs(t, err, domain.ErrNotFound, code)
	}

	_, err := svc.Validate(context.Background(), ValidateRequest{BusinessID: 1, Code: "   ", Subtotal: 100})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestValidate_FixedLargerThanSubtotal(t *testing.T) {
	fixed := newPromotion("FIX")
	fixed.DiscountType = domain.DiscountFixed
	fixed.Value = 1500
	fixed.MaxDiscountAmount = nil

	svc, _ := newTestService(fixed)

	got, err := svc.Validate(context.Background(), ValidateRequest{BusinessID: 1, Code: "FIX", Subtotal: 1000})
	require.NoError(t, err)
	assert.Equal(t, 1500.0, got.DiscountAmount)
	assert.Equal(t, 0.0, got.FinalAmount)
}

func TestRedeem(t *testing.T) {
	p := newPromotion("ONCE")
	p.MaxUses = ptr.Ptr(1)
	svc, _ := newTestService(p)

	require.NoError(t, svc.Redeem(context.Background(), p))
	assert.Equal(t, 1, p.UsesCount)

	err := svc.Redeem(context.Background(), p)
	assert.ErrorIs(t, err, ErrPromotionExhausted)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func validCreateRequest() *CreatePromotionRequest {
	return &CreatePromotionRequest{
		BusinessID:   1,
		Code:         "summer25",
		Name:         "Лето",
		DiscountType: domain.DiscountPercentage,
		Value:        25,
		ValidFrom:    now,
		ValidUntil:   now.Add(30 * 24 * time.Hour),
	}
}

func TestCreate(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, "SUMMER25", created.Code)
	assert.Equal(t, domain.PromotionActive, created.Status)

	_, err = svc.Create(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, domain.ErrConflict)

	list, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Len(t, repo.promotions, 1)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *CreatePromotionRequest)
	}{
		{name: "empty code", modify: func(r *CreatePromotionRequest) { r.Code = " " }},
		{name: "code with spaces", modify: func(r *CreatePromotionRequest) { r.Code = "TWO WORDS" }},
		{name: "empty name", modify: func(r *CreatePromotionRequest) { r.Name = "" }},
		{name: "percentage over 100", modify: func(r *CreatePromotionRequest) { r.Value = 150 }},
		{name: "zero value", modify: func(r *CreatePromotionRequest) { r.Value = 0 }},
		{name: "cap on fixed", modify: func(r *CreatePromotionRequest) {
			r.DiscountType = domain.DiscountFixed
			r.MaxDiscountAmount = ptr.Ptr(10.0)
		}},
		{name: "unknown type", modify: func(r *CreatePromotionRequest) { r.DiscountType = "bogo" }},
		{name: "window reversed", modify: func(r *CreatePromotionRequest) { r.ValidUntil = r.ValidFrom.Add(-time.Hour) }},
		{name: "zero max uses", modify: func(r *CreatePromotionRequest) { r.MaxUses = ptr.Ptr(0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService()
			req := validCreateRequest()
			tt.modify(req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrBadRequest)
			assert.Empty(t, repo.promotions)
		})
	}
}
