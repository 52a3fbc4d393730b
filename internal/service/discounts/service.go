package discounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	promotionRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/promotion"
)

// Service сервис промоакций и промокодов
type Service struct {
	repo         PromotionRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса скидок
func NewService(repo PromotionRepository, timeProvider TimeProvider, logger Logger) *Service {
	return &Service{
		repo:         repo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Validate ищет действующую промоакцию по коду и проверяет условия применения
func (s *Service) Validate(ctx context.Context, req ValidateRequest) (*ValidateResult, error) {
	code := domain.NormalizePromotionCode(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: promotion code is required", ErrInvalidInput)
	}
	if req.Subtotal < 0 {
		return nil, fmt.Errorf("%w: subtotal must not be negative", ErrInvalidInput)
	}

	promotion, err := s.repo.GetActiveByCode(ctx, req.BusinessID, code, s.timeProvider.Now())
	if err != nil {
		if errors.Is(err, promotionRepo.ErrPromotionNotFound) {
			s.logger.Warn("Validate: promotion code=%s not found for business=%d", code, req.BusinessID)
			return nil, ErrPromotionNotFound
		}
		s.logger.Error("Validate: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: Validate - repository error: %w", ErrInternal, err)
	}

	result := &ValidateResult{
		Promotion:   promotion,
		FinalAmount: req.Subtotal,
	}

	if reason := promotion.CheckEligibility(req.Subtotal, req.ServiceIDs); reason != domain.RejectionNone {
		s.logger.Info("Validate: promotion id=%d is not applicable: %s", promotion.ID, reason)
		result.Reason = reason
		return result, nil
	}

	amount := domain.CalculateDiscountAmount(promotion, req.Subtotal)
	result.Applicable = true
	result.DiscountAmount = amount
	result.FinalAmount = req.Subtotal - min(amount, req.Subtotal)

	return result, nil
}

// Redeem списывает одно использование промоакции условным обновлением.
// Вызывается внутри транзакции бронирования.
func (s *Service) Redeem(ctx context.Context, promotion *domain.Promotion) error {
	ok, err := s.repo.IncrementUsage(ctx, promotion.BusinessID, promotion.ID)
	if err != nil {
		s.logger.Error("Redeem: repository error for promotion id=%d: %v", promotion.ID, err)
		return fmt.Errorf("%w: Redeem - repository error: %w", ErrInternal, err)
	}
	if !ok {
		return ErrPromotionExhausted
	}
	return nil
}

// Create создает промоакцию
func (s *Service) Create(ctx context.Context, req *CreatePromotionRequest) (*domain.Promotion, error) {
	s.logger.Info("Create: creating promotion code=%s for business=%d", req.Code, req.BusinessID)

	promotion := req.ToDomain()
	if err := validatePromotion(promotion); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.repo.Create(ctx, promotion)
	if err != nil {
		if errors.Is(err, promotionRepo.ErrDuplicateCode) {
			s.logger.Warn("Create: promotion code=%s already exists for business=%d", promotion.Code, req.BusinessID)
			return nil, ErrDuplicateCode
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created promotion id=%d", created.ID)
	return created, nil
}

// List возвращает промоакции бизнеса
func (s *Service) List(ctx context.Context, businessID int64) ([]*domain.Promotion, error) {
	promotions, err := s.repo.ListByBusiness(ctx, businessID)
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return promotions, nil
}

func validatePromotion(p *domain.Promotion) error {
	if p.BusinessID <= 0 {
		return fmt.Errorf("%w: businessId is required", ErrInvalidInput)
	}
	if p.Code == "" || len(p.Code) > domain.MaxPromotionCodeLength || strings.ContainsAny(p.Code, " \t\n") {
		return fmt.Errorf("%w: code must be 1-%d characters without spaces", ErrInvalidInput, domain.MaxPromotionCodeLength)
	}
	if strings.TrimSpace(p.Name) == "" || len(p.Name) > domain.MaxPromotionNameLength {
		return fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, domain.MaxPromotionNameLength)
	}

	switch p.DiscountType {
	case domain.DiscountPercentage:
		if p.Value <= 0 || p.Value > 100 {
			return fmt.Errorf("%w: percentage value must be in (0, 100]", ErrInvalidInput)
		}
		if p.MaxDiscountAmount != nil && *p.MaxDiscountAmount <= 0 {
			return fmt.Errorf("%w: maxDiscountAmount must be positive", ErrInvalidInput)
		}
	case domain.DiscountFixed:
		if p.Value <= 0 {
			return fmt.Errorf("%w: fixed value must be positive", ErrInvalidInput)
		}
		if p.MaxDiscountAmount != nil {
			return fmt.Errorf("%w: maxDiscountAmount is only allowed for percentage discounts", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown discountType %q", ErrInvalidInput, p.DiscountType)
	}

	if p.ValidFrom.IsZero() || p.ValidUntil.IsZero() {
		return fmt.Errorf("%w: validFrom and validUntil are required", ErrInvalidInput)
	}
	if p.ValidUntil.Before(p.ValidFrom) {
		return fmt.Errorf("%w: validUntil must not be before validFrom", ErrInvalidInput)
	}
	if p.MinPurchase < 0 {
		return fmt.Errorf("%w: minPurchase must not be negative", ErrInvalidInput)
	}
	if p.MaxUses != nil && *p.MaxUses <= 0 {
		return fmt.Errorf("%w: maxUses must be positive", ErrInvalidInput)
	}

	return nil
}
