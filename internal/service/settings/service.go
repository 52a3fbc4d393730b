package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
)

// Service сервис настроек бизнеса
type Service struct {
	repo   SettingsRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(repo SettingsRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Get возвращает настройки бизнеса; если бизнес ничего не настраивал, возвращаются значения по умолчанию
func (s *Service) Get(ctx context.Context, businessID int64) (*domain.BusinessSettings, error) {
	settings, err := s.repo.Get(ctx, businessID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return domain.DefaultBusinessSettings(businessID), nil
		}
		s.logger.Error("Get: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return settings, nil
}

// Update частично обновляет настройки бизнеса
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*domain.BusinessSettings, error) {
	s.logger.Info("Update: updating settings for business=%d", req.BusinessID)

	// 1. Получаем текущие настройки (или значения по умолчанию)
	current, err := s.Get(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}

	// 2. Применяем изменения и валидируем результат целиком
	updated := req.Apply(*current)
	if err := Validate(updated); err != nil {
		s.logger.Warn("Update: validation failed for business=%d: %v", req.BusinessID, err)
		return nil, err
	}

	// 3. Сохраняем
	saved, err := s.repo.Upsert(ctx, updated)
	if err != nil {
		s.logger.Error("Update: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated settings for business=%d", req.BusinessID)
	return saved, nil
}

// Validate проверяет настройки бизнеса
func Validate(s *domain.BusinessSettings) error {
	if s.BufferMinutes < 0 || s.BufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes must be between 0 and %d", ErrInvalidInput, domain.MaxBufferMinutes)
	}

	if s.Timezone == "" {
		return fmt.Errorf("%w: timezone is required", ErrInvalidInput)
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, s.Timezone)
	}

	policy := s.Cancellation
	if policy.HoursBeforeAppointment < 0 || policy.HoursBeforeAppointment > domain.MaxCancellationHours {
		return fmt.Errorf("%w: hoursBeforeAppointment must be between 0 and %d", ErrInvalidInput, domain.MaxCancellationHours)
	}
	if policy.PenaltyAmount < 0 {
		return fmt.Errorf("%w: penaltyAmount must not be negative", ErrInvalidInput)
	}
	switch policy.PenaltyType {
	case domain.PenaltyNone, domain.PenaltyFixed:
	case domain.PenaltyPercentage:
		if policy.PenaltyAmount > 100 {
			return fmt.Errorf("%w: percentage penalty must not exceed 100", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown penaltyType %q", ErrInvalidInput, policy.PenaltyType)
	}

	deposit := s.Deposit
	if deposit.Amount < 0 {
		return fmt.Errorf("%w: deposit amount must not be negative", ErrInvalidInput)
	}
	switch deposit.Type {
	case domain.DepositNone, domain.DepositFixed:
	case domain.DepositPercentage:
		if deposit.Amount > 100 {
			return fmt.Errorf("%w: percentage deposit must not exceed 100", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown deposit type %q", ErrInvalidInput, deposit.Type)
	}

	return nil
}
