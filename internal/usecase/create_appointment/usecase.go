package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/service/discounts"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// UseCase создание записи клиентом или сотрудником бизнеса
type UseCase struct {
	appointmentRepo AppointmentRepository
	availability    AvailabilityChecker
	discounts       DiscountService
	catalog         CatalogClient
	settings        SettingsProvider
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр usecase
func NewUseCase(
	appointmentRepo AppointmentRepository,
	availability AvailabilityChecker,
	discounts DiscountService,
	catalog CatalogClient,
	settings SettingsProvider,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		availability:    availability,
		discounts:       discounts,
		catalog:         catalog,
		settings:        settings,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute создает запись.
// Проверка занятости, списание промокода и вставка выполняются в одной сериализуемой транзакции,
// поэтому из двух конкурентных записей на пересекающееся время проходит только одна.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: business=%d, staff=%d, date=%s, start=%s, source=%s",
		req.BusinessID, req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime, req.Source)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Настройки бизнеса: часовой пояс и правила депозита
	settings, err := uc.settings.Get(ctx, req.BusinessID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get settings for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 3. Время записи не должно быть в прошлом
	if err := validateNotInPast(req, uc.timeProvider.Now(), settings.Location()); err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		return nil, err
	}

	// 4. Сотрудник
	staff, err := uc.catalog.GetStaff(ctx, req.BusinessID, req.StaffID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrStaffNotFound) {
			uc.logger.Warn("CreateAppointment: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.IsActive {
		uc.logger.Warn("CreateAppointment: staff id=%d is inactive", req.StaffID)
		return nil, ErrStaffInactive
	}

	var result *Response

	// 5. Проверка, скидка и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Занятость сотрудника (строки дня блокируются)
		check, err := uc.availability.Check(txCtx, availability.CheckRequest{
			BusinessID: req.BusinessID,
			StaffID:    req.StaffID,
			ServiceIDs: req.ServiceIDs,
			Date:       req.Date,
			StartTime:  req.StartTime,
		})
		if err != nil {
			return uc.mapDependencyErr("availability check", err)
		}
		if !check.Available {
			uc.logger.Warn("CreateAppointment: slot is taken, conflicts=%v", check.ConflictIDs)
			return ErrSlotNotAvailable
		}

		// 5.2. Промокод
		discount, promotionID, err := uc.applyPromotion(txCtx, req, check.Services)
		if err != nil {
			return err
		}

		// 5.3. Цена и депозит по снимкам услуг
		pricing := domain.NewPricing(check.Services, discount, promotionID, check.Settings.Deposit)

		// 5.4. Сохраняем запись
		appointment := &domain.Appointment{
			BusinessID:    req.BusinessID,
			StaffID:       req.StaffID,
			StaffName:     staff.Name,
			ClientID:      req.ClientID,
			ClientInfo:    req.ClientInfo,
			Date:          req.Date,
			StartTime:     check.StartTime,
			EndTime:       check.EndTime,
			StartAt:       check.StartAt,
			EndAt:         check.EndAt,
			TotalDuration: check.TotalDuration,
			Services:      check.Services,
			Pricing:       pricing,
			Status:        initialStatus(req.Source),
			Source:        req.Source,
			Notes:         req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateAppointment: slot was taken concurrently: %v", err)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = &Response{
			Appointment:     created,
			ServiceDuration: check.ServiceDuration,
			BufferMinutes:   check.BufferMinutes,
		}
		return nil
	})

	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateAppointment: serialization conflict: %v", err)
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.Appointment.ID)

	// 6. Уведомление; ошибка доставки не отменяет запись
	uc.notify(ctx, result.Appointment)

	return result, nil
}

// applyPromotion проверяет и списывает промокод, если он передан
func (uc *UseCase) applyPromotion(ctx context.Context, req *Request, services []domain.BookedService) (float64, *int64, error) {
	if req.PromotionCode == nil || *req.PromotionCode == "" {
		return 0, nil, nil
	}

	validation, err := uc.discounts.Validate(ctx, discounts.ValidateRequest{
		BusinessID: req.BusinessID,
		Code:       *req.PromotionCode,
		Subtotal:   domain.Subtotal(services),
		ServiceIDs: req.ServiceIDs,
	})
	if err != nil {
		return 0, nil, uc.mapDependencyErr("promotion validation", err)
	}
	if !validation.Applicable {
		uc.logger.Warn("CreateAppointment: promotion %s is not applicable: %s", *req.PromotionCode, validation.Reason)
		return 0, nil, fmt.Errorf("%w: %s", ErrPromotionNotApplicable, validation.Reason)
	}

	if err := uc.discounts.Redeem(ctx, validation.Promotion); err != nil {
		return 0, nil, uc.mapDependencyErr("promotion redeem", err)
	}

	id := validation.Promotion.ID
	return validation.DiscountAmount, &id, nil
}

// mapDependencyErr пропускает классифицированные ошибки сервисов как есть, остальное считает внутренней ошибкой
func (uc *UseCase) mapDependencyErr(step string, err error) error {
	if errors.Is(err, domain.ErrBadRequest) || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
		uc.logger.Warn("CreateAppointment: %s rejected: %v", step, err)
		return err
	}
	uc.logger.Error("CreateAppointment: %s failed: %v", step, err)
	return fmt.Errorf("%w: %s: %w", ErrInternal, step, err)
}

func (uc *UseCase) notify(ctx context.Context, a *domain.Appointment) {
	payload := map[string]interface{}{
		"status":    string(a.Status),
		"source":    string(a.Source),
		"date":      a.Date.Format(domain.DateFormat),
		"startTime": a.StartTime.String(),
		"endTime":   a.EndTime.String(),
		"total":     a.Pricing.Total,
	}
	if err := uc.notifier.Notify(ctx, domain.NotificationAppointmentBooked, domain.RecipientOf(a), a.ID, payload); err != nil {
		uc.logger.Error("CreateAppointment: failed to notify about appointment id=%d: %v", a.ID, err)
	}
}
