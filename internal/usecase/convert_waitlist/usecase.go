package convert_waitlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	waitlistRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// UseCase превращение заявки листа ожидания в подтверждённую запись
type UseCase struct {
	appointmentRepo AppointmentRepository
	waitlistRepo    WaitlistRepository
	availability    AvailabilityChecker
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
	waitlistRepo WaitlistRepository,
	availability AvailabilityChecker,
	catalog CatalogClient,
	settings SettingsProvider,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		waitlistRepo:    waitlistRepo,
		availability:    availability,
		catalog:         catalog,
		settings:        settings,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute создает запись по заявке и закрывает заявку.
// Всё выполняется в одной сериализуемой транзакции: при любой ошибке
// не остаётся ни записи, ни закрытой заявки.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConvertWaitlist: business=%d, entry=%d, date=%s, start=%s",
		req.BusinessID, req.EntryID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConvertWaitlist: validation failed: %v", err)
		return nil, err
	}

	// 2. Настройки бизнеса и проверка времени
	settings, err := uc.settings.Get(ctx, req.BusinessID)
	if err != nil {
		uc.logger.Error("ConvertWaitlist: failed to get settings for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	now := uc.timeProvider.Now()
	if err := validateNotInPast(req, now, settings.Location()); err != nil {
		uc.logger.Warn("ConvertWaitlist: %v", err)
		return nil, err
	}

	var result *Response

	// 3. Заявка, проверка, запись и закрытие заявки в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Заявка (строка блокируется)
		entry, err := uc.waitlistRepo.GetByID(txCtx, req.BusinessID, req.EntryID)
		if err != nil {
			if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
				uc.logger.Warn("ConvertWaitlist: entry id=%d not found", req.EntryID)
				return ErrEntryNotFound
			}
			if txmanager.IsSerializationFailure(err) {
				uc.logger.Warn("ConvertWaitlist: entry id=%d changed concurrently: %v", req.EntryID, err)
				return ErrEntryNotFound
			}
			uc.logger.Error("ConvertWaitlist: failed to get entry id=%d: %v", req.EntryID, err)
			return fmt.Errorf("%w: failed to get entry: %v", ErrInternal, err)
		}
		if !entry.IsActive() {
			uc.logger.Warn("ConvertWaitlist: entry id=%d is %s", req.EntryID, entry.Status)
			return ErrEntryNotFound
		}

		// 3.2. Сотрудник
		staffID, err := staffFor(req, entry)
		if err != nil {
			return err
		}
		staff, err := uc.resolveStaff(txCtx, req.BusinessID, staffID)
		if err != nil {
			return err
		}

		// 3.3. Занятость сотрудника
		check, err := uc.availability.Check(txCtx, availability.CheckRequest{
			BusinessID: req.BusinessID,
			StaffID:    staff.ID,
			ServiceIDs: entry.ServiceIDs,
			Date:       req.Date,
			StartTime:  req.StartTime,
		})
		if err != nil {
			if errors.Is(err, domain.ErrBadRequest) || errors.Is(err, domain.ErrNotFound) {
				uc.logger.Warn("ConvertWaitlist: availability check rejected: %v", err)
				return err
			}
			uc.logger.Error("ConvertWaitlist: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check: %w", ErrInternal, err)
		}
		if !check.Available {
			uc.logger.Warn("ConvertWaitlist: slot is taken, conflicts=%v", check.ConflictIDs)
			return ErrSlotNotAvailable
		}

		// 3.4. Запись из заявки
		clientID := entry.ClientID
		entryID := entry.ID
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			BusinessID:      req.BusinessID,
			StaffID:         staff.ID,
			StaffName:       staff.Name,
			ClientID:        &clientID,
			Date:            req.Date,
			StartTime:       check.StartTime,
			EndTime:         check.EndTime,
			StartAt:         check.StartAt,
			EndAt:           check.EndAt,
			TotalDuration:   check.TotalDuration,
			Services:        check.Services,
			Pricing:         domain.NewPricing(check.Services, 0, nil, check.Settings.Deposit),
			Status:          domain.StatusConfirmed,
			Source:          domain.SourceWaitlist,
			WaitlistEntryID: &entryID,
			Notes:           req.Notes,
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("ConvertWaitlist: slot was taken concurrently: %v", err)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("ConvertWaitlist: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		// 3.5. UPDATE waitlist ... WHERE status = 'active'
		appointmentID := created.ID
		ok, err := uc.waitlistRepo.Fulfill(txCtx, domain.FulfillCommand{
			EntryID:       entry.ID,
			BusinessID:    req.BusinessID,
			AppointmentID: created.ID,
			Notification: domain.WaitlistNotification{
				AppointmentID: &appointmentID,
				SentAt:        now,
				Outcome:       domain.OutcomeAccepted,
			},
		})
		if err != nil {
			uc.logger.Error("ConvertWaitlist: failed to fulfill entry id=%d: %v", entry.ID, err)
			return fmt.Errorf("%w: failed to fulfill entry: %w", ErrInternal, err)
		}
		if !ok {
			uc.logger.Warn("ConvertWaitlist: entry id=%d changed concurrently", entry.ID)
			return ErrEntryNotFound
		}

		result = &Response{Appointment: created, EntryID: entry.ID}
		return nil
	})

	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("ConvertWaitlist: serialization conflict: %v", err)
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("ConvertWaitlist: entry id=%d converted into appointment id=%d", result.EntryID, result.Appointment.ID)

	// 4. Уведомление
	a := result.Appointment
	payload := map[string]interface{}{
		"waitlistEntryId": result.EntryID,
		"date":            a.Date.Format(domain.DateFormat),
		"startTime":       a.StartTime.String(),
		"endTime":         a.EndTime.String(),
	}
	if err := uc.notifier.Notify(ctx, domain.NotificationWaitlistConverted, domain.RecipientOf(a), a.ID, payload); err != nil {
		uc.logger.Error("ConvertWaitlist: failed to notify about appointment id=%d: %v", a.ID, err)
	}

	return result, nil
}

func (uc *UseCase) resolveStaff(ctx context.Context, businessID, staffID int64) (*domain.Staff, error) {
	staff, err := uc.catalog.GetStaff(ctx, businessID, staffID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrStaffNotFound) {
			uc.logger.Warn("ConvertWaitlist: staff id=%d not found", staffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("ConvertWaitlist: failed to get staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.IsActive {
		return nil, ErrStaffInactive
	}
	return staff, nil
}
