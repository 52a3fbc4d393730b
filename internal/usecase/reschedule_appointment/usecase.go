package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// UseCase перенос записи на другое время или к другому сотруднику
type UseCase struct {
	appointmentRepo AppointmentRepository
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
	availability AvailabilityChecker,
	catalog CatalogClient,
	settings SettingsProvider,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		availability:    availability,
		catalog:         catalog,
		settings:        settings,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute переносит запись в статусе pending или confirmed.
// Собственный интервал записи не считается конфликтом.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	uc.logger.Info("RescheduleAppointment: business=%d, appointment=%d, date=%s, start=%s",
		req.BusinessID, req.AppointmentID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Новое время не должно быть в прошлом
	settings, err := uc.settings.Get(ctx, req.BusinessID)
	if err != nil {
		uc.logger.Error("RescheduleAppointment: failed to get settings for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	if err := validateNotInPast(req, uc.timeProvider.Now(), settings.Location()); err != nil {
		uc.logger.Warn("RescheduleAppointment: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	// 3. Проверка и перенос в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Текущая запись (строка блокируется)
		current, err := uc.appointmentRepo.GetByID(txCtx, req.BusinessID, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}
		if !reschedulable(current.Status) {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d in status %s cannot be moved", req.AppointmentID, current.Status)
			return ErrAppointmentNotFound
		}

		// 3.2. Сотрудник
		staffID, staffName := current.StaffID, current.StaffName
		if req.StaffID != nil && *req.StaffID != current.StaffID {
			staff, err := uc.resolveStaff(txCtx, req.BusinessID, *req.StaffID)
			if err != nil {
				return err
			}
			staffID, staffName = staff.ID, staff.Name
		}

		// 3.3. Занятость сотрудника без учёта самой записи
		excludeID := current.ID
		check, err := uc.availability.Check(txCtx, availability.CheckRequest{
			BusinessID:           req.BusinessID,
			StaffID:              staffID,
			ServiceIDs:           current.ServiceIDs(),
			Date:                 req.Date,
			StartTime:            req.StartTime,
			ExcludeAppointmentID: &excludeID,
		})
		if err != nil {
			if errors.Is(err, domain.ErrBadRequest) || errors.Is(err, domain.ErrNotFound) {
				uc.logger.Warn("RescheduleAppointment: availability check rejected: %v", err)
				return err
			}
			uc.logger.Error("RescheduleAppointment: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check: %w", ErrInternal, err)
		}
		if !check.Available {
			uc.logger.Warn("RescheduleAppointment: slot is taken, conflicts=%v", check.ConflictIDs)
			return ErrSlotNotAvailable
		}

		// 3.4. UPDATE ... WHERE status IN (pending, confirmed)
		ok, err := uc.appointmentRepo.Reschedule(txCtx, domain.RescheduleCommand{
			AppointmentID: current.ID,
			BusinessID:    req.BusinessID,
			From:          domain.ReschedulableStatuses,
			StaffID:       staffID,
			StaffName:     staffName,
			Date:          req.Date,
			StartTime:     check.StartTime,
			EndTime:       check.EndTime,
			StartAt:       check.StartAt,
			EndAt:         check.EndAt,
			TotalDuration: check.TotalDuration,
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("RescheduleAppointment: slot was taken concurrently: %v", err)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("RescheduleAppointment: failed to update appointment id=%d: %v", current.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}
		if !ok {
			return ErrAppointmentNotFound
		}

		updated, err := uc.appointmentRepo.GetByID(txCtx, req.BusinessID, current.ID)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to reload appointment id=%d: %v", current.ID, err)
			return fmt.Errorf("%w: failed to reload appointment: %w", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("RescheduleAppointment: serialization conflict: %v", err)
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: appointment id=%d moved to %s %s, staff=%d",
		result.ID, result.Date.Format(domain.DateFormat), result.StartTime, result.StaffID)

	// 4. Уведомление
	payload := map[string]interface{}{
		"date":      result.Date.Format(domain.DateFormat),
		"startTime": result.StartTime.String(),
		"endTime":   result.EndTime.String(),
		"staffId":   result.StaffID,
	}
	if err := uc.notifier.Notify(ctx, domain.NotificationAppointmentRescheduled, domain.RecipientOf(result), result.ID, payload); err != nil {
		uc.logger.Error("RescheduleAppointment: failed to notify about appointment id=%d: %v", result.ID, err)
	}

	return result, nil
}

func (uc *UseCase) resolveStaff(ctx context.Context, businessID, staffID int64) (*domain.Staff, error) {
	staff, err := uc.catalog.GetStaff(ctx, businessID, staffID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrStaffNotFound) {
			uc.logger.Warn("RescheduleAppointment: staff id=%d not found", staffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.IsActive {
		return nil, ErrStaffInactive
	}
	return staff, nil
}

func reschedulable(s domain.AppointmentStatus) bool {
	for _, allowed := range domain.ReschedulableStatuses {
		if s == allowed {
			return true
		}
	}
	return false
}
