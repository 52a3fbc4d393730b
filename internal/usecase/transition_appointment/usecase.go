package transition_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
)

// UseCase выполнение действия машины состояний записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр usecase
func NewUseCase(appointmentRepo AppointmentRepository, notifier Notifier, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute применяет действие к записи.
// Смена статуса выполняется одним условным UPDATE по допустимым исходным статусам;
// если запись уже в другом статусе, возвращается ErrAppointmentNotFound.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	uc.logger.Info("TransitionAppointment: business=%d, appointment=%d, action=%s",
		req.BusinessID, req.AppointmentID, req.Action)

	// 1. Валидация входных данных
	action, err := domain.ParseAction(req.Action)
	if err != nil {
		uc.logger.Warn("TransitionAppointment: unknown action %q", req.Action)
		return nil, err
	}
	if err := validateRequest(req, action); err != nil {
		uc.logger.Warn("TransitionAppointment: validation failed: %v", err)
		return nil, err
	}

	transition, err := domain.TransitionFor(action)
	if err != nil {
		return nil, err
	}

	var result *domain.Appointment

	// 2. Условный переход в транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Текущее состояние (строка блокируется)
		current, err := uc.appointmentRepo.GetByID(txCtx, req.BusinessID, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("TransitionAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("TransitionAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.2. Команда перехода
		cmd := domain.TransitionCommand{
			AppointmentID: req.AppointmentID,
			BusinessID:    req.BusinessID,
			From:          transition.From,
			To:            transition.To,
			Tip:           req.Tip,
		}
		if action == domain.ActionCancel {
			cmd.Cancellation = businessCancellation(current, req.Reason, uc.timeProvider)
		}

		// 2.3. UPDATE ... WHERE status IN (from)
		ok, err := uc.appointmentRepo.ConditionalTransition(txCtx, cmd)
		if err != nil {
			uc.logger.Error("TransitionAppointment: failed to update appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}
		if !ok {
			uc.logger.Warn("TransitionAppointment: appointment id=%d in status %s does not allow %s",
				req.AppointmentID, current.Status, action)
			return ErrAppointmentNotFound
		}

		// 2.4. Перечитываем запись после обновления
		updated, err := uc.appointmentRepo.GetByID(txCtx, req.BusinessID, req.AppointmentID)
		if err != nil {
			uc.logger.Error("TransitionAppointment: failed to reload appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to reload appointment: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("TransitionAppointment: appointment id=%d is now %s", result.ID, result.Status)

	// 3. Уведомления после подтверждения и отмены
	uc.notify(ctx, action, result)

	return result, nil
}

// businessCancellation отмена бизнесом возвращает клиенту весь оплаченный депозит
func businessCancellation(a *domain.Appointment, reason *string, clock TimeProvider) *domain.Cancellation {
	refund := a.RefundableDeposit()
	return &domain.Cancellation{
		CancelledAt:  clock.Now(),
		CancelledBy:  domain.CancelledByBusiness,
		Reason:       reason,
		Refunded:     refund > 0,
		RefundAmount: refund,
	}
}

func (uc *UseCase) notify(ctx context.Context, action domain.Action, a *domain.Appointment) {
	var kind domain.NotificationKind
	switch action {
	case domain.ActionConfirm:
		kind = domain.NotificationAppointmentConfirmed
	case domain.ActionCancel:
		kind = domain.NotificationAppointmentCancelled
	default:
		return
	}

	payload := map[string]interface{}{
		"status":    string(a.Status),
		"date":      a.Date.Format(domain.DateFormat),
		"startTime": a.StartTime.String(),
	}
	if a.Cancellation != nil {
		payload["cancelledBy"] = string(a.Cancellation.CancelledBy)
		payload["refundAmount"] = a.Cancellation.RefundAmount
	}

	if err := uc.notifier.Notify(ctx, kind, domain.RecipientOf(a), a.ID, payload); err != nil {
		uc.logger.Error("TransitionAppointment: failed to notify about appointment id=%d: %v", a.ID, err)
	}
}
