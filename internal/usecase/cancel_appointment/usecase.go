package cancel_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
)

// UseCase отмена записи клиентом с расчётом возврата депозита
type UseCase struct {
	appointmentRepo AppointmentRepository
	settings        SettingsProvider
	clientClient    ClientServiceClient
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр usecase
func NewUseCase(
	appointmentRepo AppointmentRepository,
	settings SettingsProvider,
	clientClient ClientServiceClient,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		settings:        settings,
		clientClient:    clientClient,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute отменяет запись клиента по политике бизнеса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelAppointment: business=%d, appointment=%d, client=%d",
		req.BusinessID, req.AppointmentID, req.ClientID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Политика отмены бизнеса
	settings, err := uc.settings.Get(ctx, req.BusinessID)
	if err != nil {
		uc.logger.Error("CancelAppointment: failed to get settings for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	transition, err := domain.TransitionFor(domain.ActionCancel)
	if err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()
	var result *Response

	// 3. Расчёт возврата и условный переход в транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Запись клиента (строка блокируется)
		current, err := uc.appointmentRepo.GetByID(txCtx, req.BusinessID, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("CancelAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("CancelAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}
		if !ownedBy(current, req.ClientID) {
			uc.logger.Warn("CancelAppointment: appointment id=%d does not belong to client=%d", req.AppointmentID, req.ClientID)
			return ErrAppointmentNotFound
		}
		if !transition.Allows(current.Status) {
			uc.logger.Warn("CancelAppointment: appointment id=%d in status %s cannot be cancelled", req.AppointmentID, current.Status)
			return ErrAppointmentNotFound
		}

		// 3.2. Штраф и возврат
		refund, err := domain.CalculateRefund(current.StartAt, now, settings.Cancellation, current.RefundableDeposit())
		if err != nil {
			uc.logger.Warn("CancelAppointment: business=%d does not allow cancellation", req.BusinessID)
			return err
		}

		// 3.3. UPDATE ... WHERE status IN (pending, confirmed)
		ok, err := uc.appointmentRepo.ConditionalTransition(txCtx, domain.TransitionCommand{
			AppointmentID: req.AppointmentID,
			BusinessID:    req.BusinessID,
			From:          transition.From,
			To:            transition.To,
			Cancellation: &domain.Cancellation{
				CancelledAt:  now,
				CancelledBy:  domain.CancelledByClient,
				Reason:       req.Reason,
				Refunded:     refund.RefundAmount > 0,
				RefundAmount: refund.RefundAmount,
			},
		})
		if err != nil {
			uc.logger.Error("CancelAppointment: failed to update appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}
		if !ok {
			uc.logger.Warn("CancelAppointment: appointment id=%d changed concurrently", req.AppointmentID)
			return ErrAppointmentNotFound
		}

		updated, err := uc.appointmentRepo.GetByID(txCtx, req.BusinessID, req.AppointmentID)
		if err != nil {
			uc.logger.Error("CancelAppointment: failed to reload appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to reload appointment: %v", ErrInternal, err)
		}

		result = &Response{Appointment: updated, Refund: refund}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelAppointment: appointment id=%d cancelled, refund=%.2f, penalty=%.2f",
		result.Appointment.ID, result.Refund.RefundAmount, result.Refund.PenaltyAmount)

	// 4. Статистика клиента и уведомление; ошибки только логируются
	if err := uc.clientClient.IncrementCancelledCount(ctx, req.ClientID); err != nil {
		uc.logger.Error("CancelAppointment: failed to update cancellation stats of client=%d: %v", req.ClientID, err)
	}
	uc.notify(ctx, result)

	return result, nil
}

func (uc *UseCase) notify(ctx context.Context, r *Response) {
	a := r.Appointment
	payload := map[string]interface{}{
		"cancelledBy":    string(domain.CancelledByClient),
		"date":           a.Date.Format(domain.DateFormat),
		"startTime":      a.StartTime.String(),
		"penaltyApplied": r.Refund.PenaltyApplied,
		"penaltyAmount":  r.Refund.PenaltyAmount,
		"refundAmount":   r.Refund.RefundAmount,
	}
	if err := uc.notifier.Notify(ctx, domain.NotificationAppointmentCancelled, domain.RecipientOf(a), a.ID, payload); err != nil {
		uc.logger.Error("CancelAppointment: failed to notify about appointment id=%d: %v", a.ID, err)
	}
}
