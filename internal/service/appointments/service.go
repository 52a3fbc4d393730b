package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
)

// Service чтение записей и отметка оплаты депозита
type Service struct {
	repo      AppointmentRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(repo AppointmentRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

// GetByID получает запись бизнеса по ID
func (s *Service) GetByID(ctx context.Context, businessID, id int64) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, businessID, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found in business=%d", id, businessID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return appointment, nil
}

// ListStaffDay возвращает записи сотрудника на дату, по умолчанию только активные
func (s *Service) ListStaffDay(ctx context.Context, filter domain.StaffDayFilter) ([]*domain.Appointment, error) {
	if filter.BusinessID <= 0 || filter.StaffID <= 0 || filter.Date.IsZero() {
		return nil, fmt.Errorf("%w: businessId, staffId and date are required", ErrInvalidInput)
	}

	appointments, err := s.repo.ListStaffDay(ctx, filter)
	if err != nil {
		s.logger.Error("ListStaffDay: repository error for staff=%d: %v", filter.StaffID, err)
		return nil, fmt.Errorf("%w: ListStaffDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListStaffDay: fetched %d appointments for staff=%d on %s",
		len(appointments), filter.StaffID, filter.Date.Format(domain.DateFormat))
	return appointments, nil
}

// MarkDepositPaid отмечает депозит оплаченным (callback платежного сервиса).
// Запись в финальном статусе считается ненайденной.
func (s *Service) MarkDepositPaid(ctx context.Context, businessID, id int64) (*domain.Appointment, error) {
	s.logger.Info("MarkDepositPaid: appointment id=%d, business=%d", id, businessID)

	var result *domain.Appointment
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		appointment, err := s.GetByID(ctx, businessID, id)
		if err != nil {
			return err
		}
		if appointment.Pricing.DepositAmount <= 0 {
			return ErrNoDeposit
		}
		if appointment.Pricing.DepositPaid {
			result = appointment
			return nil
		}

		ok, err := s.repo.MarkDepositPaid(ctx, businessID, id)
		if err != nil {
			s.logger.Error("MarkDepositPaid: repository error for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: MarkDepositPaid - repository error: %v", ErrInternal, err)
		}
		if !ok {
			return ErrAppointmentNotFound
		}

		appointment.Pricing.DepositPaid = true
		result = appointment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("MarkDepositPaid: deposit %.2f marked as paid for appointment id=%d", result.Pricing.DepositAmount, id)
	return result, nil
}
