package waitlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	waitlistRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
)

// Service сервис листа ожидания
type Service struct {
	repo    WaitlistRepository
	catalog CatalogClient
	logger  Logger
}

// NewService создает новый экземпляр сервиса листа ожидания
func NewService(repo WaitlistRepository, catalog CatalogClient, logger Logger) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		logger:  logger,
	}
}

// Create ставит клиента в лист ожидания
func (s *Service) Create(ctx context.Context, req *CreateEntryRequest) (*domain.WaitlistEntry, error) {
	s.logger.Info("Create: waitlist entry for client=%d in business=%d", req.ClientID, req.BusinessID)

	// 1. Валидация входных данных
	entry := req.ToDomain()
	if err := validateEntry(entry); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем услуги и сотрудника в каталоге
	for _, id := range entry.ServiceIDs {
		svc, err := s.catalog.GetService(ctx, entry.BusinessID, id)
		if err != nil {
			if errors.Is(err, catalogservice.ErrServiceNotFound) {
				return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, id)
			}
			s.logger.Error("Create: failed to get service id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if !svc.IsActive {
			return nil, fmt.Errorf("%w: service id=%d is inactive", ErrInvalidInput, id)
		}
	}

	if entry.PreferredStaffID != nil {
		staff, err := s.catalog.GetStaff(ctx, entry.BusinessID, *entry.PreferredStaffID)
		if err != nil {
			if errors.Is(err, catalogservice.ErrStaffNotFound) {
				return nil, fmt.Errorf("%w: id=%d", ErrStaffNotFound, *entry.PreferredStaffID)
			}
			s.logger.Error("Create: failed to get staff id=%d: %v", *entry.PreferredStaffID, err)
			return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
		if !staff.IsActive {
			return nil, fmt.Errorf("%w: staff id=%d is inactive", ErrInvalidInput, staff.ID)
		}
	}

	// 3. Сохраняем
	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created waitlist entry id=%d (priority=%s)", created.ID, created.Priority)
	return created, nil
}

// GetByID получает заявку бизнеса
func (s *Service) GetByID(ctx context.Context, businessID, id int64) (*domain.WaitlistEntry, error) {
	entry, err := s.repo.GetByID(ctx, businessID, id)
	if err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("GetByID: repository error for entry id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return entry, nil
}

// ListActive возвращает активные заявки: VIP первыми, далее по времени создания
func (s *Service) ListActive(ctx context.Context, filter domain.WaitlistFilter) ([]*domain.WaitlistEntry, error) {
	entries, err := s.repo.ListActive(ctx, filter)
	if err != nil {
		s.logger.Error("ListActive: repository error for business=%d: %v", filter.BusinessID, err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}
	return entries, nil
}

// Cancel отменяет активную заявку
func (s *Service) Cancel(ctx context.Context, businessID, id int64) error {
	ok, err := s.repo.Cancel(ctx, businessID, id)
	if err != nil {
		s.logger.Error("Cancel: repository error for entry id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}
	if !ok {
		s.logger.Warn("Cancel: entry id=%d is not active in business=%d", id, businessID)
		return ErrEntryNotFound
	}

	s.logger.Info("Cancel: waitlist entry id=%d cancelled", id)
	return nil
}

func validateEntry(e *domain.WaitlistEntry) error {
	if e.BusinessID <= 0 || e.ClientID <= 0 {
		return fmt.Errorf("%w: businessId and clientId are required", ErrInvalidInput)
	}
	if len(e.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	if len(e.ServiceIDs) > domain.MaxServicesPerAppointment {
		return fmt.Errorf("%w: at most %d services", ErrInvalidInput, domain.MaxServicesPerAppointment)
	}
	if !e.Priority.IsValid() {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, e.Priority)
	}

	if e.DateFrom != nil && e.DateTo != nil && e.DateTo.Before(*e.DateFrom) {
		return fmt.Errorf("%w: dateTo must not be before dateFrom", ErrInvalidInput)
	}

	if e.TimeFrom != nil {
		if err := e.TimeFrom.Validate(); err != nil {
			return fmt.Errorf("%w: timeFrom: %v", ErrInvalidInput, err)
		}
	}
	if e.TimeTo != nil {
		if err := e.TimeTo.Validate(); err != nil {
			return fmt.Errorf("%w: timeTo: %v", ErrInvalidInput, err)
		}
	}
	if e.TimeFrom != nil && e.TimeTo != nil && !e.TimeFrom.IsBefore(*e.TimeTo) {
		return fmt.Errorf("%w: timeFrom must be before timeTo", ErrInvalidInput)
	}

	seen := make(map[int]struct{}, len(e.DaysOfWeek))
	for _, d := range e.DaysOfWeek {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: daysOfWeek must be in 0..6", ErrInvalidInput)
		}
		if _, dup := seen[d]; dup {
			return fmt.Errorf("%w: duplicate day of week %d", ErrInvalidInput, d)
		}
		seen[d] = struct{}{}
	}

	if e.Notes != nil && len(*e.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
