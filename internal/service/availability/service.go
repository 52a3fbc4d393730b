package availability

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

const tracerName = "github.com/m04kA/SMC-AppointmentService/internal/service/availability"

// Service проверка пересечений записей сотрудника
type Service struct {
	repo     AppointmentRepository
	catalog  CatalogClient
	settings SettingsProvider
	logger   Logger
	tracer   trace.Tracer
}

// NewService создает новый экземпляр сервиса доступности
func NewService(repo AppointmentRepository, catalog CatalogClient, settings SettingsProvider, logger Logger) *Service {
	return &Service{
		repo:     repo,
		catalog:  catalog,
		settings: settings,
		logger:   logger,
		tracer:   otel.Tracer(tracerName),
	}
}

// Check считает длительность и проверяет, свободен ли сотрудник.
// Внутри транзакции записи дня сотрудника блокируются репозиторием.
// Буфер увеличивает только TotalDuration; окно проверки строится по длительности услуг.
func (s *Service) Check(ctx context.Context, req CheckRequest) (result *CheckResult, err error) {
	ctx, span := s.tracer.Start(ctx, "availability.Check", trace.WithAttributes(
		attribute.Int64("business.id", req.BusinessID),
		attribute.Int64("staff.id", req.StaffID),
		attribute.String("date", req.Date.Format(domain.DateFormat)),
		attribute.String("start_time", req.StartTime.String()),
		attribute.Int("services.count", len(req.ServiceIDs)),
	))
	defer func() {
		endSpan(span, err)
		if result != nil {
			span.SetAttributes(attribute.Bool("available", result.Available))
		}
		span.End()
	}()

	// 1. Валидация входных данных
	if err := validateCheckRequest(req); err != nil {
		return nil, err
	}

	// 2. Настройки бизнеса: буфер и часовой пояс
	settings, err := s.settings.Get(ctx, req.BusinessID)
	if err != nil {
		s.logger.Error("Check: failed to get settings for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 3. Снимки услуг и длительность
	services, err := s.resolveServices(ctx, req.BusinessID, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	serviceDuration := 0
	for _, svc := range services {
		serviceDuration += svc.DurationMinutes
	}

	// 4. Интервал записи в часовом поясе бизнеса
	startMinutes, _ := req.StartTime.Minutes()
	endTime, err := types.MinutesToTime(startMinutes + serviceDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: appointment must end before midnight", ErrInvalidInput)
	}

	slot, err := domain.NewSlot(req.Date, req.StartTime, endTime, settings.Location())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	result = &CheckResult{
		Available:       true,
		StartTime:       req.StartTime,
		EndTime:         endTime,
		StartAt:         slot.Start,
		EndAt:           slot.End,
		ServiceDuration: serviceDuration,
		BufferMinutes:   settings.BufferMinutes,
		TotalDuration:   serviceDuration + settings.BufferMinutes,
		Services:        services,
		ConflictIDs:     []int64{},
		Settings:        settings,
	}

	if len(services) == 0 {
		return result, nil
	}

	// 5. Активные записи сотрудника на эту дату
	existing, err := s.repo.FindConflicting(ctx, domain.StaffDayFilter{
		BusinessID: req.BusinessID,
		StaffID:    req.StaffID,
		Date:       req.Date,
		ExcludeID:  req.ExcludeAppointmentID,
	})
	if err != nil {
		s.logger.Error("Check: failed to load staff day business=%d, staff=%d: %v", req.BusinessID, req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to load appointments: %w", ErrInternal, err)
	}

	// 6. Проверка пересечений
	result.ConflictIDs = conflictsWith(slot, existing, req.ExcludeAppointmentID)
	result.Available = len(result.ConflictIDs) == 0

	if !result.Available {
		s.logger.Info("Check: staff=%d is busy on %s %s-%s, conflicts=%v",
			req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime, endTime, result.ConflictIDs)
	}

	return result, nil
}

// FreeSlots перебирает времена начала с шагом StepMinutes и возвращает свободные.
// День сотрудника читается один раз.
func (s *Service) FreeSlots(ctx context.Context, req FreeSlotsRequest) (result *FreeSlotsResult, err error) {
	ctx, span := s.tracer.Start(ctx, "availability.FreeSlots", trace.WithAttributes(
		attribute.Int64("business.id", req.BusinessID),
		attribute.Int64("staff.id", req.StaffID),
		attribute.String("date", req.Date.Format(domain.DateFormat)),
	))
	defer func() {
		endSpan(span, err)
		span.End()
	}()

	if req.StepMinutes == 0 {
		req.StepMinutes = domain.DefaultFreeSlotsStepMinutes
	}

	// 1. Валидация окна
	if err := validateFreeSlotsRequest(req); err != nil {
		return nil, err
	}

	// 2. Настройки и услуги
	settings, err := s.settings.Get(ctx, req.BusinessID)
	if err != nil {
		s.logger.Error("FreeSlots: failed to get settings for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	services, err := s.resolveServices(ctx, req.BusinessID, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	serviceDuration := 0
	for _, svc := range services {
		serviceDuration += svc.DurationMinutes
	}

	// 3. Один запрос на весь день
	existing, err := s.repo.FindConflicting(ctx, domain.StaffDayFilter{
		BusinessID: req.BusinessID,
		StaffID:    req.StaffID,
		Date:       req.Date,
	})
	if err != nil {
		s.logger.Error("FreeSlots: failed to load staff day business=%d, staff=%d: %v", req.BusinessID, req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to load appointments: %w", ErrInternal, err)
	}

	// 4. Перебор кандидатов
	from, _ := req.From.Minutes()
	to, _ := req.To.Minutes()
	loc := settings.Location()

	result = &FreeSlotsResult{
		ServiceDuration: serviceDuration,
		TotalDuration:   serviceDuration + settings.BufferMinutes,
		Slots:           []FreeSlot{},
	}

	for start := from; start+serviceDuration <= to; start += req.StepMinutes {
		startTime, err := types.MinutesToTime(start)
		if err != nil {
			break
		}
		endTime, err := types.MinutesToTime(start + serviceDuration)
		if err != nil {
			break
		}

		slot, err := domain.NewSlot(req.Date, startTime, endTime, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if len(conflictsWith(slot, existing, nil)) == 0 {
			result.Slots = append(result.Slots, FreeSlot{StartTime: startTime, EndTime: endTime})
		}
	}

	span.SetAttributes(attribute.Int("slots.free", len(result.Slots)))
	return result, nil
}

// resolveServices получает снимки услуг в порядке запроса
func (s *Service) resolveServices(ctx context.Context, businessID int64, serviceIDs []int64) ([]domain.BookedService, error) {
	services := make([]domain.BookedService, 0, len(serviceIDs))

	for _, id := range serviceIDs {
		svc, err := s.catalog.GetService(ctx, businessID, id)
		if err != nil {
			if errors.Is(err, catalogservice.ErrServiceNotFound) {
				s.logger.Warn("resolveServices: service id=%d not found in business=%d", id, businessID)
				return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, id)
			}
			s.logger.Error("resolveServices: failed to get service id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		if !svc.IsActive {
			return nil, fmt.Errorf("%w: id=%d", ErrServiceInactive, id)
		}
		if svc.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: service id=%d has no duration", ErrInvalidInput, id)
		}

		services = append(services, svc.Snapshot())
	}

	return services, nil
}

// conflictsWith возвращает ID активных записей, пересекающихся со slot
func conflictsWith(slot domain.Slot, existing []*domain.Appointment, excludeID *int64) []int64 {
	ids := make([]int64, 0)
	for _, a := range existing {
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if !a.Status.OccupiesSlot() {
			continue
		}
		if slot.Overlaps(a.Slot()) {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

func validateCheckRequest(req CheckRequest) error {
	if req.BusinessID <= 0 || req.StaffID <= 0 {
		return fmt.Errorf("%w: businessId and staffId are required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	if len(req.ServiceIDs) > domain.MaxServicesPerAppointment {
		return fmt.Errorf("%w: at most %d services per appointment", ErrInvalidInput, domain.MaxServicesPerAppointment)
	}
	return nil
}

func validateFreeSlotsRequest(req FreeSlotsRequest) error {
	if req.BusinessID <= 0 || req.StaffID <= 0 {
		return fmt.Errorf("%w: businessId and staffId are required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	if len(req.ServiceIDs) > domain.MaxServicesPerAppointment {
		return fmt.Errorf("%w: at most %d services per appointment", ErrInvalidInput, domain.MaxServicesPerAppointment)
	}
	if err := req.From.Validate(); err != nil {
		return fmt.Errorf("%w: from: %v", ErrInvalidInput, err)
	}
	if err := req.To.Validate(); err != nil {
		return fmt.Errorf("%w: to: %v", ErrInvalidInput, err)
	}
	if !req.From.IsBefore(req.To) {
		return fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}
	if req.StepMinutes < domain.MinFreeSlotsStepMinutes {
		return fmt.Errorf("%w: step must be at least %d minutes", ErrInvalidInput, domain.MinFreeSlotsStepMinutes)
	}
	return nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
