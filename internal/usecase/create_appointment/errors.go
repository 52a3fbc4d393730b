package create_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_appointment: %w", domain.ErrBadRequest)

	// ErrDateInPast возвращается, когда время записи уже прошло в часовом поясе бизнеса
	ErrDateInPast = fmt.Errorf("create_appointment: appointment time is in the past: %w", domain.ErrBadRequest)

	// ErrStaffNotFound возвращается, когда сотрудника нет у бизнеса
	ErrStaffNotFound = fmt.Errorf("create_appointment: staff %w", domain.ErrNotFound)

	// ErrStaffInactive возвращается, когда сотрудник не принимает записи
	ErrStaffInactive = fmt.Errorf("create_appointment: staff is inactive: %w", domain.ErrBadRequest)

	// ErrPromotionNotApplicable возвращается, когда промокод не подходит к записи
	ErrPromotionNotApplicable = fmt.Errorf("create_appointment: promotion is not applicable: %w", domain.ErrBadRequest)

	// ErrSlotNotAvailable возвращается, когда сотрудник занят в выбранное время
	ErrSlotNotAvailable = fmt.Errorf("create_appointment: slot %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
