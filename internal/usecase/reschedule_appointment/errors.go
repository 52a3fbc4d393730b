package reschedule_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrAppointmentNotFound запись не найдена или уже не может быть перенесена
	ErrAppointmentNotFound = fmt.Errorf("reschedule_appointment: appointment %w", domain.ErrNotFound)

	// ErrStaffNotFound возвращается, когда сотрудника нет у бизнеса
	ErrStaffNotFound = fmt.Errorf("reschedule_appointment: staff %w", domain.ErrNotFound)

	// ErrStaffInactive возвращается, когда сотрудник не принимает записи
	ErrStaffInactive = fmt.Errorf("reschedule_appointment: staff is inactive: %w", domain.ErrBadRequest)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("reschedule_appointment: %w", domain.ErrBadRequest)

	// ErrDateInPast возвращается, когда новое время уже прошло
	ErrDateInPast = fmt.Errorf("reschedule_appointment: appointment time is in the past: %w", domain.ErrBadRequest)

	// ErrSlotNotAvailable возвращается, когда сотрудник занят в новое время
	ErrSlotNotAvailable = fmt.Errorf("reschedule_appointment: slot %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
