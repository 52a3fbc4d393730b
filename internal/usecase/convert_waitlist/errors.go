package convert_waitlist

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrEntryNotFound заявка не найдена или уже не активна
	ErrEntryNotFound = fmt.Errorf("convert_waitlist: waitlist entry %w", domain.ErrNotFound)

	// ErrStaffNotFound возвращается, когда сотрудника нет у бизнеса
	ErrStaffNotFound = fmt.Errorf("convert_waitlist: staff %w", domain.ErrNotFound)

	// ErrStaffInactive возвращается, когда сотрудник не принимает записи
	ErrStaffInactive = fmt.Errorf("convert_waitlist: staff is inactive: %w", domain.ErrBadRequest)

	// ErrStaffRequired возвращается, когда сотрудник не указан ни в запросе, ни в заявке
	ErrStaffRequired = fmt.Errorf("convert_waitlist: staff is required: %w", domain.ErrBadRequest)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("convert_waitlist: %w", domain.ErrBadRequest)

	// ErrDateInPast возвращается, когда предложенное время уже прошло
	ErrDateInPast = fmt.Errorf("convert_waitlist: appointment time is in the past: %w", domain.ErrBadRequest)

	// ErrSlotNotAvailable возвращается, когда сотрудник занят в предложенное время
	ErrSlotNotAvailable = fmt.Errorf("convert_waitlist: slot %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("convert_waitlist: internal error")
)
