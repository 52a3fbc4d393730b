package cancel_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrAppointmentNotFound запись не найдена, принадлежит другому клиенту или уже не может быть отменена
	ErrAppointmentNotFound = fmt.Errorf("cancel_appointment: appointment %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("cancel_appointment: %w", domain.ErrBadRequest)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_appointment: internal error")
)
