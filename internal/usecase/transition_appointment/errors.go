package transition_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrAppointmentNotFound запись не найдена или её статус не допускает действие
	ErrAppointmentNotFound = fmt.Errorf("transition_appointment: appointment %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("transition_appointment: %w", domain.ErrBadRequest)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_appointment: internal error")
)
