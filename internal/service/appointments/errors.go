package appointments

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена у бизнеса
	ErrAppointmentNotFound = fmt.Errorf("appointments: appointment %w", domain.ErrNotFound)

	// ErrNoDeposit возвращается, если у записи нет депозита
	ErrNoDeposit = fmt.Errorf("appointments: appointment has no deposit: %w", domain.ErrBadRequest)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("appointments: %w", domain.ErrBadRequest)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
