package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("availability: %w", domain.ErrBadRequest)

	// ErrServiceNotFound возвращается, когда услуги нет в каталоге бизнеса
	ErrServiceNotFound = fmt.Errorf("availability: service %w", domain.ErrNotFound)

	// ErrServiceInactive возвращается, когда услуга отключена
	ErrServiceInactive = fmt.Errorf("availability: service is inactive: %w", domain.ErrBadRequest)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
