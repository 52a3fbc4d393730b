package waitlist

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrEntryNotFound возвращается, когда заявка не найдена или уже не активна
	ErrEntryNotFound = fmt.Errorf("waitlist: entry %w", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуги нет в каталоге
	ErrServiceNotFound = fmt.Errorf("waitlist: service %w", domain.ErrNotFound)

	// ErrStaffNotFound возвращается, когда сотрудника нет у бизнеса
	ErrStaffNotFound = fmt.Errorf("waitlist: staff %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("waitlist: %w", domain.ErrBadRequest)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("waitlist: internal error")
)
