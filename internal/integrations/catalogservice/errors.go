package catalogservice

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуги нет в каталоге бизнеса
	ErrServiceNotFound = errors.New("catalogservice client: service not found")

	// ErrStaffNotFound возвращается, когда сотрудника нет у бизнеса
	ErrStaffNotFound = errors.New("catalogservice client: staff not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")
)
