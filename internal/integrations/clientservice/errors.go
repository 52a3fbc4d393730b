package clientservice

import "errors"

var (
	// ErrClientNotFound возвращается, когда клиент неизвестен сервису клиентов
	ErrClientNotFound = errors.New("clientservice client: client not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("clientservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("clientservice client: invalid response")
)
