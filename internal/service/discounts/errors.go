package discounts

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных или настройке скидки
	ErrInvalidInput = fmt.Errorf("discounts: %w", domain.ErrBadRequest)

	// ErrPromotionNotFound возвращается, когда действующей промоакции с таким кодом нет
	ErrPromotionNotFound = fmt.Errorf("discounts: promotion %w", domain.ErrNotFound)

	// ErrDuplicateCode возвращается при создании промоакции с уже занятым кодом
	ErrDuplicateCode = fmt.Errorf("discounts: promotion code already exists: %w", domain.ErrConflict)

	// ErrPromotionExhausted возвращается, когда лимит использований исчерпан в момент списания
	ErrPromotionExhausted = fmt.Errorf("discounts: promotion usage limit reached: %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("discounts: internal error")
)
