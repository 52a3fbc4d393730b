package domain

import "errors"

// Классы ошибок, на которые опираются обработчики HTTP.
// Ошибки пакетов оборачивают их через %w.
var (
	// ErrNotFound сущность не найдена, не принадлежит бизнесу
	// или находится в статусе, недопустимом для операции
	ErrNotFound = errors.New("not found")

	// ErrBadRequest структурно некорректный запрос или запрещённая политикой операция
	ErrBadRequest = errors.New("bad request")

	// ErrConflict слот уже занят или запись с таким ключом уже существует
	ErrConflict = errors.New("conflict")
)
