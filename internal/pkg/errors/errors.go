package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется, когда запрос не аутентифицирован (нет токена, токен истек или отозван).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда у пользователя недостаточно прав для действия.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется при нарушении ограничений уникальности
	// (повторный результат для пары опрос+пользователь, повторный ответ, занятый slug).
	ErrConflict = errors.New("resource state conflict")
)
