package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InvalidTokenRepository определяет методы для работы с инвалидированными токенами
type InvalidTokenRepository interface {
	// AddInvalidToken отмечает все токены пользователя, выпущенные до invalidationTime, как недействительные
	AddInvalidToken(ctx context.Context, userID uuid.UUID, invalidationTime time.Time) error

	// IsTokenInvalid проверяет, инвалидирован ли токен пользователя, выпущенный в tokenIssuedAt
	IsTokenInvalid(ctx context.Context, userID uuid.UUID, tokenIssuedAt time.Time) (bool, error)
}
