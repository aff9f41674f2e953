package repository

import (
	"context"
	"time"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	// GetJSON возвращает apperrors.ErrNotFound, если ключа нет
	GetJSON(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	// Increment увеличивает счетчик; при первом увеличении на ключ ставится TTL window
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}
