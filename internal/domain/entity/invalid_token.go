package entity

import (
	"time"

	"github.com/google/uuid"
)

// InvalidToken представляет запись об инвалидированных токенах пользователя (выход из системы)
type InvalidToken struct {
	UserID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	InvalidationTime time.Time `gorm:"not null" json:"invalidation_time"`
}

// TableName задает имя таблицы для GORM
func (InvalidToken) TableName() string {
	return "invalid_tokens"
}

// IsTokenInvalidAt проверяет, был ли токен выпущен не позже момента инвалидации
func (it *InvalidToken) IsTokenInvalidAt(issuedAt time.Time) bool {
	return !issuedAt.After(it.InvalidationTime)
}
