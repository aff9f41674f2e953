package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// InvalidTokenRepo реализует repository.InvalidTokenRepository
type InvalidTokenRepo struct {
	db *gorm.DB
}

// NewInvalidTokenRepo создает новый репозиторий инвалидированных токенов
func NewInvalidTokenRepo(db *gorm.DB) *InvalidTokenRepo {
	return &InvalidTokenRepo{db: db}
}

// AddInvalidToken добавляет или обновляет запись об инвалидации токенов пользователя
func (r *InvalidTokenRepo) AddInvalidToken(ctx context.Context, userID uuid.UUID, invalidationTime time.Time) error {
	record := entity.InvalidToken{UserID: userID, InvalidationTime: invalidationTime}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"invalidation_time"}),
	}).Create(&record).Error
	if err != nil {
		log.Printf("[InvalidTokenRepo] Ошибка при добавлении записи для пользователя ID=%s: %v", userID, err)
		return err
	}
	return nil
}

// IsTokenInvalid проверяет, был ли токен выпущен до последнего выхода пользователя
func (r *InvalidTokenRepo) IsTokenInvalid(ctx context.Context, userID uuid.UUID, tokenIssuedAt time.Time) (bool, error) {
	var record entity.InvalidToken
	err := r.db.WithContext(ctx).First(&record, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return record.IsTokenInvalidAt(tokenIssuedAt), nil
}
