package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// ProfileRepo реализует repository.ProfileRepository
type ProfileRepo struct {
	db *gorm.DB
}

// NewProfileRepo создает новый репозиторий профилей
func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// GetOrCreateByUserID возвращает профиль с назначенными опросами и группами
func (r *ProfileRepo) GetOrCreateByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	db := r.db.WithContext(ctx)
	if _, err := ensureProfile(db, userID); err != nil {
		return nil, err
	}

	var profile entity.Profile
	err := db.
		Preload("Surveys.Translations").
		Preload("SurveyGroups.Surveys.Translations").
		First(&profile, "user_id = ?", userID).Error
	if err != nil {
		return nil, translateError(err, "")
	}
	return &profile, nil
}

// ReplaceAssignments заменяет назначенные пользователю опросы и группы в одной транзакции
func (r *ProfileRepo) ReplaceAssignments(ctx context.Context, userID uuid.UUID, surveyIDs, groupIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := ensureProfile(tx, userID)
		if err != nil {
			return err
		}

		surveys, err := findSurveys(tx, surveyIDs)
		if err != nil {
			return err
		}

		groupIDs = uniqueIDs(groupIDs)
		var groups []entity.SurveyGroup
		if len(groupIDs) > 0 {
			if err := tx.Where("id IN ?", groupIDs).Find(&groups).Error; err != nil {
				return err
			}
			if len(groups) != len(groupIDs) {
				return fmt.Errorf("%w: one or more survey groups do not exist", apperrors.ErrNotFound)
			}
		}

		if err := replaceAssociation(tx.Model(profile).Association("Surveys"), surveys); err != nil {
			return err
		}
		return replaceAssociation(tx.Model(profile).Association("SurveyGroups"), groups)
	})
}

// ensureProfile находит профиль пользователя или создает пустой
func ensureProfile(db *gorm.DB, userID uuid.UUID) (*entity.Profile, error) {
	var profile entity.Profile
	err := db.First(&profile, "user_id = ?", userID).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return createProfileIfAbsent(db, userID)
}

// createProfileIfAbsent вставляет профиль с ON CONFLICT (user_id) DO NOTHING и читает сохраненную запись.
// Конфликт не порождает ошибку, поэтому транзакция вызывающего кода остается рабочей в Postgres.
func createProfileIfAbsent(db *gorm.DB, userID uuid.UUID) (*entity.Profile, error) {
	profile := entity.Profile{UserID: userID}
	err := db.Omit("Surveys", "SurveyGroups", "User").
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&profile).Error
	if err != nil {
		return nil, translateError(err, "")
	}

	// при конфликте в profile остался несохраненный ID, читаем запись победителя
	var stored entity.Profile
	if err := db.First(&stored, "user_id = ?", userID).Error; err != nil {
		return nil, translateError(err, "")
	}
	return &stored, nil
}
