package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// SurveyGroupRepo реализует repository.SurveyGroupRepository
type SurveyGroupRepo struct {
	db *gorm.DB
}

// NewSurveyGroupRepo создает новый репозиторий групп опросов
func NewSurveyGroupRepo(db *gorm.DB) *SurveyGroupRepo {
	return &SurveyGroupRepo{db: db}
}

// Create создает группу опросов
func (r *SurveyGroupRepo) Create(ctx context.Context, group *entity.SurveyGroup) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(group).Error
	return translateError(err, "survey group already exists")
}

// GetByID возвращает группу вместе с опросами
func (r *SurveyGroupRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.SurveyGroup, error) {
	var group entity.SurveyGroup
	err := r.db.WithContext(ctx).
		Preload("Surveys.Translations").
		First(&group, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "")
	}
	return &group, nil
}

// List возвращает все группы с опросами
func (r *SurveyGroupRepo) List(ctx context.Context) ([]entity.SurveyGroup, error) {
	var groups []entity.SurveyGroup
	err := r.db.WithContext(ctx).
		Preload("Surveys.Translations").
		Order("name, id").
		Find(&groups).Error
	return groups, err
}

// Update обновляет перечисленные поля группы
func (r *SurveyGroupRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&entity.SurveyGroup{}).Where("id = ?", id).Updates(updates)
	return checkAffected(result, "")
}

// ReplaceSurveys заменяет состав группы в одной транзакции
func (r *SurveyGroupRepo) ReplaceSurveys(ctx context.Context, groupID uuid.UUID, surveyIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var group entity.SurveyGroup
		if err := tx.First(&group, "id = ?", groupID).Error; err != nil {
			return translateError(err, "")
		}
		surveys, err := findSurveys(tx, surveyIDs)
		if err != nil {
			return err
		}
		return replaceAssociation(tx.Model(&group).Association("Surveys"), surveys)
	})
}

// Delete удаляет группу; связи с опросами и профилями удаляются каскадно
func (r *SurveyGroupRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.SurveyGroup{}, "id = ?", id)
	return checkAffected(result, "")
}

// findSurveys загружает опросы по ID и проверяет, что найдены все
func findSurveys(tx *gorm.DB, ids []uuid.UUID) ([]entity.Survey, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	var surveys []entity.Survey
	if err := tx.Where("id IN ?", ids).Find(&surveys).Error; err != nil {
		return nil, err
	}
	if len(surveys) != len(ids) {
		return nil, fmt.Errorf("%w: one or more surveys do not exist", apperrors.ErrNotFound)
	}
	return surveys, nil
}

// replaceAssociation заменяет связи many2many; пустой набор очищает связь
func replaceAssociation[T any](assoc *gorm.Association, values []T) error {
	if len(values) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(values)
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
