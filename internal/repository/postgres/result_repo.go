package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
)

const (
	resultConflictMsg = "result for this survey and user already exists"
	answerConflictMsg = "answer to this question already exists in the result"
)

// ResultRepo реализует repository.ResultRepository
type ResultRepo struct {
	db *gorm.DB
}

// NewResultRepo создает новый репозиторий результатов
func NewResultRepo(db *gorm.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// Create сохраняет результат и все его ответы в одной транзакции.
// Нарушение уникальности (survey, user) или (result, question) откатывает всю запись.
func (r *ResultRepo) Create(ctx context.Context, result *entity.Result) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(result).Error; err != nil {
			return translateError(err, resultConflictMsg)
		}
		if len(result.Answers) == 0 {
			return nil
		}
		for i := range result.Answers {
			result.Answers[i].ResultID = result.ID
		}
		if err := tx.Omit(clause.Associations).Create(&result.Answers).Error; err != nil {
			return translateError(err, answerConflictMsg)
		}
		return nil
	})
}

// GetByID возвращает результат с ответами
func (r *ResultRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Result, error) {
	var result entity.Result
	err := preloadAnswers(r.db.WithContext(ctx)).First(&result, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "")
	}
	return &result, nil
}

// List возвращает результаты с ответами, начиная с самых новых
func (r *ResultRepo) List(ctx context.Context, filters repository.ResultFilters) ([]entity.Result, error) {
	query := preloadAnswers(r.db.WithContext(ctx))
	if filters.WithUser {
		query = query.Preload("User")
	}
	if filters.SurveyID != nil {
		query = query.Where("survey_id = ?", *filters.SurveyID)
	}
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}

	results := make([]entity.Result, 0)
	if err := query.Order("timestamp DESC, id").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// AddAnswer добавляет ответ к существующему результату
func (r *ResultRepo) AddAnswer(ctx context.Context, answer *entity.Answer) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(answer).Error
	return translateError(err, answerConflictMsg)
}

// Delete удаляет результат вместе с ответами
func (r *ResultRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Result{}, "id = ?", id)
	return checkAffected(result, "")
}

func preloadAnswers(db *gorm.DB) *gorm.DB {
	return db.Preload("Answers", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at, id")
	})
}
