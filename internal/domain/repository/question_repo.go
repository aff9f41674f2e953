package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	// Create создает вопрос вместе с переводами и вариантами ответа
	Create(ctx context.Context, question *entity.Question) error
	// GetByID возвращает вопрос с переводами и вариантами
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Question, error)
	ListBySurvey(ctx context.Context, surveyID uuid.UUID) ([]entity.Question, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	UpsertTranslation(ctx context.Context, translation *entity.QuestionTranslation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ChoiceRepository определяет методы для работы с вариантами ответа
type ChoiceRepository interface {
	Create(ctx context.Context, choice *entity.Choice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Choice, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	UpsertTranslation(ctx context.Context, translation *entity.ChoiceTranslation) error
	Delete(ctx context.Context, id uuid.UUID) error
}
