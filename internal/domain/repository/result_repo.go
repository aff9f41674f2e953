package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// ResultFilters определяет фильтры для списка результатов
type ResultFilters struct {
	SurveyID *uuid.UUID
	UserID   *uuid.UUID
	// WithUser подгружает Result.User (нужно только для выгрузки)
	WithUser bool
}

// ResultRepository определяет методы для работы с результатами и ответами
type ResultRepository interface {
	// Create атомарно сохраняет результат вместе со всеми ответами
	Create(ctx context.Context, result *entity.Result) error
	// GetByID возвращает результат с ответами
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Result, error)
	// List возвращает результаты с ответами, отсортированные по времени прохождения
	List(ctx context.Context, filters ResultFilters) ([]entity.Result, error)
	// AddAnswer добавляет ответ к существующему результату
	AddAnswer(ctx context.Context, answer *entity.Answer) error
	Delete(ctx context.Context, id uuid.UUID) error
}
