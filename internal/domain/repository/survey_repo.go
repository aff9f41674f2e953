package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// SurveyFilters определяет фильтры для списка опросов
type SurveyFilters struct {
	IsActive *bool
	OwnerID  *uuid.UUID
}

// SurveyRepository определяет методы для работы с опросами и их переводами
type SurveyRepository interface {
	// Create создает опрос вместе с переводами в одной транзакции
	Create(ctx context.Context, survey *entity.Survey) error
	// GetByID возвращает опрос с переводами
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Survey, error)
	// GetBySlug ищет опрос по slug любого из переводов
	GetBySlug(ctx context.Context, slug string) (*entity.Survey, error)
	List(ctx context.Context, filters SurveyFilters, limit, offset int) ([]entity.Survey, int64, error)
	// Update обновляет только перечисленные поля
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	// UpsertTranslation создает или заменяет перевод для одной локали
	UpsertTranslation(ctx context.Context, translation *entity.SurveyTranslation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SurveyAdminRepository определяет методы для работы с администраторами опросов
type SurveyAdminRepository interface {
	Create(ctx context.Context, admin *entity.SurveyAdmin) error
	ListBySurvey(ctx context.Context, surveyID uuid.UUID) ([]entity.SurveyAdmin, error)
	IsAdmin(ctx context.Context, surveyID, userID uuid.UUID) (bool, error)
	Delete(ctx context.Context, surveyID, userID uuid.UUID) error
}

// SurveyGroupRepository определяет методы для работы с группами опросов
type SurveyGroupRepository interface {
	Create(ctx context.Context, group *entity.SurveyGroup) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SurveyGroup, error)
	List(ctx context.Context) ([]entity.SurveyGroup, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	// ReplaceSurveys заменяет состав группы
	ReplaceSurveys(ctx context.Context, groupID uuid.UUID, surveyIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProfileRepository определяет методы для работы с профилями пользователей
type ProfileRepository interface {
	// GetOrCreateByUserID возвращает профиль пользователя, создавая пустой при первом обращении
	GetOrCreateByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)
	// ReplaceAssignments заменяет назначенные пользователю опросы и группы
	ReplaceAssignments(ctx context.Context, userID uuid.UUID, surveyIDs, groupIDs []uuid.UUID) error
}
