package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
)

// ============================================================================
// Моки репозиториев
// ============================================================================

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type MockInvalidTokenRepo struct{ mock.Mock }

func (m *MockInvalidTokenRepo) AddInvalidToken(ctx context.Context, userID uuid.UUID, invalidationTime time.Time) error {
	return m.Called(ctx, userID, invalidationTime).Error(0)
}

func (m *MockInvalidTokenRepo) IsTokenInvalid(ctx context.Context, userID uuid.UUID, tokenIssuedAt time.Time) (bool, error) {
	args := m.Called(ctx, userID, tokenIssuedAt)
	return args.Bool(0), args.Error(1)
}

type MockSurveyRepo struct{ mock.Mock }

func (m *MockSurveyRepo) Create(ctx context.Context, survey *entity.Survey) error {
	return m.Called(ctx, survey).Error(0)
}

func (m *MockSurveyRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Survey, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Survey), args.Error(1)
}

func (m *MockSurveyRepo) GetBySlug(ctx context.Context, slug string) (*entity.Survey, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Survey), args.Error(1)
}

func (m *MockSurveyRepo) List(ctx context.Context, filters repository.SurveyFilters, limit, offset int) ([]entity.Survey, int64, error) {
	args := m.Called(ctx, filters, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Survey), args.Get(1).(int64), args.Error(2)
}

func (m *MockSurveyRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return m.Called(ctx, id, updates).Error(0)
}

func (m *MockSurveyRepo) UpsertTranslation(ctx context.Context, translation *entity.SurveyTranslation) error {
	return m.Called(ctx, translation).Error(0)
}

func (m *MockSurveyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockSurveyAdminRepo struct{ mock.Mock }

func (m *MockSurveyAdminRepo) Create(ctx context.Context, admin *entity.SurveyAdmin) error {
	return m.Called(ctx, admin).Error(0)
}

func (m *MockSurveyAdminRepo) ListBySurvey(ctx context.Context, surveyID uuid.UUID) ([]entity.SurveyAdmin, error) {
	args := m.Called(ctx, surveyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SurveyAdmin), args.Error(1)
}

func (m *MockSurveyAdminRepo) IsAdmin(ctx context.Context, surveyID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, surveyID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSurveyAdminRepo) Delete(ctx context.Context, surveyID, userID uuid.UUID) error {
	return m.Called(ctx, surveyID, userID).Error(0)
}

type MockQuestionRepo struct{ mock.Mock }

func (m *MockQuestionRepo) Create(ctx context.Context, question *entity.Question) error {
	return m.Called(ctx, question).Error(0)
}

func (m *MockQuestionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepo) ListBySurvey(ctx context.Context, surveyID uuid.UUID) ([]entity.Question, error) {
	args := m.Called(ctx, surveyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return m.Called(ctx, id, updates).Error(0)
}

func (m *MockQuestionRepo) UpsertTranslation(ctx context.Context, translation *entity.QuestionTranslation) error {
	return m.Called(ctx, translation).Error(0)
}

func (m *MockQuestionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockChoiceRepo struct{ mock.Mock }

func (m *MockChoiceRepo) Create(ctx context.Context, choice *entity.Choice) error {
	return m.Called(ctx, choice).Error(0)
}

func (m *MockChoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Choice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Choice), args.Error(1)
}

func (m *MockChoiceRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return m.Called(ctx, id, updates).Error(0)
}

func (m *MockChoiceRepo) UpsertTranslation(ctx context.Context, translation *entity.ChoiceTranslation) error {
	return m.Called(ctx, translation).Error(0)
}

func (m *MockChoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockResultRepo struct{ mock.Mock }

func (m *MockResultRepo) Create(ctx context.Context, result *entity.Result) error {
	return m.Called(ctx, result).Error(0)
}

func (m *MockResultRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Result, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Result), args.Error(1)
}

func (m *MockResultRepo) List(ctx context.Context, filters repository.ResultFilters) ([]entity.Result, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Result), args.Error(1)
}

func (m *MockResultRepo) AddAnswer(ctx context.Context, answer *entity.Answer) error {
	return m.Called(ctx, answer).Error(0)
}

func (m *MockResultRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockSurveyGroupRepo struct{ mock.Mock }

func (m *MockSurveyGroupRepo) Create(ctx context.Context, group *entity.SurveyGroup) error {
	return m.Called(ctx, group).Error(0)
}

func (m *MockSurveyGroupRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.SurveyGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SurveyGroup), args.Error(1)
}

func (m *MockSurveyGroupRepo) List(ctx context.Context) ([]entity.SurveyGroup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SurveyGroup), args.Error(1)
}

func (m *MockSurveyGroupRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return m.Called(ctx, id, updates).Error(0)
}

func (m *MockSurveyGroupRepo) ReplaceSurveys(ctx context.Context, groupID uuid.UUID, surveyIDs []uuid.UUID) error {
	return m.Called(ctx, groupID, surveyIDs).Error(0)
}

func (m *MockSurveyGroupRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockProfileRepo struct{ mock.Mock }

func (m *MockProfileRepo) GetOrCreateByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockProfileRepo) ReplaceAssignments(ctx context.Context, userID uuid.UUID, surveyIDs, groupIDs []uuid.UUID) error {
	return m.Called(ctx, userID, surveyIDs, groupIDs).Error(0)
}

type MockCacheRepo struct{ mock.Mock }

func (m *MockCacheRepo) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *MockCacheRepo) GetJSON(ctx context.Context, key string, dest interface{}) error {
	return m.Called(ctx, key, dest).Error(0)
}

func (m *MockCacheRepo) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *MockCacheRepo) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	args := m.Called(ctx, key, window)
	return args.Get(0).(int64), args.Error(1)
}

type MockEmailService struct{ mock.Mock }

func (m *MockEmailService) SendSurveyAdminInvite(ctx context.Context, toEmail, surveyName, idempotencyKey string) error {
	return m.Called(ctx, toEmail, surveyName, idempotencyKey).Error(0)
}

// ============================================================================
// Фикстуры
// ============================================================================

func newSurvey(owner *uuid.UUID, active bool) *entity.Survey {
	return &entity.Survey{
		Model:         entity.Model{ID: uuid.New()},
		IsActive:      active,
		StartDateTime: time.Now().Add(-time.Hour),
		OwnerID:       owner,
		Translations:  []entity.SurveyTranslation{{LanguageCode: "en", Name: "Survey", Slug: "survey"}},
	}
}

func newQuestion(surveyID uuid.UUID) entity.Question {
	return entity.Question{
		Model:        entity.Model{ID: uuid.New()},
		SurveyID:     surveyID,
		OfType:       entity.QuestionTypeText,
		Translations: []entity.QuestionTranslation{{LanguageCode: "en", Question: "Q"}},
	}
}
