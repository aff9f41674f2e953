package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// ResultService записывает прохождения опросов и отдает их
type ResultService struct {
	access       *surveyAccess
	resultRepo   repository.ResultRepository
	questionRepo repository.QuestionRepository
	now          func() time.Time
}

// NewResultService создает сервис результатов
func NewResultService(
	surveyRepo repository.SurveyRepository,
	adminRepo repository.SurveyAdminRepository,
	questionRepo repository.QuestionRepository,
	resultRepo repository.ResultRepository,
) *ResultService {
	return &ResultService{
		access:       &surveyAccess{surveyRepo: surveyRepo, adminRepo: adminRepo},
		resultRepo:   resultRepo,
		questionRepo: questionRepo,
		now:          time.Now,
	}
}

// AnswerInput содержит ответ на один вопрос
type AnswerInput struct {
	QuestionID uuid.UUID
	Text       string
}

// SubmitResultInput содержит прохождение опроса целиком
type SubmitResultInput struct {
	SurveyID uuid.UUID
	Answers  []AnswerInput
	Metadata map[string]interface{}
}

// SubmitResult сохраняет результат пользователя вместе с ответами одной транзакцией.
// Повторное прохождение того же опроса тем же пользователем отклоняется с ErrConflict.
func (s *ResultService) SubmitResult(ctx context.Context, actor Actor, input SubmitResultInput) (*entity.Result, error) {
	survey, err := s.access.surveyRepo.GetByID(ctx, input.SurveyID)
	if err != nil {
		return nil, err
	}
	if !survey.IsOpen(s.now()) {
		return nil, validationError("survey is not open for submissions")
	}

	questions, err := s.surveyQuestions(ctx, survey.ID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(input.Answers))
	answers := make([]entity.Answer, 0, len(input.Answers))
	for _, a := range input.Answers {
		if _, ok := questions[a.QuestionID]; !ok {
			return nil, validationError("question %s does not belong to the survey", a.QuestionID)
		}
		if _, dup := seen[a.QuestionID]; dup {
			return nil, fmt.Errorf("%w: question %s is answered more than once", apperrors.ErrConflict, a.QuestionID)
		}
		seen[a.QuestionID] = struct{}{}
		answers = append(answers, entity.Answer{QuestionID: a.QuestionID, Text: a.Text})
	}

	result := &entity.Result{
		SurveyID: survey.ID,
		UserID:   actor.UserID,
		Answers:  answers,
	}
	if len(input.Metadata) > 0 {
		result.Metadata = datatypes.JSONMap(input.Metadata)
	}

	if err := s.resultRepo.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save result: %w", err)
	}
	log.Printf("[ResultService] Сохранен результат ID=%s опроса ID=%s пользователя ID=%s (ответов: %d)",
		result.ID, survey.ID, actor.UserID, len(answers))
	return result, nil
}

// AddAnswer добавляет ответ к существующему результату
func (s *ResultService) AddAnswer(ctx context.Context, actor Actor, resultID uuid.UUID, input AnswerInput) (*entity.Answer, error) {
	result, err := s.resultRepo.GetByID(ctx, resultID)
	if err != nil {
		return nil, err
	}
	if result.UserID != actor.UserID && !actor.IsSuperuser {
		return nil, forbiddenError("only the author of the result can add answers")
	}

	questions, err := s.surveyQuestions(ctx, result.SurveyID)
	if err != nil {
		return nil, err
	}
	if _, ok := questions[input.QuestionID]; !ok {
		return nil, validationError("question %s does not belong to the survey", input.QuestionID)
	}

	answer := &entity.Answer{ResultID: result.ID, QuestionID: input.QuestionID, Text: input.Text}
	if err := s.resultRepo.AddAnswer(ctx, answer); err != nil {
		return nil, fmt.Errorf("failed to add answer: %w", err)
	}
	return answer, nil
}

// ListResults возвращает результаты: суперпользователю все, остальным только собственные
func (s *ResultService) ListResults(ctx context.Context, actor Actor, surveyID *uuid.UUID) ([]entity.Result, error) {
	filters := repository.ResultFilters{SurveyID: surveyID}
	if !actor.IsSuperuser {
		filters.UserID = &actor.UserID
	}
	results, err := s.resultRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	return results, nil
}

// GetResult возвращает результат автору, суперпользователю или тому, кто управляет опросом
func (s *ResultService) GetResult(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Result, error) {
	result, err := s.resultRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if result.UserID == actor.UserID || actor.IsSuperuser {
		return result, nil
	}
	survey, err := s.access.surveyRepo.GetByID(ctx, result.SurveyID)
	if err != nil {
		return nil, err
	}
	ok, err := s.access.canManage(ctx, actor, survey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, forbiddenError("result belongs to another user")
	}
	return result, nil
}

// DeleteResult удаляет результат; доступно только суперпользователю
func (s *ResultService) DeleteResult(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.IsSuperuser {
		return forbiddenError("only superusers can delete results")
	}
	return s.resultRepo.Delete(ctx, id)
}

func (s *ResultService) surveyQuestions(ctx context.Context, surveyID uuid.UUID) (map[uuid.UUID]entity.Question, error) {
	questions, err := s.questionRepo.ListBySurvey(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load survey questions: %w", err)
	}
	byID := make(map[uuid.UUID]entity.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	return byID, nil
}
