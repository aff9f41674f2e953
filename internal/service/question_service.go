package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
	"github.com/yourusername/assessment-api/pkg/locale"
)

// QuestionService управляет вопросами опросов и вариантами ответа
type QuestionService struct {
	access       *surveyAccess
	questionRepo repository.QuestionRepository
	choiceRepo   repository.ChoiceRepository
	locales      *locale.Resolver
}

// NewQuestionService создает сервис вопросов
func NewQuestionService(
	surveyRepo repository.SurveyRepository,
	adminRepo repository.SurveyAdminRepository,
	questionRepo repository.QuestionRepository,
	choiceRepo repository.ChoiceRepository,
	locales *locale.Resolver,
) *QuestionService {
	return &QuestionService{
		access:       &surveyAccess{surveyRepo: surveyRepo, adminRepo: adminRepo},
		questionRepo: questionRepo,
		choiceRepo:   choiceRepo,
		locales:      locales,
	}
}

// ChoiceInput содержит данные варианта ответа
type ChoiceInput struct {
	Value     string
	IsCorrect bool
}

// CreateQuestionInput содержит данные для создания вопроса
type CreateQuestionInput struct {
	Language string
	Text     string
	// Type: "true_false", "multiple_choice" или "text"; пусто - true_false
	Type    string
	Choices []ChoiceInput
}

// ListQuestions возвращает вопросы видимого пользователю опроса
func (s *QuestionService) ListQuestions(ctx context.Context, actor Actor, surveyID uuid.UUID) ([]entity.Question, error) {
	if _, err := s.access.visible(ctx, actor, surveyID); err != nil {
		return nil, err
	}
	return s.questionRepo.ListBySurvey(ctx, surveyID)
}

// CreateQuestion добавляет вопрос в опрос вместе с вариантами ответа
func (s *QuestionService) CreateQuestion(ctx context.Context, actor Actor, surveyID uuid.UUID, input CreateQuestionInput) (*entity.Question, error) {
	if _, err := s.access.manageable(ctx, actor, surveyID); err != nil {
		return nil, err
	}

	lang, err := s.language(input.Language)
	if err != nil {
		return nil, err
	}
	ofType, ok := entity.ParseQuestionType(input.Type)
	if !ok {
		return nil, validationError("unknown question type %q", input.Type)
	}
	text, err := questionText(input.Text)
	if err != nil {
		return nil, err
	}

	question := &entity.Question{
		SurveyID:     surveyID,
		OfType:       ofType,
		Translations: []entity.QuestionTranslation{{LanguageCode: lang, Question: text}},
	}
	for _, c := range input.Choices {
		choice, err := buildChoice(lang, c)
		if err != nil {
			return nil, err
		}
		question.Choices = append(question.Choices, choice)
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

// GetQuestion возвращает вопрос с вариантами
func (s *QuestionService) GetQuestion(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.visible(ctx, actor, question.SurveyID); err != nil {
		return nil, err
	}
	return question, nil
}

// UpdateQuestionType меняет тип вопроса
func (s *QuestionService) UpdateQuestionType(ctx context.Context, actor Actor, id uuid.UUID, typeCode string) (*entity.Question, error) {
	if _, err := s.manageableQuestion(ctx, actor, id); err != nil {
		return nil, err
	}
	ofType, ok := entity.ParseQuestionType(typeCode)
	if !ok {
		return nil, validationError("unknown question type %q", typeCode)
	}
	if err := s.questionRepo.Update(ctx, id, map[string]interface{}{"of_type": ofType}); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	return s.questionRepo.GetByID(ctx, id)
}

// UpsertQuestionTranslation создает или заменяет текст вопроса для локали
func (s *QuestionService) UpsertQuestionTranslation(ctx context.Context, actor Actor, id uuid.UUID, lang, text string) (*entity.Question, error) {
	if _, err := s.manageableQuestion(ctx, actor, id); err != nil {
		return nil, err
	}
	lang, err := s.language(lang)
	if err != nil {
		return nil, err
	}
	text, err = questionText(text)
	if err != nil {
		return nil, err
	}
	translation := &entity.QuestionTranslation{QuestionID: id, LanguageCode: lang, Question: text}
	if err := s.questionRepo.UpsertTranslation(ctx, translation); err != nil {
		return nil, fmt.Errorf("failed to save question translation: %w", err)
	}
	return s.questionRepo.GetByID(ctx, id)
}

// DeleteQuestion удаляет вопрос вместе с вариантами и ответами на него
func (s *QuestionService) DeleteQuestion(ctx context.Context, actor Actor, id uuid.UUID) error {
	if _, err := s.manageableQuestion(ctx, actor, id); err != nil {
		return err
	}
	return s.questionRepo.Delete(ctx, id)
}

// CreateChoice добавляет вариант ответа к вопросу
func (s *QuestionService) CreateChoice(ctx context.Context, actor Actor, questionID uuid.UUID, lang string, input ChoiceInput) (*entity.Choice, error) {
	if _, err := s.manageableQuestion(ctx, actor, questionID); err != nil {
		return nil, err
	}
	lang, err := s.language(lang)
	if err != nil {
		return nil, err
	}
	choice, err := buildChoice(lang, input)
	if err != nil {
		return nil, err
	}
	choice.QuestionID = questionID
	if err := s.choiceRepo.Create(ctx, &choice); err != nil {
		return nil, fmt.Errorf("failed to create choice: %w", err)
	}
	return &choice, nil
}

// UpdateChoice меняет признак правильного ответа
func (s *QuestionService) UpdateChoice(ctx context.Context, actor Actor, id uuid.UUID, isCorrect bool) (*entity.Choice, error) {
	if _, err := s.manageableChoice(ctx, actor, id); err != nil {
		return nil, err
	}
	if err := s.choiceRepo.Update(ctx, id, map[string]interface{}{"is_correct": isCorrect}); err != nil {
		return nil, fmt.Errorf("failed to update choice: %w", err)
	}
	return s.choiceRepo.GetByID(ctx, id)
}

// UpsertChoiceTranslation создает или заменяет текст варианта для локали
func (s *QuestionService) UpsertChoiceTranslation(ctx context.Context, actor Actor, id uuid.UUID, lang, value string) (*entity.Choice, error) {
	if _, err := s.manageableChoice(ctx, actor, id); err != nil {
		return nil, err
	}
	lang, err := s.language(lang)
	if err != nil {
		return nil, err
	}
	value, err = choiceValue(value)
	if err != nil {
		return nil, err
	}
	translation := &entity.ChoiceTranslation{ChoiceID: id, LanguageCode: lang, Value: value}
	if err := s.choiceRepo.UpsertTranslation(ctx, translation); err != nil {
		return nil, fmt.Errorf("failed to save choice translation: %w", err)
	}
	return s.choiceRepo.GetByID(ctx, id)
}

// DeleteChoice удаляет вариант ответа
func (s *QuestionService) DeleteChoice(ctx context.Context, actor Actor, id uuid.UUID) error {
	if _, err := s.manageableChoice(ctx, actor, id); err != nil {
		return err
	}
	return s.choiceRepo.Delete(ctx, id)
}

func (s *QuestionService) manageableQuestion(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.manageable(ctx, actor, question.SurveyID); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) manageableChoice(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Choice, error) {
	choice, err := s.choiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.manageableQuestion(ctx, actor, choice.QuestionID); err != nil {
		return nil, err
	}
	return choice, nil
}

func (s *QuestionService) language(lang string) (string, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if !s.locales.IsSupported(lang) {
		return "", validationError("unsupported language %q", lang)
	}
	return lang, nil
}

func questionText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" || len([]rune(text)) > 512 {
		return "", validationError("question must be between 1 and 512 characters")
	}
	return text, nil
}

func choiceValue(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" || len([]rune(value)) > 512 {
		return "", validationError("choice value must be between 1 and 512 characters")
	}
	return value, nil
}

func buildChoice(lang string, input ChoiceInput) (entity.Choice, error) {
	value, err := choiceValue(input.Value)
	if err != nil {
		return entity.Choice{}, err
	}
	return entity.Choice{
		IsCorrect:    input.IsCorrect,
		Translations: []entity.ChoiceTranslation{{LanguageCode: lang, Value: value}},
	}, nil
}
