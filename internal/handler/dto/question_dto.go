package dto

import (
	"github.com/google/uuid"

	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// ChoiceRequest описывает вариант ответа
type ChoiceRequest struct {
	Value     string `json:"value" binding:"required,max=512"`
	IsCorrect bool   `json:"is_correct"`
}

// CreateQuestionRequest представляет запрос на создание вопроса
type CreateQuestionRequest struct {
	Question string          `json:"question" binding:"required,max=512"`
	OfType   string          `json:"of_type" binding:"omitempty,oneof=true_false multiple_choice text"`
	Choices  []ChoiceRequest `json:"choices" binding:"omitempty,dive"`
}

// UpdateQuestionRequest меняет тип вопроса
type UpdateQuestionRequest struct {
	OfType string `json:"of_type" binding:"required,oneof=true_false multiple_choice text"`
}

// QuestionTranslationRequest содержит текст вопроса для одной локали
type QuestionTranslationRequest struct {
	Question string `json:"question" binding:"required,max=512"`
}

// UpdateChoiceRequest меняет признак правильного ответа
type UpdateChoiceRequest struct {
	IsCorrect *bool `json:"is_correct" binding:"required"`
}

// ChoiceTranslationRequest содержит текст варианта для одной локали
type ChoiceTranslationRequest struct {
	Value string `json:"value" binding:"required,max=512"`
}

// ChoiceResponse представляет вариант ответа
type ChoiceResponse struct {
	ID           uuid.UUID         `json:"id"`
	QuestionID   uuid.UUID         `json:"question_id"`
	Value        string            `json:"value"`
	IsCorrect    bool              `json:"is_correct"`
	Translations map[string]string `json:"translations"`
}

// QuestionResponse представляет вопрос в локали запроса
type QuestionResponse struct {
	ID           uuid.UUID         `json:"id"`
	SurveyID     uuid.UUID         `json:"survey_id"`
	Question     string            `json:"question"`
	OfType       string            `json:"of_type"`
	Choices      []ChoiceResponse  `json:"choices"`
	Translations map[string]string `json:"translations"`
}

// NewChoiceResponse создает DTO варианта ответа
func NewChoiceResponse(c *entity.Choice, locale, fallback string) ChoiceResponse {
	resp := ChoiceResponse{
		ID:           c.ID,
		QuestionID:   c.QuestionID,
		Value:        c.Translation(locale, fallback).Value,
		IsCorrect:    c.IsCorrect,
		Translations: make(map[string]string, len(c.Translations)),
	}
	for _, t := range c.Translations {
		resp.Translations[t.LanguageCode] = t.Value
	}
	return resp
}

// NewQuestionResponse создает DTO вопроса вместе с вариантами
func NewQuestionResponse(q *entity.Question, locale, fallback string) QuestionResponse {
	resp := QuestionResponse{
		ID:           q.ID,
		SurveyID:     q.SurveyID,
		Question:     q.Translation(locale, fallback).Question,
		OfType:       q.OfType.Code(),
		Choices:      make([]ChoiceResponse, 0, len(q.Choices)),
		Translations: make(map[string]string, len(q.Translations)),
	}
	for i := range q.Choices {
		resp.Choices = append(resp.Choices, NewChoiceResponse(&q.Choices[i], locale, fallback))
	}
	for _, t := range q.Translations {
		resp.Translations[t.LanguageCode] = t.Question
	}
	return resp
}

// NewQuestionListResponse создает список DTO вопросов
func NewQuestionListResponse(questions []entity.Question, locale, fallback string) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(questions))
	for i := range questions {
		out = append(out, NewQuestionResponse(&questions[i], locale, fallback))
	}
	return out
}
