package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// AnswerRequest - ответ на один вопрос
type AnswerRequest struct {
	Question uuid.UUID `json:"question" binding:"required"`
	Answer   string    `json:"answer"`
}

// SubmitResultRequest представляет прохождение опроса
type SubmitResultRequest struct {
	Survey  uuid.UUID       `json:"survey" binding:"required"`
	Answers []AnswerRequest `json:"answers" binding:"omitempty,dive"`
}

// AnswerResponse представляет ответ пользователя
type AnswerResponse struct {
	ID       uuid.UUID `json:"id"`
	Question uuid.UUID `json:"question"`
	Answer   string    `json:"answer"`
}

// ResultResponse представляет результат прохождения опроса
type ResultResponse struct {
	ID        uuid.UUID              `json:"id"`
	Survey    uuid.UUID              `json:"survey"`
	User      uuid.UUID              `json:"user"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Answers   []AnswerResponse       `json:"answers"`
}

// NewAnswerResponse создает DTO ответа
func NewAnswerResponse(a *entity.Answer) AnswerResponse {
	return AnswerResponse{ID: a.ID, Question: a.QuestionID, Answer: a.Text}
}

// NewResultResponse создает DTO результата
func NewResultResponse(r *entity.Result) ResultResponse {
	resp := ResultResponse{
		ID:        r.ID,
		Survey:    r.SurveyID,
		User:      r.UserID,
		Timestamp: r.Timestamp,
		Metadata:  r.Metadata,
		Answers:   make([]AnswerResponse, 0, len(r.Answers)),
	}
	for i := range r.Answers {
		resp.Answers = append(resp.Answers, NewAnswerResponse(&r.Answers[i]))
	}
	return resp
}

// NewResultListResponse создает список DTO результатов; пустой список сериализуется как []
func NewResultListResponse(results []entity.Result) []ResultResponse {
	out := make([]ResultResponse, 0, len(results))
	for i := range results {
		out = append(out, NewResultResponse(&results[i]))
	}
	return out
}
