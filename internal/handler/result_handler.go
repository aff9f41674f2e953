package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/assessment-api/internal/handler/dto"
	"github.com/yourusername/assessment-api/internal/service"
)

// ResultHandler обрабатывает запросы, связанные с прохождениями опросов
type ResultHandler struct {
	resultService *service.ResultService
}

// NewResultHandler создает новый обработчик результатов
func NewResultHandler(resultService *service.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

// SubmitResult сохраняет прохождение опроса текущим пользователем
func (h *ResultHandler) SubmitResult(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.SubmitResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	input := service.SubmitResultInput{
		SurveyID: req.Survey,
		Answers:  make([]service.AnswerInput, 0, len(req.Answers)),
		Metadata: map[string]interface{}{
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		},
	}
	for _, a := range req.Answers {
		input.Answers = append(input.Answers, service.AnswerInput{QuestionID: a.Question, Text: a.Answer})
	}

	result, err := h.resultService.SubmitResult(c.Request.Context(), actor, input)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewResultResponse(result))
}

// ListResults возвращает результаты: суперпользователю все, остальным собственные.
// Query: survey=<uuid>.
func (h *ResultHandler) ListResults(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var surveyID *uuid.UUID
	if v := c.Query("survey"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid survey filter"})
			return
		}
		surveyID = &id
	}

	results, err := h.resultService.ListResults(c.Request.Context(), actor, surveyID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResultListResponse(results))
}

// GetResult возвращает один результат
func (h *ResultHandler) GetResult(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	result, err := h.resultService.GetResult(c.Request.Context(), actor, pathUUID(c, "resultID"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResultResponse(result))
}

// AddAnswer добавляет ответ к существующему результату
func (h *ResultHandler) AddAnswer(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}
	answer, err := h.resultService.AddAnswer(c.Request.Context(), actor, pathUUID(c, "resultID"),
		service.AnswerInput{QuestionID: req.Question, Text: req.Answer})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAnswerResponse(answer))
}

// DeleteResult удаляет результат вместе с ответами
func (h *ResultHandler) DeleteResult(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := h.resultService.DeleteResult(c.Request.Context(), actor, pathUUID(c, "resultID")); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
