package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/assessment-api/internal/handler/dto"
	"github.com/yourusername/assessment-api/internal/middleware"
	"github.com/yourusername/assessment-api/internal/service"
)

// QuestionHandler обрабатывает запросы к вопросам и вариантам ответа
type QuestionHandler struct {
	questionService *service.QuestionService
	defaultLocale   string
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(questionService *service.QuestionService, defaultLocale string) *QuestionHandler {
	return &QuestionHandler{questionService: questionService, defaultLocale: defaultLocale}
}

func (h *QuestionHandler) locale(c *gin.Context) string {
	return middleware.LocaleFromContext(c, h.defaultLocale)
}

// ListQuestions возвращает вопросы опроса
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	questions, err := h.questionService.ListQuestions(c.Request.Context(), actor, pathUUID(c, "surveyID"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuestionListResponse(questions, h.locale(c), h.defaultLocale))
}

// CreateQuestion добавляет вопрос в опрос
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	input := service.CreateQuestionInput{
		Language: h.locale(c),
		Text:     req.Question,
		Type:     req.OfType,
		Choices:  make([]service.ChoiceInput, 0, len(req.Choices)),
	}
	for _, ch := range req.Choices {
		input.Choices = append(input.Choices, service.ChoiceInput{Value: ch.Value, IsCorrect: ch.IsCorrect})
	}

	question, err := h.questionService.CreateQuestion(c.Request.Context(), actor, pathUUID(c, "surveyID"), input)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewQuestionResponse(question, h.locale(c), h.defaultLocale))
}

// GetQuestion возвращает вопрос с вариантами
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	question, err := h.questionService.GetQuestion(c.Request.Context(), actor, pathUUID(c, "questionID"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuestionResponse(question, h.locale(c), h.defaultLocale))
}

// UpdateQuestion меняет тип вопроса
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}
	question, err := h.questionService.UpdateQuestionType(c.Request.Context(), actor, pathUUID(c, "questionID"), req.OfType)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuestionResponse(question, h.locale(c), h.defaultLocale))
}

// UpsertQuestionTranslation создает или заменяет текст вопроса для локали
func (h *QuestionHandler) UpsertQuestionTranslation(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.QuestionTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}
	lang := c.Param("lang")
	question, err := h.questionService.UpsertQuestionTranslation(c.Request.Context(), actor, pathUUID(c, "questionID"), lang, req.Question)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuestionResponse(question, lang, h.defaultLocale))
}

// DeleteQuestion удаляет вопрос
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := h.questionService.DeleteQuestion(c.Request.Context(), actor, pathUUID(c, "questionID")); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateChoice добавляет вариант ответа к вопросу
func (h *QuestionHandler) CreateChoice(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.ChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}
	choice, err := h.questionService.CreateChoice(c.Request.Context(), actor, pathUUID(c, "questionID"), h.locale(c),
		service.ChoiceInput{Value: req.Value, IsCorrect: req.IsCorrect})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewChoiceResponse(choice, h.locale(c), h.defaultLocale))
}

// UpdateChoice меняет признак правильного ответа
func (h *QuestionHandler) UpdateChoice(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.UpdateChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}
	choice, err := h.questionService.UpdateChoice(c.Request.Context(), actor, pathUUID(c, "choiceID"), *req.IsCorrect)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewChoiceResponse(choice, h.locale(c), h.defaultLocale))
}

// UpsertChoiceTranslation создает или заменяет текст варианта для локали
func (h *QuestionHandler) UpsertChoiceTranslation(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.ChoiceTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}
	lang := c.Param("lang")
	choice, err := h.questionService.UpsertChoiceTranslation(c.Request.Context(), actor, pathUUID(c, "choiceID"), lang, req.Value)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewChoiceResponse(choice, lang, h.defaultLocale))
}

// DeleteChoice удаляет вариант ответа
func (h *QuestionHandler) DeleteChoice(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := h.questionService.DeleteChoice(c.Request.Context(), actor, pathUUID(c, "choiceID")); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
