package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/assessment-api/internal/handler/dto"
	"github.com/yourusername/assessment-api/internal/middleware"
	"github.com/yourusername/assessment-api/internal/service"
)

// SurveyHandler обрабатывает запросы, связанные с опросами и их администраторами
type SurveyHandler struct {
	surveyService  *service.SurveyService
	profileService *service.ProfileService
	defaultLocale  string
}

// NewSurveyHandler создает новый обработчик опросов
func NewSurveyHandler(surveyService *service.SurveyService, profileService *service.ProfileService, defaultLocale string) *SurveyHandler {
	return &SurveyHandler{surveyService: surveyService, profileService: profileService, defaultLocale: defaultLocale}
}

func (h *SurveyHandler) locale(c *gin.Context) string {
	return middleware.LocaleFromContext(c, h.defaultLocale)
}

// CreateSurvey создает опрос; вызывающий становится владельцем
func (h *SurveyHandler) CreateSurvey(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.CreateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	survey, err := h.surveyService.CreateSurvey(c.Request.Context(), actor, service.CreateSurveyInput{
		Language: h.locale(c),
		Translation: service.TranslationInput{
			Name:        req.Name,
			Slug:        req.Slug,
			Description: req.Description,
		},
		IsActive:      req.IsActive,
		StartDateTime: req.StartDateTime,
		EndDateTime:   req.EndDateTime,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSurveyResponse(survey, h.locale(c), h.defaultLocale))
}

// ListSurveys возвращает страницу опросов.
// Query: active=true|false, mine=true, page, page_size.
func (h *SurveyHandler) ListSurveys(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	input := service.ListSurveysInput{Mine: c.Query("mine") == "true"}
	if v := c.Query("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid active filter"})
			return
		}
		input.IsActive = &active
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 {
		pageSize = 20
	} else if pageSize > 100 {
		pageSize = 100
	}
	input.Page, input.PageSize = page, pageSize

	surveys, total, err := h.surveyService.ListSurveys(c.Request.Context(), actor, input)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PaginatedSurveyResponse{
		Surveys: dto.NewSurveyListResponse(surveys, h.locale(c), h.defaultLocale),
		Total:   total,
		Page:    page,
		PerPage: pageSize,
	})
}

// GetSurvey возвращает опрос по ID
func (h *SurveyHandler) GetSurvey(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	survey, err := h.surveyService.GetSurvey(c.Request.Context(), actor, pathUUID(c, "surveyID"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSurveyResponse(survey, h.locale(c), h.defaultLocale))
}

// GetSurveyBySlug возвращает опрос по slug любого из переводов
func (h *SurveyHandler) GetSurveyBySlug(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	survey, err := h.surveyService.GetSurveyBySlug(c.Request.Context(), actor, c.Param("slug"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSurveyResponse(survey, h.locale(c), h.defaultLocale))
}

// UpdateSurvey обновляет активность и окно проведения опроса
func (h *SurveyHandler) UpdateSurvey(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.UpdateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	survey, err := h.surveyService.UpdateSurvey(c.Request.Context(), actor, pathUUID(c, "surveyID"), service.UpdateSurveyInput{
		IsActive:         req.IsActive,
		StartDateTime:    req.StartDateTime,
		EndDateTime:      req.EndDateTime,
		ClearEndDateTime: req.ClearEndDateTime,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSurveyResponse(survey, h.locale(c), h.defaultLocale))
}

// UpsertTranslation создает или заменяет перевод опроса для локали из пути
func (h *SurveyHandler) UpsertTranslation(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.SurveyTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	lang := c.Param("lang")
	survey, err := h.surveyService.UpsertTranslation(c.Request.Context(), actor, pathUUID(c, "surveyID"), lang, service.TranslationInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSurveyResponse(survey, lang, h.defaultLocale))
}

// DeleteSurvey удаляет опрос вместе с вопросами и результатами
func (h *SurveyHandler) DeleteSurvey(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := h.surveyService.DeleteSurvey(c.Request.Context(), actor, pathUUID(c, "surveyID")); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAdmins возвращает администраторов опроса
func (h *SurveyHandler) ListAdmins(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	admins, err := h.surveyService.ListAdmins(c.Request.Context(), actor, pathUUID(c, "surveyID"))
	if err != nil {
		handleError(c, err)
		return
	}
	resp := make([]dto.SurveyAdminResponse, 0, len(admins))
	for i := range admins {
		resp = append(resp, dto.NewSurveyAdminResponse(&admins[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// AddAdmin назначает пользователя администратором опроса
func (h *SurveyHandler) AddAdmin(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.AddSurveyAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}
	admin, err := h.surveyService.AddAdmin(c.Request.Context(), actor, pathUUID(c, "surveyID"), req.UserID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSurveyAdminResponse(admin))
}

// RemoveAdmin снимает права администратора опроса
func (h *SurveyHandler) RemoveAdmin(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
		return
	}
	if err := h.surveyService.RemoveAdmin(c.Request.Context(), actor, pathUUID(c, "surveyID"), userID); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAssigned возвращает активные опросы, назначенные текущему пользователю
func (h *SurveyHandler) ListAssigned(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	surveys, err := h.profileService.AssignedSurveys(c.Request.Context(), actor.UserID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSurveyListResponse(surveys, h.locale(c), h.defaultLocale))
}
