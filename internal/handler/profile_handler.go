package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/assessment-api/internal/handler/dto"
	"github.com/yourusername/assessment-api/internal/middleware"
	"github.com/yourusername/assessment-api/internal/service"
)

// ProfileHandler обрабатывает запросы к профилям пользователей
type ProfileHandler struct {
	profileService *service.ProfileService
	defaultLocale  string
}

// NewProfileHandler создает новый обработчик профилей
func NewProfileHandler(profileService *service.ProfileService, defaultLocale string) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, defaultLocale: defaultLocale}
}

// GetMyProfile возвращает профиль текущего пользователя
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	profile, err := h.profileService.GetProfile(c.Request.Context(), actor.UserID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileResponse(profile, middleware.LocaleFromContext(c, h.defaultLocale), h.defaultLocale))
}

// SetAssignments заменяет опросы и группы, назначенные пользователю
func (h *ProfileHandler) SetAssignments(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.SetAssignmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}
	profile, err := h.profileService.SetAssignments(c.Request.Context(), actor, pathUUID(c, "userID"), req.Surveys, req.SurveyGroups)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileResponse(profile, middleware.LocaleFromContext(c, h.defaultLocale), h.defaultLocale))
}
