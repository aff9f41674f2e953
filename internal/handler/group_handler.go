package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/assessment-api/internal/handler/dto"
	"github.com/yourusername/assessment-api/internal/middleware"
	"github.com/yourusername/assessment-api/internal/service"
)

// GroupHandler обрабатывает запросы к группам опросов
type GroupHandler struct {
	groupService  *service.SurveyGroupService
	defaultLocale string
}

// NewGroupHandler создает новый обработчик групп
func NewGroupHandler(groupService *service.SurveyGroupService, defaultLocale string) *GroupHandler {
	return &GroupHandler{groupService: groupService, defaultLocale: defaultLocale}
}

func (h *GroupHandler) locale(c *gin.Context) string {
	return middleware.LocaleFromContext(c, h.defaultLocale)
}

// CreateGroup создает группу опросов
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}
	group, err := h.groupService.CreateGroup(c.Request.Context(), actor, req.Name, req.IsActive)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewGroupResponse(group, h.locale(c), h.defaultLocale))
}

// ListGroups возвращает все группы
func (h *GroupHandler) ListGroups(c *gin.Context) {
	groups, err := h.groupService.ListGroups(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewGroupListResponse(groups, h.locale(c), h.defaultLocale))
}

// GetGroup возвращает группу с опросами
func (h *GroupHandler) GetGroup(c *gin.Context) {
	group, err := h.groupService.GetGroup(c.Request.Context(), pathUUID(c, "groupID"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewGroupResponse(group, h.locale(c), h.defaultLocale))
}

// UpdateGroup обновляет название и активность группы
func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}
	group, err := h.groupService.UpdateGroup(c.Request.Context(), actor, pathUUID(c, "groupID"),
		service.UpdateGroupInput{Name: req.Name, IsActive: req.IsActive})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewGroupResponse(group, h.locale(c), h.defaultLocale))
}

// SetGroupSurveys заменяет состав группы
func (h *GroupHandler) SetGroupSurveys(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.SetSurveysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}
	group, err := h.groupService.SetGroupSurveys(c.Request.Context(), actor, pathUUID(c, "groupID"), req.Surveys)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewGroupResponse(group, h.locale(c), h.defaultLocale))
}

// DeleteGroup удаляет группу
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := h.groupService.DeleteGroup(c.Request.Context(), actor, pathUUID(c, "groupID")); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
