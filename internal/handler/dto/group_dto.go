package dto

import (
	"github.com/google/uuid"

	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// CreateGroupRequest представляет запрос на создание группы опросов
type CreateGroupRequest struct {
	Name     string `json:"name" binding:"required,max=160"`
	IsActive *bool  `json:"is_active"`
}

// UpdateGroupRequest содержит изменяемые поля группы
type UpdateGroupRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=160"`
	IsActive *bool   `json:"is_active"`
}

// SetSurveysRequest заменяет набор опросов
type SetSurveysRequest struct {
	Surveys []uuid.UUID `json:"surveys"`
}

// SetAssignmentsRequest заменяет опросы и группы, назначенные пользователю
type SetAssignmentsRequest struct {
	Surveys      []uuid.UUID `json:"surveys"`
	SurveyGroups []uuid.UUID `json:"survey_groups"`
}

// GroupResponse представляет группу опросов
type GroupResponse struct {
	ID       uuid.UUID        `json:"id"`
	Name     string           `json:"name"`
	IsActive bool             `json:"is_active"`
	Surveys  []SurveyResponse `json:"surveys"`
}

// ProfileResponse представляет профиль пользователя с назначениями
type ProfileResponse struct {
	ID           uuid.UUID        `json:"id"`
	UserID       uuid.UUID        `json:"user_id"`
	Surveys      []SurveyResponse `json:"surveys"`
	SurveyGroups []GroupResponse  `json:"survey_groups"`
}

// NewGroupResponse создает DTO группы
func NewGroupResponse(g *entity.SurveyGroup, locale, fallback string) GroupResponse {
	return GroupResponse{
		ID:       g.ID,
		Name:     g.Name,
		IsActive: g.IsActive,
		Surveys:  NewSurveyListResponse(g.Surveys, locale, fallback),
	}
}

// NewGroupListResponse создает список DTO групп
func NewGroupListResponse(groups []entity.SurveyGroup, locale, fallback string) []GroupResponse {
	out := make([]GroupResponse, 0, len(groups))
	for i := range groups {
		out = append(out, NewGroupResponse(&groups[i], locale, fallback))
	}
	return out
}

// NewProfileResponse создает DTO профиля
func NewProfileResponse(p *entity.Profile, locale, fallback string) ProfileResponse {
	resp := ProfileResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		Surveys:      NewSurveyListResponse(p.Surveys, locale, fallback),
		SurveyGroups: make([]GroupResponse, 0, len(p.SurveyGroups)),
	}
	for i := range p.SurveyGroups {
		resp.SurveyGroups = append(resp.SurveyGroups, NewGroupResponse(&p.SurveyGroups[i], locale, fallback))
	}
	return resp
}
