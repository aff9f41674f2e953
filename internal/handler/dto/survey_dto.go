package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// CreateSurveyRequest представляет запрос на создание опроса; перевод сохраняется в локали запроса
type CreateSurveyRequest struct {
	Name          string     `json:"name" binding:"required,max=160"`
	Slug          string     `json:"slug" binding:"required,max=160,slug"`
	Description   string     `json:"description"`
	IsActive      *bool      `json:"is_active"`
	StartDateTime *time.Time `json:"start_date_time"`
	EndDateTime   *time.Time `json:"end_date_time"`
}

// UpdateSurveyRequest содержит изменяемые поля опроса
type UpdateSurveyRequest struct {
	IsActive      *bool      `json:"is_active"`
	StartDateTime *time.Time `json:"start_date_time"`
	EndDateTime   *time.Time `json:"end_date_time"`
	// ClearEndDateTime снимает ограничение по дате окончания
	ClearEndDateTime bool `json:"clear_end_date_time"`
}

// SurveyTranslationRequest содержит переводимые поля опроса для одной локали
type SurveyTranslationRequest struct {
	Name        string `json:"name" binding:"required,max=160"`
	Slug        string `json:"slug" binding:"required,max=160,slug"`
	Description string `json:"description"`
}

// AddSurveyAdminRequest назначает администратора опроса
type AddSurveyAdminRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

// TranslationResponse - перевод опроса
type TranslationResponse struct {
	LanguageCode string `json:"language_code"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
}

// SurveyResponse представляет опрос в формате для ответа клиенту.
// Name, Slug и Description даны в локали запроса.
type SurveyResponse struct {
	ID            uuid.UUID             `json:"id"`
	Name          string                `json:"name"`
	Slug          string                `json:"slug"`
	Description   string                `json:"description"`
	LanguageCode  string                `json:"language_code"`
	IsActive      bool                  `json:"is_active"`
	StartDateTime time.Time             `json:"start_date_time"`
	EndDateTime   *time.Time            `json:"end_date_time"`
	OwnerID       *uuid.UUID            `json:"owner_id"`
	Translations  []TranslationResponse `json:"translations"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// PaginatedSurveyResponse представляет страницу списка опросов
type PaginatedSurveyResponse struct {
	Surveys []SurveyResponse `json:"surveys"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	PerPage int              `json:"per_page"`
}

// SurveyAdminResponse - администратор опроса
type SurveyAdminResponse struct {
	ID       uuid.UUID `json:"id"`
	SurveyID uuid.UUID `json:"survey_id"`
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

// NewSurveyResponse создает DTO опроса
func NewSurveyResponse(s *entity.Survey, locale, fallback string) SurveyResponse {
	t := s.Translation(locale, fallback)
	resp := SurveyResponse{
		ID:            s.ID,
		Name:          t.Name,
		Slug:          t.Slug,
		Description:   t.Description,
		LanguageCode:  t.LanguageCode,
		IsActive:      s.IsActive,
		StartDateTime: s.StartDateTime,
		EndDateTime:   s.EndDateTime,
		OwnerID:       s.OwnerID,
		Translations:  make([]TranslationResponse, 0, len(s.Translations)),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	for _, tr := range s.Translations {
		resp.Translations = append(resp.Translations, TranslationResponse{
			LanguageCode: tr.LanguageCode,
			Name:         tr.Name,
			Slug:         tr.Slug,
			Description:  tr.Description,
		})
	}
	return resp
}

// NewSurveyListResponse создает список DTO опросов; пустой список сериализуется как []
func NewSurveyListResponse(surveys []entity.Survey, locale, fallback string) []SurveyResponse {
	out := make([]SurveyResponse, 0, len(surveys))
	for i := range surveys {
		out = append(out, NewSurveyResponse(&surveys[i], locale, fallback))
	}
	return out
}

// NewSurveyAdminResponse создает DTO администратора опроса
func NewSurveyAdminResponse(a *entity.SurveyAdmin) SurveyAdminResponse {
	resp := SurveyAdminResponse{ID: a.ID, SurveyID: a.SurveyID, UserID: a.AdminID}
	if a.Admin != nil {
		resp.Username = a.Admin.Username
	}
	return resp
}
