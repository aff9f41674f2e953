package entity

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// SlugPattern описывает допустимый slug: латиница, цифры, дефис и подчеркивание
var SlugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// Survey представляет опрос (анкету) с окном активности
type Survey struct {
	Model
	IsActive      bool       `gorm:"not null" json:"is_active"`
	StartDateTime time.Time  `gorm:"not null" json:"start_date_time"`
	EndDateTime   *time.Time `json:"end_date_time,omitempty"`
	OwnerID       *uuid.UUID `gorm:"type:uuid;index" json:"owner_id,omitempty"`
	Owner         *User      `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL" json:"-"`

	Translations []SurveyTranslation `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE" json:"translations,omitempty"`
	Questions    []Question          `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName определяет имя таблицы для GORM
func (Survey) TableName() string {
	return "surveys"
}

// IsOpen проверяет, принимает ли опрос результаты в момент now
func (s *Survey) IsOpen(now time.Time) bool {
	if !s.IsActive {
		return false
	}
	if now.Before(s.StartDateTime) {
		return false
	}
	return s.EndDateTime == nil || now.Before(*s.EndDateTime)
}

// IsOwnedBy проверяет, является ли пользователь владельцем опроса
func (s *Survey) IsOwnedBy(userID uuid.UUID) bool {
	return s.OwnerID != nil && *s.OwnerID == userID
}

// Translation возвращает перевод для локали с откатом на локаль по умолчанию
func (s *Survey) Translation(locale, fallback string) SurveyTranslation {
	t, _ := PickTranslation(s.Translations, locale, fallback)
	return t
}

func (s *Survey) String() string {
	if len(s.Translations) > 0 {
		return s.Translations[0].Name
	}
	return s.ID.String()
}

// SurveyTranslation хранит переводимые поля опроса для одной локали
type SurveyTranslation struct {
	SurveyID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	LanguageCode string    `gorm:"size:15;primaryKey" json:"language_code"`
	Name         string    `gorm:"size:160;not null" json:"name"`
	Slug         string    `gorm:"size:160;not null;uniqueIndex" json:"slug"`
	Description  string    `gorm:"type:text;not null;default:''" json:"description"`
}

// TableName определяет имя таблицы для GORM
func (SurveyTranslation) TableName() string {
	return "survey_translations"
}

// Locale реализует Translation
func (t SurveyTranslation) Locale() string {
	return t.LanguageCode
}

// SurveyAdmin связывает пользователя с опросом, которым он может управлять
type SurveyAdmin struct {
	Model
	AdminID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_survey_admin" json:"admin_id"`
	SurveyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_survey_admin;index" json:"survey_id"`
	Admin    *User     `gorm:"foreignKey:AdminID;constraint:OnDelete:CASCADE" json:"admin,omitempty"`
	Survey   *Survey   `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName определяет имя таблицы для GORM
func (SurveyAdmin) TableName() string {
	return "survey_admins"
}

func (a *SurveyAdmin) String() string {
	if a.Admin != nil {
		return a.Admin.Username
	}
	return a.ID.String()
}

// SurveyGroup представляет именованный набор опросов
type SurveyGroup struct {
	Model
	Name     string   `gorm:"size:160;not null" json:"name"`
	IsActive bool     `gorm:"not null" json:"is_active"`
	Surveys  []Survey `gorm:"many2many:survey_group_surveys;constraint:OnDelete:CASCADE" json:"surveys,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (SurveyGroup) TableName() string {
	return "survey_groups"
}

func (g *SurveyGroup) String() string {
	return g.Name
}
