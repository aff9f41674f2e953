package entity

import (
	"github.com/google/uuid"
)

// Profile расширяет пользователя набором назначенных ему опросов и групп опросов
type Profile struct {
	Model
	UserID       uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User         *User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Surveys      []Survey      `gorm:"many2many:profile_surveys;constraint:OnDelete:CASCADE" json:"surveys"`
	SurveyGroups []SurveyGroup `gorm:"many2many:profile_survey_groups;constraint:OnDelete:CASCADE" json:"survey_groups"`
}

// TableName определяет имя таблицы для GORM
func (Profile) TableName() string {
	return "profiles"
}

// AssignedSurveys возвращает активные опросы, назначенные напрямую или через активные группы, без повторов
func (p *Profile) AssignedSurveys() []Survey {
	seen := make(map[uuid.UUID]struct{})
	out := make([]Survey, 0, len(p.Surveys))
	add := func(s Survey) {
		if !s.IsActive {
			return
		}
		if _, ok := seen[s.ID]; ok {
			return
		}
		seen[s.ID] = struct{}{}
		out = append(out, s)
	}
	for _, s := range p.Surveys {
		add(s)
	}
	for _, g := range p.SurveyGroups {
		if !g.IsActive {
			continue
		}
		for _, s := range g.Surveys {
			add(s)
		}
	}
	return out
}

func (p *Profile) String() string {
	if p.User != nil {
		return p.User.FullName()
	}
	return p.ID.String()
}
