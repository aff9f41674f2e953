package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Result представляет одну завершенную попытку прохождения опроса пользователем.
// На пару (survey_id, user_id) допускается не более одного результата.
type Result struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	SurveyID  uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_result_survey_user;index" json:"survey_id"`
	UserID    uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_result_survey_user;index" json:"user_id"`
	Timestamp time.Time         `gorm:"<-:create;not null" json:"timestamp"`
	Metadata  datatypes.JSONMap `json:"metadata,omitempty"`

	Survey  *Survey  `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE" json:"-"`
	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Answers []Answer `gorm:"foreignKey:ResultID;constraint:OnDelete:CASCADE" json:"answers"`
}

// TableName определяет имя таблицы для GORM
func (Result) TableName() string {
	return "results"
}

// BeforeCreate назначает идентификатор и фиксирует время прохождения
func (r *Result) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
	return nil
}

func (r *Result) String() string {
	return r.ID.String()
}

// Answer представляет ответ пользователя на один вопрос в рамках результата.
// На пару (result_id, question_id) допускается не более одного ответа.
type Answer struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ResultID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_answer_result_question" json:"result_id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_answer_result_question;index" json:"question_id"`
	Text       string    `gorm:"column:answer;type:text;not null" json:"answer"`
	CreatedAt  time.Time `json:"created_at"`

	Question *Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName определяет имя таблицы для GORM
func (Answer) TableName() string {
	return "answers"
}

// BeforeCreate назначает идентификатор ответа
func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *Answer) String() string {
	return a.Text
}
