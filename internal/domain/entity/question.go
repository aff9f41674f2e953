package entity

import (
	"github.com/google/uuid"
)

// QuestionType определяет тип вопроса
type QuestionType int

// Типы вопросов (значения совпадают со столбцом of_type)
const (
	QuestionTypeTrueFalse      QuestionType = 1
	QuestionTypeMultipleChoice QuestionType = 2
	QuestionTypeText           QuestionType = 3
)

var questionTypeCodes = map[QuestionType]string{
	QuestionTypeTrueFalse:      "true_false",
	QuestionTypeMultipleChoice: "multiple_choice",
	QuestionTypeText:           "text",
}

// ParseQuestionType преобразует код типа ("true_false", "multiple_choice", "text") в QuestionType.
// Пустая строка соответствует типу по умолчанию (true_false).
func ParseQuestionType(code string) (QuestionType, bool) {
	if code == "" {
		return QuestionTypeTrueFalse, true
	}
	for t, c := range questionTypeCodes {
		if c == code {
			return t, true
		}
	}
	return 0, false
}

// Valid проверяет, что значение является известным типом вопроса
func (t QuestionType) Valid() bool {
	_, ok := questionTypeCodes[t]
	return ok
}

// Code возвращает строковый код типа для API
func (t QuestionType) Code() string {
	return questionTypeCodes[t]
}

// Question представляет вопрос, принадлежащий одному опросу
type Question struct {
	Model
	SurveyID uuid.UUID    `gorm:"type:uuid;not null;index" json:"survey_id"`
	OfType   QuestionType `gorm:"not null" json:"of_type"`

	Translations []QuestionTranslation `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"translations,omitempty"`
	Choices      []Choice              `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"choices,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// Translation возвращает перевод для локали с откатом на локаль по умолчанию
func (q *Question) Translation(locale, fallback string) QuestionTranslation {
	t, _ := PickTranslation(q.Translations, locale, fallback)
	return t
}

func (q *Question) String() string {
	if len(q.Translations) > 0 {
		return q.Translations[0].Question
	}
	return q.ID.String()
}

// QuestionTranslation хранит текст вопроса для одной локали
type QuestionTranslation struct {
	QuestionID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	LanguageCode string    `gorm:"size:15;primaryKey" json:"language_code"`
	Question     string    `gorm:"size:512;not null" json:"question"`
}

// TableName определяет имя таблицы для GORM
func (QuestionTranslation) TableName() string {
	return "question_translations"
}

// Locale реализует Translation
func (t QuestionTranslation) Locale() string {
	return t.LanguageCode
}

// Choice представляет вариант ответа на вопрос
type Choice struct {
	Model
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	IsCorrect  bool      `gorm:"not null" json:"is_correct"`

	Translations []ChoiceTranslation `gorm:"foreignKey:ChoiceID;constraint:OnDelete:CASCADE" json:"translations,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (Choice) TableName() string {
	return "choices"
}

// Translation возвращает перевод для локали с откатом на локаль по умолчанию
func (c *Choice) Translation(locale, fallback string) ChoiceTranslation {
	t, _ := PickTranslation(c.Translations, locale, fallback)
	return t
}

func (c *Choice) String() string {
	if len(c.Translations) > 0 {
		return c.Translations[0].Value
	}
	return c.ID.String()
}

// ChoiceTranslation хранит текст варианта ответа для одной локали
type ChoiceTranslation struct {
	ChoiceID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	LanguageCode string    `gorm:"size:15;primaryKey" json:"language_code"`
	Value        string    `gorm:"size:512;not null" json:"value"`
}

// TableName определяет имя таблицы для GORM
func (ChoiceTranslation) TableName() string {
	return "choice_translations"
}

// Locale реализует Translation
func (t ChoiceTranslation) Locale() string {
	return t.LanguageCode
}
