package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает вопрос вместе с переводами и вариантами ответа в одной транзакции
func (r *QuestionRepo) Create(ctx context.Context, question *entity.Question) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(question).Error; err != nil {
			return err
		}
		if len(question.Translations) > 0 {
			for i := range question.Translations {
				question.Translations[i].QuestionID = question.ID
			}
			if err := tx.Create(&question.Translations).Error; err != nil {
				return err
			}
		}
		for i := range question.Choices {
			question.Choices[i].QuestionID = question.ID
			if err := createChoice(tx, &question.Choices[i]); err != nil {
				return err
			}
		}
		return nil
	})
	return translateError(err, "question translation already exists")
}

// GetByID возвращает вопрос с переводами и вариантами ответа
func (r *QuestionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Question, error) {
	var question entity.Question
	err := preloadQuestion(r.db.WithContext(ctx)).First(&question, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "")
	}
	return &question, nil
}

// ListBySurvey возвращает все вопросы опроса в порядке создания
func (r *QuestionRepo) ListBySurvey(ctx context.Context, surveyID uuid.UUID) ([]entity.Question, error) {
	var questions []entity.Question
	err := preloadQuestion(r.db.WithContext(ctx)).
		Where("survey_id = ?", surveyID).
		Order("created_at, id").
		Find(&questions).Error
	return questions, err
}

// Update обновляет перечисленные поля вопроса
func (r *QuestionRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&entity.Question{}).Where("id = ?", id).Updates(updates)
	return checkAffected(result, "")
}

// UpsertTranslation создает или заменяет текст вопроса для одной локали
func (r *QuestionRepo) UpsertTranslation(ctx context.Context, translation *entity.QuestionTranslation) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "question_id"}, {Name: "language_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"question"}),
	}).Create(translation).Error
	return translateError(err, "")
}

// Delete удаляет вопрос; варианты и ответы удаляются каскадно
func (r *QuestionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Question{}, "id = ?", id)
	return checkAffected(result, "")
}

func preloadQuestion(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Translations").
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at, id")
		}).
		Preload("Choices.Translations")
}

// ChoiceRepo реализует repository.ChoiceRepository
type ChoiceRepo struct {
	db *gorm.DB
}

// NewChoiceRepo создает новый репозиторий вариантов ответа
func NewChoiceRepo(db *gorm.DB) *ChoiceRepo {
	return &ChoiceRepo{db: db}
}

// Create создает вариант ответа с переводами
func (r *ChoiceRepo) Create(ctx context.Context, choice *entity.Choice) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return createChoice(tx, choice)
	})
	return translateError(err, "choice translation already exists")
}

// GetByID возвращает вариант ответа с переводами
func (r *ChoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Choice, error) {
	var choice entity.Choice
	err := r.db.WithContext(ctx).Preload("Translations").First(&choice, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "")
	}
	return &choice, nil
}

// Update обновляет перечисленные поля варианта
func (r *ChoiceRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&entity.Choice{}).Where("id = ?", id).Updates(updates)
	return checkAffected(result, "")
}

// UpsertTranslation создает или заменяет текст варианта для одной локали
func (r *ChoiceRepo) UpsertTranslation(ctx context.Context, translation *entity.ChoiceTranslation) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "choice_id"}, {Name: "language_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(translation).Error
	return translateError(err, "")
}

// Delete удаляет вариант ответа
func (r *ChoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Choice{}, "id = ?", id)
	return checkAffected(result, "")
}

func createChoice(tx *gorm.DB, choice *entity.Choice) error {
	if err := tx.Omit(clause.Associations).Create(choice).Error; err != nil {
		return err
	}
	if len(choice.Translations) == 0 {
		return nil
	}
	for i := range choice.Translations {
		choice.Translations[i].ChoiceID = choice.ID
	}
	return tx.Create(&choice.Translations).Error
}
