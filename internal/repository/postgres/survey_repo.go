package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
)

const slugConflictMsg = "survey slug is already taken"

// SurveyRepo реализует repository.SurveyRepository
type SurveyRepo struct {
	db *gorm.DB
}

// NewSurveyRepo создает новый репозиторий опросов
func NewSurveyRepo(db *gorm.DB) *SurveyRepo {
	return &SurveyRepo{db: db}
}

// Create создает опрос и его переводы в одной транзакции
func (r *SurveyRepo) Create(ctx context.Context, survey *entity.Survey) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(survey).Error; err != nil {
			return err
		}
		if len(survey.Translations) == 0 {
			return nil
		}
		for i := range survey.Translations {
			survey.Translations[i].SurveyID = survey.ID
		}
		return tx.Create(&survey.Translations).Error
	})
	return translateError(err, slugConflictMsg)
}

// GetByID возвращает опрос с переводами
func (r *SurveyRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Survey, error) {
	var survey entity.Survey
	err := r.db.WithContext(ctx).
		Preload("Translations").
		First(&survey, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "")
	}
	return &survey, nil
}

// GetBySlug ищет опрос по slug любого из переводов
func (r *SurveyRepo) GetBySlug(ctx context.Context, slug string) (*entity.Survey, error) {
	var translation entity.SurveyTranslation
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&translation).Error; err != nil {
		return nil, translateError(err, "")
	}
	return r.GetByID(ctx, translation.SurveyID)
}

// List возвращает страницу опросов и общее количество
func (r *SurveyRepo) List(ctx context.Context, filters repository.SurveyFilters, limit, offset int) ([]entity.Survey, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Survey{})
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}
	if filters.OwnerID != nil {
		query = query.Where("owner_id = ?", *filters.OwnerID)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var surveys []entity.Survey
	err := query.
		Preload("Translations").
		Order("start_date_time DESC, id").
		Limit(limit).
		Offset(offset).
		Find(&surveys).Error
	if err != nil {
		return nil, 0, err
	}
	return surveys, total, nil
}

// Update обновляет перечисленные поля опроса
func (r *SurveyRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&entity.Survey{}).Where("id = ?", id).Updates(updates)
	return checkAffected(result, "")
}

// UpsertTranslation создает или заменяет перевод опроса для одной локали
func (r *SurveyRepo) UpsertTranslation(ctx context.Context, translation *entity.SurveyTranslation) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "survey_id"}, {Name: "language_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "slug", "description"}),
	}).Create(translation).Error
	return translateError(err, slugConflictMsg)
}

// Delete удаляет опрос; вопросы, результаты и связи удаляются каскадно
func (r *SurveyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Survey{}, "id = ?", id)
	return checkAffected(result, "")
}

// SurveyAdminRepo реализует repository.SurveyAdminRepository
type SurveyAdminRepo struct {
	db *gorm.DB
}

// NewSurveyAdminRepo создает новый репозиторий администраторов опросов
func NewSurveyAdminRepo(db *gorm.DB) *SurveyAdminRepo {
	return &SurveyAdminRepo{db: db}
}

// Create назначает пользователя администратором опроса
func (r *SurveyAdminRepo) Create(ctx context.Context, admin *entity.SurveyAdmin) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(admin).Error
	return translateError(err, "user is already an admin of this survey")
}

// ListBySurvey возвращает администраторов опроса вместе с пользователями
func (r *SurveyAdminRepo) ListBySurvey(ctx context.Context, surveyID uuid.UUID) ([]entity.SurveyAdmin, error) {
	var admins []entity.SurveyAdmin
	err := r.db.WithContext(ctx).
		Preload("Admin").
		Where("survey_id = ?", surveyID).
		Order("created_at, id").
		Find(&admins).Error
	return admins, err
}

// IsAdmin проверяет, является ли пользователь администратором опроса
func (r *SurveyAdminRepo) IsAdmin(ctx context.Context, surveyID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.SurveyAdmin{}).
		Where("survey_id = ? AND admin_id = ?", surveyID, userID).
		Count(&count).Error
	return count > 0, err
}

// Delete снимает с пользователя права администратора опроса
func (r *SurveyAdminRepo) Delete(ctx context.Context, surveyID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("survey_id = ? AND admin_id = ?", surveyID, userID).
		Delete(&entity.SurveyAdmin{})
	return checkAffected(result, "")
}
