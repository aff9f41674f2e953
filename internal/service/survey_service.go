package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
	"github.com/yourusername/assessment-api/pkg/locale"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	surveySlugCachePrefix = "survey:slug:"
)

// SurveyService управляет опросами, их переводами и администраторами
type SurveyService struct {
	access       *surveyAccess
	surveyRepo   repository.SurveyRepository
	adminRepo    repository.SurveyAdminRepository
	userRepo     repository.UserRepository
	cacheRepo    repository.CacheRepository
	emailService EmailService
	locales      *locale.Resolver
	cacheTTL     time.Duration
	now          func() time.Time
}

// NewSurveyService создает сервис опросов. cacheRepo может быть nil, тогда кеш не используется.
func NewSurveyService(
	surveyRepo repository.SurveyRepository,
	adminRepo repository.SurveyAdminRepository,
	userRepo repository.UserRepository,
	cacheRepo repository.CacheRepository,
	emailService EmailService,
	locales *locale.Resolver,
	cacheTTL time.Duration,
) *SurveyService {
	if emailService == nil {
		emailService = &NoopEmailService{}
	}
	return &SurveyService{
		access:       &surveyAccess{surveyRepo: surveyRepo, adminRepo: adminRepo},
		surveyRepo:   surveyRepo,
		adminRepo:    adminRepo,
		userRepo:     userRepo,
		cacheRepo:    cacheRepo,
		emailService: emailService,
		locales:      locales,
		cacheTTL:     cacheTTL,
		now:          time.Now,
	}
}

// TranslationInput содержит переводимые поля опроса для одной локали
type TranslationInput struct {
	Name        string
	Slug        string
	Description string
}

// CreateSurveyInput содержит данные для создания опроса
type CreateSurveyInput struct {
	Language      string
	Translation   TranslationInput
	IsActive      *bool
	StartDateTime *time.Time
	EndDateTime   *time.Time
}

// UpdateSurveyInput содержит изменяемые поля опроса. nil означает "не менять".
type UpdateSurveyInput struct {
	IsActive      *bool
	StartDateTime *time.Time
	EndDateTime   *time.Time
	// ClearEndDateTime снимает ограничение по дате окончания
	ClearEndDateTime bool
}

// ListSurveysInput содержит параметры списка опросов
type ListSurveysInput struct {
	IsActive *bool
	Mine     bool
	Page     int
	PageSize int
}

// CreateSurvey создает опрос; владельцем становится actor
func (s *SurveyService) CreateSurvey(ctx context.Context, actor Actor, input CreateSurveyInput) (*entity.Survey, error) {
	translation, err := s.buildTranslation(input.Language, input.Translation)
	if err != nil {
		return nil, err
	}

	survey := &entity.Survey{
		IsActive:      true,
		StartDateTime: s.now(),
		EndDateTime:   input.EndDateTime,
		OwnerID:       &actor.UserID,
		Translations:  []entity.SurveyTranslation{translation},
	}
	if input.IsActive != nil {
		survey.IsActive = *input.IsActive
	}
	if input.StartDateTime != nil {
		survey.StartDateTime = *input.StartDateTime
	}
	if err := validateWindow(survey.StartDateTime, survey.EndDateTime); err != nil {
		return nil, err
	}

	if err := s.surveyRepo.Create(ctx, survey); err != nil {
		return nil, fmt.Errorf("failed to create survey: %w", err)
	}
	log.Printf("[SurveyService] Создан опрос ID=%s slug=%s владелец=%s", survey.ID, translation.Slug, actor.UserID)
	return survey, nil
}

// GetSurvey возвращает опрос по ID
func (s *SurveyService) GetSurvey(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Survey, error) {
	return s.access.visible(ctx, actor, id)
}

// GetSurveyBySlug возвращает опрос по slug, используя кеш при наличии
func (s *SurveyService) GetSurveyBySlug(ctx context.Context, actor Actor, slug string) (*entity.Survey, error) {
	survey, err := s.cachedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.access.checkVisible(ctx, actor, survey); err != nil {
		return nil, err
	}
	return survey, nil
}

func (s *SurveyService) cachedBySlug(ctx context.Context, slug string) (*entity.Survey, error) {
	if s.cacheRepo != nil {
		var cached entity.Survey
		err := s.cacheRepo.GetJSON(ctx, surveySlugCachePrefix+slug, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[SurveyService] Ошибка чтения кеша для slug=%s: %v", slug, err)
		}
	}

	survey, err := s.surveyRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if s.cacheRepo != nil && s.cacheTTL > 0 {
		if err := s.cacheRepo.SetJSON(ctx, surveySlugCachePrefix+slug, survey, s.cacheTTL); err != nil {
			log.Printf("[SurveyService] Ошибка записи кеша для slug=%s: %v", slug, err)
		}
	}
	return survey, nil
}

// ListSurveys возвращает страницу опросов. Не суперпользователи видят только активные.
func (s *SurveyService) ListSurveys(ctx context.Context, actor Actor, input ListSurveysInput) ([]entity.Survey, int64, error) {
	filters := repository.SurveyFilters{IsActive: input.IsActive}
	if input.Mine {
		filters.OwnerID = &actor.UserID
	} else if !actor.IsSuperuser {
		active := true
		filters.IsActive = &active
	}

	limit, offset := paginate(input.Page, input.PageSize)
	surveys, total, err := s.surveyRepo.List(ctx, filters, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list surveys: %w", err)
	}
	return surveys, total, nil
}

// UpdateSurvey обновляет активность и окно проведения опроса
func (s *SurveyService) UpdateSurvey(ctx context.Context, actor Actor, id uuid.UUID, input UpdateSurveyInput) (*entity.Survey, error) {
	survey, err := s.access.manageable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	start, end := survey.StartDateTime, survey.EndDateTime
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if input.StartDateTime != nil {
		start = *input.StartDateTime
		updates["start_date_time"] = start
	}
	if input.ClearEndDateTime {
		end = nil
		updates["end_date_time"] = nil
	} else if input.EndDateTime != nil {
		end = input.EndDateTime
		updates["end_date_time"] = *end
	}
	if len(updates) == 0 {
		return survey, nil
	}
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}

	if err := s.surveyRepo.Update(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("failed to update survey: %w", err)
	}
	s.invalidateSlugs(ctx, survey)
	return s.surveyRepo.GetByID(ctx, id)
}

// UpsertTranslation создает или заменяет перевод опроса для локали lang
func (s *SurveyService) UpsertTranslation(ctx context.Context, actor Actor, id uuid.UUID, lang string, input TranslationInput) (*entity.Survey, error) {
	survey, err := s.access.manageable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	translation, err := s.buildTranslation(lang, input)
	if err != nil {
		return nil, err
	}
	translation.SurveyID = id

	if err := s.surveyRepo.UpsertTranslation(ctx, &translation); err != nil {
		return nil, fmt.Errorf("failed to save survey translation: %w", err)
	}
	s.invalidateSlugs(ctx, survey)
	return s.surveyRepo.GetByID(ctx, id)
}

// DeleteSurvey удаляет опрос вместе с вопросами и результатами
func (s *SurveyService) DeleteSurvey(ctx context.Context, actor Actor, id uuid.UUID) error {
	survey, err := s.access.manageable(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.surveyRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete survey: %w", err)
	}
	s.invalidateSlugs(ctx, survey)
	log.Printf("[SurveyService] Опрос ID=%s удален пользователем ID=%s", id, actor.UserID)
	return nil
}

// ListAdmins возвращает администраторов опроса
func (s *SurveyService) ListAdmins(ctx context.Context, actor Actor, surveyID uuid.UUID) ([]entity.SurveyAdmin, error) {
	if _, err := s.access.manageable(ctx, actor, surveyID); err != nil {
		return nil, err
	}
	return s.adminRepo.ListBySurvey(ctx, surveyID)
}

// AddAdmin назначает пользователя администратором опроса и уведомляет его по почте
func (s *SurveyService) AddAdmin(ctx context.Context, actor Actor, surveyID, userID uuid.UUID) (*entity.SurveyAdmin, error) {
	survey, err := s.access.manageable(ctx, actor, surveyID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	admin := &entity.SurveyAdmin{AdminID: user.ID, SurveyID: survey.ID}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to add survey admin: %w", err)
	}
	admin.Admin = user

	name := survey.Translation(s.locales.Default(), s.locales.Default()).Name
	if err := s.emailService.SendSurveyAdminInvite(ctx, user.Email, name, admin.ID.String()); err != nil {
		// назначение уже сохранено, письмо не критично
		log.Printf("[SurveyService] Не удалось отправить уведомление админу ID=%s опроса ID=%s: %v", user.ID, survey.ID, err)
	}
	return admin, nil
}

// RemoveAdmin снимает с пользователя права администратора опроса
func (s *SurveyService) RemoveAdmin(ctx context.Context, actor Actor, surveyID, userID uuid.UUID) error {
	if _, err := s.access.manageable(ctx, actor, surveyID); err != nil {
		return err
	}
	return s.adminRepo.Delete(ctx, surveyID, userID)
}

// CanManage сообщает, может ли actor изменять опрос
func (s *SurveyService) CanManage(ctx context.Context, actor Actor, survey *entity.Survey) (bool, error) {
	return s.access.canManage(ctx, actor, survey)
}

func (s *SurveyService) buildTranslation(lang string, input TranslationInput) (entity.SurveyTranslation, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if !s.locales.IsSupported(lang) {
		return entity.SurveyTranslation{}, validationError("unsupported language %q", lang)
	}
	name := strings.TrimSpace(input.Name)
	if name == "" || len([]rune(name)) > 160 {
		return entity.SurveyTranslation{}, validationError("name must be between 1 and 160 characters")
	}
	slug := strings.TrimSpace(input.Slug)
	if len(slug) > 160 || !entity.SlugPattern.MatchString(slug) {
		return entity.SurveyTranslation{}, validationError("slug must consist of letters, numbers, underscores or hyphens")
	}
	return entity.SurveyTranslation{
		LanguageCode: lang,
		Name:         name,
		Slug:         slug,
		Description:  input.Description,
	}, nil
}

func (s *SurveyService) invalidateSlugs(ctx context.Context, survey *entity.Survey) {
	if s.cacheRepo == nil || len(survey.Translations) == 0 {
		return
	}
	keys := make([]string, 0, len(survey.Translations))
	for _, t := range survey.Translations {
		keys = append(keys, surveySlugCachePrefix+t.Slug)
	}
	if err := s.cacheRepo.Delete(ctx, keys...); err != nil {
		log.Printf("[SurveyService] Ошибка инвалидации кеша опроса ID=%s: %v", survey.ID, err)
	}
}

func validateWindow(start time.Time, end *time.Time) error {
	if end != nil && !end.After(start) {
		return validationError("end_date_time must be after start_date_time")
	}
	return nil
}

func paginate(page, pageSize int) (limit, offset int) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page <= 0 {
		page = 1
	}
	return pageSize, (page - 1) * pageSize
}
