package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// Actor описывает аутентифицированного пользователя, от имени которого выполняется операция
type Actor struct {
	UserID      uuid.UUID
	IsSuperuser bool
}

// surveyAccess проверяет права на опрос и все вложенные в него сущности
type surveyAccess struct {
	surveyRepo repository.SurveyRepository
	adminRepo  repository.SurveyAdminRepository
}

// canManage: суперпользователь, владелец опроса или его администратор
func (a *surveyAccess) canManage(ctx context.Context, actor Actor, survey *entity.Survey) (bool, error) {
	if actor.IsSuperuser || survey.IsOwnedBy(actor.UserID) {
		return true, nil
	}
	ok, err := a.adminRepo.IsAdmin(ctx, survey.ID, actor.UserID)
	if err != nil {
		return false, fmt.Errorf("failed to check survey admin: %w", err)
	}
	return ok, nil
}

// manageable загружает опрос и требует права на управление им
func (a *surveyAccess) manageable(ctx context.Context, actor Actor, surveyID uuid.UUID) (*entity.Survey, error) {
	survey, err := a.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	ok, err := a.canManage(ctx, actor, survey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, forbiddenError("only the owner or an admin of the survey can modify it")
	}
	return survey, nil
}

// visible загружает опрос для чтения. Неактивные опросы видны только тем, кто ими управляет.
func (a *surveyAccess) visible(ctx context.Context, actor Actor, surveyID uuid.UUID) (*entity.Survey, error) {
	survey, err := a.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if err := a.checkVisible(ctx, actor, survey); err != nil {
		return nil, err
	}
	return survey, nil
}

func (a *surveyAccess) checkVisible(ctx context.Context, actor Actor, survey *entity.Survey) error {
	if survey.IsActive {
		return nil
	}
	ok, err := a.canManage(ctx, actor, survey)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrNotFound
	}
	return nil
}
