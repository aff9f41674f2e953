package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
)

// ProfileService отвечает за назначение опросов пользователям
type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

// NewProfileService создает сервис профилей
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, userRepo: userRepo}
}

// GetProfile возвращает профиль пользователя, создавая его при первом обращении
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	profile, err := s.profileRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// AssignedSurveys возвращает активные опросы, назначенные пользователю напрямую или через группы
func (s *ProfileService) AssignedSurveys(ctx context.Context, userID uuid.UUID) ([]entity.Survey, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return profile.AssignedSurveys(), nil
}

// SetAssignments заменяет опросы и группы, назначенные пользователю
func (s *ProfileService) SetAssignments(ctx context.Context, actor Actor, userID uuid.UUID, surveyIDs, groupIDs []uuid.UUID) (*entity.Profile, error) {
	if !actor.IsSuperuser {
		return nil, forbiddenError("only superusers can assign surveys")
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.profileRepo.ReplaceAssignments(ctx, userID, surveyIDs, groupIDs); err != nil {
		return nil, fmt.Errorf("failed to assign surveys: %w", err)
	}
	return s.GetProfile(ctx, userID)
}
