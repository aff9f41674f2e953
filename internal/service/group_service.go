package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
)

// SurveyGroupService управляет группами опросов. Изменения доступны только суперпользователям.
type SurveyGroupService struct {
	groupRepo repository.SurveyGroupRepository
}

// NewSurveyGroupService создает сервис групп опросов
func NewSurveyGroupService(groupRepo repository.SurveyGroupRepository) *SurveyGroupService {
	return &SurveyGroupService{groupRepo: groupRepo}
}

// UpdateGroupInput содержит изменяемые поля группы
type UpdateGroupInput struct {
	Name     *string
	IsActive *bool
}

// CreateGroup создает группу
func (s *SurveyGroupService) CreateGroup(ctx context.Context, actor Actor, name string, isActive *bool) (*entity.SurveyGroup, error) {
	if !actor.IsSuperuser {
		return nil, forbiddenError("only superusers can manage survey groups")
	}
	name, err := groupName(name)
	if err != nil {
		return nil, err
	}
	group := &entity.SurveyGroup{Name: name, IsActive: true}
	if isActive != nil {
		group.IsActive = *isActive
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create survey group: %w", err)
	}
	return group, nil
}

// ListGroups возвращает все группы
func (s *SurveyGroupService) ListGroups(ctx context.Context) ([]entity.SurveyGroup, error) {
	return s.groupRepo.List(ctx)
}

// GetGroup возвращает группу с опросами
func (s *SurveyGroupService) GetGroup(ctx context.Context, id uuid.UUID) (*entity.SurveyGroup, error) {
	return s.groupRepo.GetByID(ctx, id)
}

// UpdateGroup обновляет название и активность группы
func (s *SurveyGroupService) UpdateGroup(ctx context.Context, actor Actor, id uuid.UUID, input UpdateGroupInput) (*entity.SurveyGroup, error) {
	if !actor.IsSuperuser {
		return nil, forbiddenError("only superusers can manage survey groups")
	}
	updates := map[string]interface{}{}
	if input.Name != nil {
		name, err := groupName(*input.Name)
		if err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) > 0 {
		if err := s.groupRepo.Update(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("failed to update survey group: %w", err)
		}
	}
	return s.groupRepo.GetByID(ctx, id)
}

// SetGroupSurveys заменяет состав группы
func (s *SurveyGroupService) SetGroupSurveys(ctx context.Context, actor Actor, id uuid.UUID, surveyIDs []uuid.UUID) (*entity.SurveyGroup, error) {
	if !actor.IsSuperuser {
		return nil, forbiddenError("only superusers can manage survey groups")
	}
	if err := s.groupRepo.ReplaceSurveys(ctx, id, surveyIDs); err != nil {
		return nil, fmt.Errorf("failed to set group surveys: %w", err)
	}
	return s.groupRepo.GetByID(ctx, id)
}

// DeleteGroup удаляет группу
func (s *SurveyGroupService) DeleteGroup(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.IsSuperuser {
		return forbiddenError("only superusers can manage survey groups")
	}
	return s.groupRepo.Delete(ctx, id)
}

func groupName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > 160 {
		return "", validationError("name must be between 1 and 160 characters")
	}
	return name, nil
}
