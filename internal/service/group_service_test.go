package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

func TestSurveyGroupService_CreateGroup(t *testing.T) {
	ctx := context.Background()
	super := Actor{UserID: uuid.New(), IsSuperuser: true}

	t.Run("активна по умолчанию", func(t *testing.T) {
		repo := new(MockSurveyGroupRepo)
		svc := NewSurveyGroupService(repo)
		repo.On("Create", ctx, mock.MatchedBy(func(g *entity.SurveyGroup) bool {
			return g.Name == "Onboarding" && g.IsActive
		})).Return(nil)

		group, err := svc.CreateGroup(ctx, super, "  Onboarding ", nil)

		require.NoError(t, err)
		assert.True(t, group.IsActive)
		repo.AssertExpectations(t)
	})

	t.Run("неактивная", func(t *testing.T) {
		repo := new(MockSurveyGroupRepo)
		svc := NewSurveyGroupService(repo)
		repo.On("Create", ctx, mock.Anything).Return(nil)
		inactive := false

		group, err := svc.CreateGroup(ctx, super, "Archive", &inactive)

		require.NoError(t, err)
		assert.False(t, group.IsActive)
	})

	t.Run("слишком длинное название", func(t *testing.T) {
		svc := NewSurveyGroupService(new(MockSurveyGroupRepo))
		_, err := svc.CreateGroup(ctx, super, strings.Repeat("x", 161), nil)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("обычный пользователь", func(t *testing.T) {
		repo := new(MockSurveyGroupRepo)
		svc := NewSurveyGroupService(repo)
		_, err := svc.CreateGroup(ctx, Actor{UserID: uuid.New()}, "Group", nil)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestSurveyGroupService_UpdateGroup(t *testing.T) {
	ctx := context.Background()
	super := Actor{UserID: uuid.New(), IsSuperuser: true}
	id := uuid.New()
	repo := new(MockSurveyGroupRepo)
	svc := NewSurveyGroupService(repo)
	name := "Renamed"
	active := false
	repo.On("Update", ctx, id, map[string]interface{}{"name": "Renamed", "is_active": false}).Return(nil)
	repo.On("GetByID", ctx, id).Return(&entity.SurveyGroup{Model: entity.Model{ID: id}, Name: name}, nil)

	group, err := svc.UpdateGroup(ctx, super, id, UpdateGroupInput{Name: &name, IsActive: &active})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", group.Name)
	repo.AssertExpectations(t)
}

func TestSurveyGroupService_SetGroupSurveys(t *testing.T) {
	ctx := context.Background()
	super := Actor{UserID: uuid.New(), IsSuperuser: true}
	id := uuid.New()
	surveyIDs := []uuid.UUID{uuid.New()}

	t.Run("замена состава", func(t *testing.T) {
		repo := new(MockSurveyGroupRepo)
		svc := NewSurveyGroupService(repo)
		repo.On("ReplaceSurveys", ctx, id, surveyIDs).Return(nil)
		repo.On("GetByID", ctx, id).Return(&entity.SurveyGroup{Model: entity.Model{ID: id}}, nil)

		_, err := svc.SetGroupSurveys(ctx, super, id, surveyIDs)
		require.NoError(t, err)
	})

	t.Run("несуществующий опрос", func(t *testing.T) {
		repo := new(MockSurveyGroupRepo)
		svc := NewSurveyGroupService(repo)
		repo.On("ReplaceSurveys", ctx, id, surveyIDs).Return(apperrors.ErrNotFound)

		_, err := svc.SetGroupSurveys(ctx, super, id, surveyIDs)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
