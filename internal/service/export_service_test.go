package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

func TestExportService_ResultsTable(t *testing.T) {
	ctx := context.Background()
	owner := Actor{UserID: uuid.New()}
	survey := newSurvey(&owner.UserID, true)
	q1 := newQuestion(survey.ID)
	q2 := newQuestion(survey.ID)
	q2.Translations = []entity.QuestionTranslation{
		{LanguageCode: "en", Question: "Second"},
		{LanguageCode: "ru", Question: "Второй"},
	}
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	result := entity.Result{
		ID:        uuid.New(),
		SurveyID:  survey.ID,
		UserID:    uuid.New(),
		Timestamp: ts,
		User:      &entity.User{Username: "alice"},
		Answers:   []entity.Answer{{QuestionID: q2.ID, Text: "only second"}},
	}

	t.Run("таблица результатов", func(t *testing.T) {
		surveys := new(MockSurveyRepo)
		questions := new(MockQuestionRepo)
		results := new(MockResultRepo)
		svc := NewExportService(surveys, new(MockSurveyAdminRepo), questions, results, "en")
		surveys.On("GetByID", ctx, survey.ID).Return(survey, nil)
		questions.On("ListBySurvey", ctx, survey.ID).Return([]entity.Question{q1, q2}, nil)
		results.On("List", ctx, repository.ResultFilters{SurveyID: &survey.ID, WithUser: true}).Return([]entity.Result{result}, nil)

		table, err := svc.ResultsTable(ctx, owner, survey.ID, "ru")

		require.NoError(t, err)
		assert.Equal(t, "Survey", table.SurveyName)
		assert.Equal(t, []string{"Result ID", "User", "Timestamp", "Q", "Второй"}, table.Headers)
		require.Len(t, table.Rows, 1)
		assert.Equal(t, []string{result.ID.String(), "alice", "2024-05-01T12:00:00Z", "", "only second"}, table.Rows[0])
	})

	t.Run("нет прав", func(t *testing.T) {
		surveys := new(MockSurveyRepo)
		admins := new(MockSurveyAdminRepo)
		svc := NewExportService(surveys, admins, new(MockQuestionRepo), new(MockResultRepo), "en")
		stranger := Actor{UserID: uuid.New()}
		surveys.On("GetByID", ctx, survey.ID).Return(survey, nil)
		admins.On("IsAdmin", ctx, survey.ID, stranger.UserID).Return(false, nil)

		_, err := svc.ResultsTable(ctx, stranger, survey.ID, "en")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}
