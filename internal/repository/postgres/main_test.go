package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// newTestDB открывает изолированную in-memory базу SQLite со включенными внешними ключами
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, superuser bool) *entity.User {
	t.Helper()
	user := &entity.User{
		Username:    username,
		Email:       username + "@example.com",
		IsSuperuser: superuser,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, NewUserRepo(db).Create(context.Background(), user))
	return user
}

func createTestSurvey(t *testing.T, db *gorm.DB, slug string, owner *entity.User) *entity.Survey {
	t.Helper()
	survey := &entity.Survey{
		IsActive:      true,
		StartDateTime: time.Now().Add(-time.Hour),
		Translations: []entity.SurveyTranslation{
			{LanguageCode: "en", Name: "Survey " + slug, Slug: slug},
		},
	}
	if owner != nil {
		survey.OwnerID = &owner.ID
	}
	require.NoError(t, NewSurveyRepo(db).Create(context.Background(), survey))
	return survey
}

func createTestQuestion(t *testing.T, db *gorm.DB, survey *entity.Survey, text string) *entity.Question {
	t.Helper()
	question := &entity.Question{
		SurveyID: survey.ID,
		OfType:   entity.QuestionTypeText,
		Translations: []entity.QuestionTranslation{
			{LanguageCode: "en", Question: text},
		},
	}
	require.NoError(t, NewQuestionRepo(db).Create(context.Background(), question))
	return question
}
