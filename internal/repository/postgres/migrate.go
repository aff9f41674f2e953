package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// Models перечисляет все сущности, хранимые в реляционной базе, в порядке зависимостей
func Models() []interface{} {
	return []interface{}{
		&entity.User{},
		&entity.InvalidToken{},
		&entity.Survey{},
		&entity.SurveyTranslation{},
		&entity.SurveyAdmin{},
		&entity.Question{},
		&entity.QuestionTranslation{},
		&entity.Choice{},
		&entity.ChoiceTranslation{},
		&entity.Result{},
		&entity.Answer{},
		&entity.SurveyGroup{},
		&entity.Profile{},
	}
}

// AutoMigrate создает схему средствами GORM.
// В production схему ведут SQL-миграции golang-migrate, AutoMigrate используется для SQLite в тестах.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
