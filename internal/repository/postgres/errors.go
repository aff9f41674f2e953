package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError приводит ошибки GORM к ошибкам приложения.
// Основной путь требует gorm.Config{TranslateError: true}; коды драйвера проверяются как запасной вариант.
func translateError(err error, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), pgErrorCode(err) == pgUniqueViolation:
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, conflictMsg)
	case errors.Is(err, gorm.ErrForeignKeyViolated), pgErrorCode(err) == pgForeignKeyViolation:
		return fmt.Errorf("%w: referenced record does not exist", apperrors.ErrNotFound)
	default:
		return err
	}
}

// pgErrorCode извлекает SQLSTATE для pgx/v5 и lib/pq драйверов
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// checkAffected возвращает ErrNotFound, если запрос не затронул ни одной строки
func checkAffected(result *gorm.DB, conflictMsg string) error {
	if result.Error != nil {
		return translateError(result.Error, conflictMsg)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
