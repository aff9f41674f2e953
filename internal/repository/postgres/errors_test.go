package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"not found", gorm.ErrRecordNotFound, apperrors.ErrNotFound},
		{"gorm duplicate", gorm.ErrDuplicatedKey, apperrors.ErrConflict},
		{"pgx unique", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), apperrors.ErrConflict},
		{"pq unique", &pq.Error{Code: "23505"}, apperrors.ErrConflict},
		{"gorm fk", gorm.ErrForeignKeyViolated, apperrors.ErrNotFound},
		{"pgx fk", &pgconn.PgError{Code: "23503"}, apperrors.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.err, "dup")
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}

	other := errors.New("boom")
	assert.Equal(t, other, translateError(other, "dup"))
}
