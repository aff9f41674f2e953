package service

import (
	"fmt"

	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", apperrors.ErrValidation, fmt.Sprintf(format, args...))
}

func forbiddenError(msg string) error {
	return fmt.Errorf("%w: %s", apperrors.ErrForbidden, msg)
}
