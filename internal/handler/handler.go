package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/middleware"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
	"github.com/yourusername/assessment-api/internal/service"
)

// RegisterValidators добавляет собственные теги валидации в движок gin
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected gin validator engine")
	}
	return v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return entity.SlugPattern.MatchString(fl.Field().String())
	})
}

// handleError преобразует ошибки сервисного слоя в HTTP-ответы
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		log.Printf("ERROR: Internal server error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func bindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data: " + err.Error(), "error_type": "validation_error"})
}

// currentActor собирает Actor из данных, которые положил RequireAuth
func currentActor(c *gin.Context) (service.Actor, bool) {
	id, ok := middleware.UserIDFromContext(c)
	if !ok {
		handleError(c, apperrors.ErrUnauthorized)
		return service.Actor{}, false
	}
	return service.Actor{UserID: id, IsSuperuser: middleware.IsSuperuser(c)}, true
}

// pathUUID читает ID, сохраненный ExtractUUIDParam
func pathUUID(c *gin.Context, key string) uuid.UUID {
	return c.MustGet(key).(uuid.UUID)
}
