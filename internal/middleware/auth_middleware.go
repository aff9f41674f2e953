package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/assessment-api/pkg/auth"
)

// Ключи контекста Gin, которые заполняет RequireAuth
const (
	ContextUserID      = "user_id"
	ContextUsername    = "username"
	ContextIsSuperuser = "is_superuser"
	// ContextTokenFromCookie: токен пришел в cookie, а не в заголовке Authorization
	ContextTokenFromCookie = "token_from_cookie"
	contextCSRFSecret      = "csrf_secret"
)

// AuthMiddleware обеспечивает аутентификацию для защищенных маршрутов
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware создает новый middleware аутентификации
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// RequireAuth проверяет access-токен из заголовка Authorization или cookie
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, fromCookie := auth.TokenWithSource(c.Request)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "token_missing"})
			return
		}

		claims, err := m.jwtService.ParseToken(c.Request.Context(), token)
		if err != nil {
			errorType := "token_invalid"
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				errorType = "token_expired"
			case errors.Is(err, auth.ErrTokenInvalidated):
				errorType = "token_invalidated"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "error_type": errorType})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextIsSuperuser, claims.IsSuperuser)
		c.Set(ContextTokenFromCookie, fromCookie)
		c.Set(contextCSRFSecret, claims.CSRFSecret)
		c.Next()
	}
}

// RequireCSRF проверяет Double Submit Cookie для изменяющих запросов с cookie-аутентификацией:
// заголовок X-CSRF-Token должен совпадать с хешем секрета, а секрет в cookie с секретом в JWT.
// Запросы с Authorization: Bearer не проверяются. Применяется после RequireAuth.
func (m *AuthMiddleware) RequireCSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isSafeMethod(c.Request.Method) || !c.GetBool(ContextTokenFromCookie) {
			c.Next()
			return
		}

		header := c.GetHeader(auth.CSRFHeader)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "CSRF token missing from header", "error_type": "csrf_token_missing"})
			return
		}
		if !auth.VerifyCSRF(header, auth.CSRFSecretFromRequest(c.Request), c.GetString(contextCSRFSecret)) {
			userID, _ := UserIDFromContext(c)
			log.Printf("[CSRF Middleware] Invalid CSRF token for user %s, path %s", userID, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid CSRF token", "error_type": "csrf_token_invalid"})
			return
		}
		c.Next()
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

// SuperuserOnly пропускает только суперпользователей. Применяется после RequireAuth.
func (m *AuthMiddleware) SuperuserOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserIDFromContext(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !IsSuperuser(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Superuser rights required"})
			return
		}
		c.Next()
	}
}

// UserIDFromContext возвращает ID аутентифицированного пользователя
func UserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// IsSuperuser сообщает, есть ли у пользователя права суперпользователя
func IsSuperuser(c *gin.Context) bool {
	return c.GetBool(ContextIsSuperuser)
}
