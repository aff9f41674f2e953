package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/assessment-api/internal/handler/dto"
	"github.com/yourusername/assessment-api/internal/service"
	"github.com/yourusername/assessment-api/pkg/auth"
)

// AuthHandler обрабатывает запросы, связанные с аутентификацией
type AuthHandler struct {
	authService *service.AuthService
	jwtService  *auth.JWTService
	cookie      auth.CookieConfig
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(authService *service.AuthService, jwtService *auth.JWTService, cookie auth.CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, jwtService: jwtService, cookie: cookie}
}

// Register обрабатывает запрос на регистрацию
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	user, err := h.authService.RegisterUser(c.Request.Context(), service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	log.Printf("[AuthHandler] Пользователь ID=%s (%s) успешно зарегистрирован", user.ID, user.Username)
	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// Login проверяет учетные данные, выдает токен и ставит HttpOnly cookie с токеном и CSRF-секретом
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	user, token, err := h.authService.LoginUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	expiration := h.jwtService.Expiration()
	auth.SetAccessTokenCookie(c.Writer, h.cookie, token.AccessToken, expiration)
	auth.SetCSRFSecretCookie(c.Writer, h.cookie, token.CSRFSecret, expiration)
	c.JSON(http.StatusOK, dto.AuthResponse{
		User:        dto.NewUserResponse(user),
		AccessToken: token.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(expiration.Seconds()),
		CSRFToken:   token.CSRFToken(),
	})
}

// Logout делает недействительными все токены пользователя и удаляет cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := h.authService.LogoutUser(c.Request.Context(), actor.UserID); err != nil {
		handleError(c, err)
		return
	}
	auth.ClearAccessTokenCookie(c.Writer, h.cookie)
	auth.ClearCSRFSecretCookie(c.Writer, h.cookie)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GetMe возвращает текущего пользователя
func (h *AuthHandler) GetMe(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	user, err := h.authService.GetUserByID(c.Request.Context(), actor.UserID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
