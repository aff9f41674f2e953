package dto

import (
	"github.com/google/uuid"

	"github.com/yourusername/assessment-api/internal/domain/entity"
)

// RegisterRequest представляет запрос на регистрацию
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,max=150"`
	Email     string `json:"email" binding:"required,email,max=254"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	FirstName string `json:"first_name" binding:"omitempty,max=150"`
	LastName  string `json:"last_name" binding:"omitempty,max=150"`
}

// LoginRequest представляет запрос на вход
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse - публичное представление пользователя
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	IsSuperuser bool      `json:"is_superuser"`
}

// AuthResponse возвращается после успешного входа
type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	// CSRFToken передается в заголовке X-CSRF-Token при cookie-аутентификации
	CSRFToken string `json:"csrf_token"`
}

// NewUserResponse создает DTO пользователя
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		IsSuperuser: u.IsSuperuser,
	}
}
