package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
	"github.com/yourusername/assessment-api/pkg/auth"
)

// AuthService предоставляет методы для регистрации, входа и выхода пользователей
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// RegisterInput содержит данные для регистрации
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	IsSuperuser bool
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for AuthService")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("JWTService is required for AuthService")
	}
	return &AuthService{userRepo: userRepo, jwtService: jwtService}, nil
}

// RegisterUser создает обычного пользователя
func (s *AuthService) RegisterUser(ctx context.Context, input RegisterInput) (*entity.User, error) {
	input.IsSuperuser = false
	return s.createUser(ctx, input)
}

// CreateSuperuser создает пользователя с правами суперпользователя
func (s *AuthService) CreateSuperuser(ctx context.Context, input RegisterInput) (*entity.User, error) {
	input.IsSuperuser = true
	return s.createUser(ctx, input)
}

func (s *AuthService) createUser(ctx context.Context, input RegisterInput) (*entity.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = normalizeEmail(input.Email)

	if input.Username == "" || len(input.Username) > 150 {
		return nil, validationError("username must be between 1 and 150 characters")
	}
	if !strings.Contains(input.Email, "@") {
		return nil, validationError("invalid email")
	}
	if len(input.Password) < 8 || len(input.Password) > entity.MaxPasswordLength {
		return nil, validationError("password must be between 8 and %d characters", entity.MaxPasswordLength)
	}

	user := &entity.User{
		Username:    input.Username,
		Email:       input.Email,
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		IsSuperuser: input.IsSuperuser,
	}
	if err := user.SetPassword(input.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	log.Printf("[AuthService] Создан пользователь ID=%s username=%s superuser=%t", user.ID, user.Username, user.IsSuperuser)
	return user, nil
}

// LoginUser проверяет учетные данные и выпускает токен с CSRF-секретом
func (s *AuthService) LoginUser(ctx context.Context, username, password string) (*entity.User, *auth.IssuedToken, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !user.CheckPassword(password) {
		return nil, nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	token, err := s.jwtService.IssueToken(user)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// LogoutUser делает недействительными все выданные пользователю токены
func (s *AuthService) LogoutUser(ctx context.Context, userID uuid.UUID) error {
	return s.jwtService.InvalidateTokensForUser(ctx, userID)
}

// GetUserByID возвращает пользователя по ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
