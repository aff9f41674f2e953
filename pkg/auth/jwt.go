package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
)

func init() {
	// Момент выхода сравнивается с iat, секундной точности для этого мало
	jwt.TimePrecision = time.Millisecond
}

// Ошибки проверки токена
var (
	ErrTokenMalformed   = errors.New("token is malformed")
	ErrTokenExpired     = errors.New("token is expired")
	ErrTokenInvalid     = errors.New("invalid token")
	ErrTokenInvalidated = errors.New("token has been invalidated")
)

// JWTCustomClaims содержит пользовательские поля для токена
type JWTCustomClaims struct {
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	IsSuperuser bool      `json:"is_superuser"`
	// CSRFSecret сверяется с cookie CSRFSecretCookie при запросах с cookie-аутентификацией
	CSRFSecret string `json:"csrf,omitempty"`
	jwt.RegisteredClaims
}

// JWTService выпускает и проверяет access-токены с подписью HS256
type JWTService struct {
	secret           []byte
	expiration       time.Duration
	invalidTokenRepo repository.InvalidTokenRepository
	now              func() time.Time
}

// NewJWTService создает новый сервис JWT
func NewJWTService(secret string, expirationHrs int, invalidTokenRepo repository.InvalidTokenRepository) (*JWTService, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret is required for JWTService")
	}
	if invalidTokenRepo == nil {
		return nil, fmt.Errorf("InvalidTokenRepository is required for JWTService")
	}
	if expirationHrs <= 0 {
		expirationHrs = 24
	}
	return &JWTService{
		secret:           []byte(secret),
		expiration:       time.Duration(expirationHrs) * time.Hour,
		invalidTokenRepo: invalidTokenRepo,
		now:              time.Now,
	}, nil
}

// Expiration возвращает время жизни токена
func (s *JWTService) Expiration() time.Duration {
	return s.expiration
}

// IssuedToken - выпущенный access-токен и связанный с ним CSRF-секрет
type IssuedToken struct {
	AccessToken string
	CSRFSecret  string
}

// CSRFToken возвращает значение для заголовка X-CSRF-Token
func (t *IssuedToken) CSRFToken() string {
	return HashCSRFSecret(t.CSRFSecret)
}

// GenerateToken создает новый JWT токен для пользователя
func (s *JWTService) GenerateToken(user *entity.User) (string, error) {
	issued, err := s.IssueToken(user)
	if err != nil {
		return "", err
	}
	return issued.AccessToken, nil
}

// IssueToken создает JWT токен со свежим CSRF-секретом
func (s *JWTService) IssueToken(user *entity.User) (*IssuedToken, error) {
	csrfSecret, err := GenerateCSRFSecret()
	if err != nil {
		return nil, err
	}

	now := s.now()
	claims := &JWTCustomClaims{
		UserID:      user.ID,
		Username:    user.Username,
		IsSuperuser: user.IsSuperuser,
		CSRFSecret:  csrfSecret,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		log.Printf("[JWT] Ошибка генерации токена для пользователя ID=%s: %v", user.ID, err)
		return nil, err
	}
	return &IssuedToken{AccessToken: tokenString, CSRFSecret: csrfSecret}, nil
}

// ParseToken проверяет подпись и срок действия токена, а также то,
// что пользователь не выходил из системы после его выдачи.
func (s *JWTService) ParseToken(ctx context.Context, tokenString string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) {
			switch {
			case ve.Errors&jwt.ValidationErrorMalformed != 0:
				return nil, ErrTokenMalformed
			case ve.Errors&jwt.ValidationErrorExpired != 0:
				return nil, ErrTokenExpired
			}
		}
		log.Printf("[JWT] Ошибка при разборе токена: %v", err)
		return nil, ErrTokenInvalid
	}
	if !token.Valid || claims.UserID == uuid.Nil || claims.IssuedAt == nil {
		return nil, ErrTokenInvalid
	}

	invalid, err := s.invalidTokenRepo.IsTokenInvalid(ctx, claims.UserID, claims.IssuedAt.Time)
	if err != nil {
		return nil, fmt.Errorf("failed to check token invalidation: %w", err)
	}
	if invalid {
		return nil, ErrTokenInvalidated
	}
	return claims, nil
}

// InvalidateTokensForUser делает недействительными все ранее выданные токены пользователя
func (s *JWTService) InvalidateTokensForUser(ctx context.Context, userID uuid.UUID) error {
	invalidationTime := s.now().Truncate(jwt.TimePrecision)
	if err := s.invalidTokenRepo.AddInvalidToken(ctx, userID, invalidationTime); err != nil {
		return fmt.Errorf("failed to invalidate tokens: %w", err)
	}
	log.Printf("[JWT] Токены пользователя ID=%s инвалидированы на момент %v", userID, invalidationTime)
	return nil
}
