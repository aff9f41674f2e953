package auth

import (
	"net/http"
	"strings"
	"time"
)

// AccessTokenCookie - имя cookie с access-токеном
const AccessTokenCookie = "access_token"

// CookieConfig задает атрибуты cookie с токеном
type CookieConfig struct {
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

// SetAccessTokenCookie устанавливает access-токен в HttpOnly куки
func SetAccessTokenCookie(w http.ResponseWriter, cfg CookieConfig, token string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    token,
		Path:     cookiePath(cfg),
		Domain:   cfg.Domain,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: cfg.SameSite,
		MaxAge:   int(maxAge.Seconds()),
	})
}

// ClearAccessTokenCookie удаляет cookie с access-токеном
func ClearAccessTokenCookie(w http.ResponseWriter, cfg CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    "",
		Path:     cookiePath(cfg),
		Domain:   cfg.Domain,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: cfg.SameSite,
		MaxAge:   -1,
	})
}

// TokenFromRequest извлекает токен из заголовка Authorization: Bearer или из cookie
func TokenFromRequest(r *http.Request) string {
	token, _ := TokenWithSource(r)
	return token
}

// TokenWithSource извлекает токен и сообщает, взят ли он из cookie
func TokenWithSource(r *http.Request) (token string, fromCookie bool) {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1]), false
		}
		return "", false
	}
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	return "", false
}

func cookiePath(cfg CookieConfig) string {
	if cfg.Path == "" {
		return "/"
	}
	return cfg.Path
}
