package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	// CSRFHeader - заголовок, в котором клиент передает хеш CSRF-секрета
	CSRFHeader = "X-CSRF-Token"
	// CSRFSecretCookie - HttpOnly cookie с CSRF-секретом. Префикс __Host- требует Secure,
	// поэтому без HTTPS cookie ставится без него.
	CSRFSecretCookie = "__Host-csrf-secret"
)

// GenerateCSRFSecret возвращает случайный секрет в hex
func GenerateCSRFSecret() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate csrf secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashCSRFSecret хеширует CSRF секрет с использованием SHA-256
func HashCSRFSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// VerifyCSRF сверяет секрет из cookie с секретом из токена и хеш из заголовка
func VerifyCSRF(headerToken, cookieSecret, tokenSecret string) bool {
	if headerToken == "" || cookieSecret == "" || tokenSecret == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(cookieSecret), []byte(tokenSecret)) != 1 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(headerToken), []byte(HashCSRFSecret(tokenSecret))) == 1
}

func csrfCookieName(cfg CookieConfig) string {
	if !cfg.Secure {
		return strings.TrimPrefix(CSRFSecretCookie, "__Host-")
	}
	return CSRFSecretCookie
}

// SetCSRFSecretCookie устанавливает CSRF-секрет в HttpOnly куку
func SetCSRFSecretCookie(w http.ResponseWriter, cfg CookieConfig, secret string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName(cfg),
		Value:    secret,
		Path:     "/", // __Host- требует Path=/ и пустой Domain
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: cfg.SameSite,
		MaxAge:   int(maxAge.Seconds()),
	})
}

// ClearCSRFSecretCookie удаляет cookie с CSRF-секретом
func ClearCSRFSecretCookie(w http.ResponseWriter, cfg CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName(cfg),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: cfg.SameSite,
		MaxAge:   -1,
	})
}

// CSRFSecretFromRequest читает CSRF-секрет из cookie с префиксом __Host- или без него
func CSRFSecretFromRequest(r *http.Request) string {
	for _, name := range []string{CSRFSecretCookie, strings.TrimPrefix(CSRFSecretCookie, "__Host-")} {
		if cookie, err := r.Cookie(name); err == nil && cookie.Value != "" {
			return cookie.Value
		}
	}
	return ""
}
