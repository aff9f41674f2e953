package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyCSRF(t *testing.T) {
	secret, err := GenerateCSRFSecret()
	require.NoError(t, err)
	assert.Len(t, secret, 32)

	assert.True(t, VerifyCSRF(HashCSRFSecret(secret), secret, secret))
	assert.False(t, VerifyCSRF(secret, secret, secret), "в заголовке ожидается хеш, а не сам секрет")
	assert.False(t, VerifyCSRF(HashCSRFSecret(secret), "other", secret))
	assert.False(t, VerifyCSRF(HashCSRFSecret(""), "", ""))
}

func TestCSRFSecretCookie_Name(t *testing.T) {
	w := httptest.NewRecorder()
	SetCSRFSecretCookie(w, CookieConfig{Secure: true, SameSite: http.SameSiteNoneMode}, "s1", time.Hour)
	SetCSRFSecretCookie(w, CookieConfig{}, "s2", time.Hour)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, CSRFSecretCookie, cookies[0].Name)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, "csrf-secret", cookies[1].Name)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(cookies[1])
	assert.Equal(t, "s2", CSRFSecretFromRequest(req))
}

func TestTokenWithSource(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "from-cookie"})
	token, fromCookie := TokenWithSource(req)
	assert.Equal(t, "from-cookie", token)
	assert.True(t, fromCookie)

	req.Header.Set("Authorization", "Bearer from-header")
	token, fromCookie = TokenWithSource(req)
	assert.Equal(t, "from-header", token)
	assert.False(t, fromCookie)
}
