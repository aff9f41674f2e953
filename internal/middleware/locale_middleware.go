package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yourusername/assessment-api/pkg/locale"
)

// ContextLocale - ключ контекста с выбранной локалью запроса
const ContextLocale = "locale"

// Locale выбирает локаль по ?lang= или Accept-Language
func Locale(resolver *locale.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextLocale, resolver.Resolve(c.Query("lang"), c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// LocaleFromContext возвращает локаль запроса или fallback, если middleware не применялся
func LocaleFromContext(c *gin.Context, fallback string) string {
	if l := c.GetString(ContextLocale); l != "" {
		return l
	}
	return fallback
}
