package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireJSON отклоняет изменяющие запросы с телом не в application/json.
// Простые cross-site формы (text/plain, form-urlencoded) так не доходят до обработчиков.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isSafeMethod(c.Request.Method) || c.Request.ContentLength == 0 {
			c.Next()
			return
		}
		if c.ContentType() != gin.MIMEJSON {
			c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{
				"error":      "Content-Type must be application/json",
				"error_type": "unsupported_media_type",
			})
			return
		}
		c.Next()
	}
}
