package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/assessment-api/internal/domain/repository"
)

// RateLimitConfig содержит настройки rate limiting
type RateLimitConfig struct {
	// MaxRequests: максимальное количество запросов за Window
	MaxRequests int
	// Window: временное окно для подсчёта запросов
	Window time.Duration
	// KeyPrefix: префикс для ключей счетчиков
	KeyPrefix string
}

// LoginRateLimitConfig ограничивает попытки входа с одного IP (защита от перебора паролей)
func LoginRateLimitConfig(maxPerMinute int) RateLimitConfig {
	return RateLimitConfig{
		MaxRequests: maxPerMinute,
		Window:      time.Minute,
		KeyPrefix:   "rl:auth:login",
	}
}

// RateLimiter считает запросы в счетчиках кеша с TTL окна
type RateLimiter struct {
	counter repository.CacheRepository
}

// NewRateLimiter создает новый RateLimiter
func NewRateLimiter(counter repository.CacheRepository) *RateLimiter {
	return &RateLimiter{counter: counter}
}

// Limit возвращает Gin middleware с заданной конфигурацией.
// Ключ формируется из IP + маршрута.
func (rl *RateLimiter) Limit(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.MaxRequests <= 0 {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		key := fmt.Sprintf("%s:%s:%s", cfg.KeyPrefix, clientIP, path)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		count, err := rl.counter.Increment(ctx, key, cfg.Window)
		if err != nil {
			// При ошибке хранилища пропускаем запрос (fail-open), но логируем
			log.Printf("[RateLimiter] Counter error for key %s: %v. Allowing request (fail-open).", key, err)
			c.Next()
			return
		}

		remaining := cfg.MaxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}
		retryAfter := int(cfg.Window.Seconds())

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", cfg.MaxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		if int(count) > cfg.MaxRequests {
			log.Printf("[RateLimiter] Rate limit exceeded for IP=%s path=%s. Count=%d, Limit=%d",
				clientIP, path, count, cfg.MaxRequests)

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests. Please try again later.",
				"error_type":  "rate_limited",
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}
