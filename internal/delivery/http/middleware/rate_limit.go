package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"cyber-contact-backend/internal/delivery/http/response"
	"cyber-contact-backend/pkg/apperror"
	"cyber-contact-backend/pkg/logger"
	"cyber-contact-backend/pkg/ratelimit"
	"cyber-contact-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// Limiter is the subset of *ratelimit.SlidingWindow the middleware needs.
type Limiter interface {
	Allow(ctx context.Context, key string) (*ratelimit.Result, error)
	Limit() int
}

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Name identifies the limiter in keys and logs ("global", "contact")
	Name    string
	Limiter Limiter
	// Message is the fixed text of the 429 body
	Message string
	// Whether to reject (503) when the store is unavailable
	FailClosed bool
	// Custom key extractor (default: client IP)
	KeyFunc func(*gin.Context) string
}

// GlobalRateLimitConfig applies to every route; store errors let requests through.
func GlobalRateLimitConfig(l Limiter) RateLimitConfig {
	return RateLimitConfig{
		Name:       "global",
		Limiter:    l,
		Message:    apperror.MsgRateLimited,
		FailClosed: false,
	}
}

// ContactRateLimitConfig guards the submission route, which sends mail on success.
func ContactRateLimitConfig(l Limiter) RateLimitConfig {
	return RateLimitConfig{
		Name:       "contact",
		Limiter:    l,
		Message:    apperror.MsgContactRateLimited,
		FailClosed: true,
	}
}

// RateLimitMiddleware creates a rate limiting middleware with the given config.
// Rejected requests are aborted before any later handler runs.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}

	return func(c *gin.Context) {
		key := config.Name + ":" + config.KeyFunc(c)

		result, err := config.Limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logRateLimitError(c, config.Name, err)
			if config.FailClosed {
				response.Error(c, http.StatusServiceUnavailable, apperror.MsgUnavailable)
				c.Abort()
				return
			}
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			retryAfter := int(result.RetryAfter().Round(time.Second).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logRateLimitTriggered(c, config.Name)
			response.RateLimited(c, config.Message)
			return
		}

		c.Next()
	}
}

func logRateLimitTriggered(c *gin.Context, limiter string) {
	logger.Log.Warn("rate_limit_exceeded",
		"limiter", limiter,
		"ip", c.ClientIP(),
		"path", c.Request.URL.Path,
		"request_id", GetRequestID(c),
	)
	security.DefaultLogger().LogRateLimitTriggered(
		c.Request.Context(),
		c.ClientIP(),
		c.GetHeader("User-Agent"),
		GetRequestID(c),
		c.Request.URL.Path,
		limiter,
	)
}

func logRateLimitError(c *gin.Context, limiter string, err error) {
	logger.Log.Error("rate_limit_store_error", "limiter", limiter, "error", err.Error())
	security.DefaultLogger().Log(c.Request.Context(), security.SecurityEvent{
		Event:       security.EventRateLimitUnavailable,
		SubjectType: "ip",
		IP:          c.ClientIP(),
		RequestID:   GetRequestID(c),
		Details: map[string]any{
			"limiter": limiter,
			"error":   err.Error(),
		},
	})
}
