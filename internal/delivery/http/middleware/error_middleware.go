package middleware

import (
	"errors"
	"net/http"

	"cyber-contact-backend/internal/delivery/http/response"
	"cyber-contact-backend/pkg/apperror"
	"cyber-contact-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler pushed with c.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.Internal(err)
		}

		if appErr.Code >= http.StatusInternalServerError {
			// Details of the cause never reach the client
			logger.Log.Error("request_failed",
				"status", appErr.Code,
				"error", err.Error(),
				"path", c.Request.URL.Path,
				"ip", c.ClientIP(),
				"request_id", GetRequestID(c),
			)
		}

		switch appErr.Code {
		case http.StatusBadRequest:
			response.ValidationFailed(c, appErr.Message, appErr.Details)
		case http.StatusNotFound:
			response.NotFound(c, appErr.Message)
		case http.StatusTooManyRequests:
			response.RateLimited(c, appErr.Message)
		default:
			response.Error(c, appErr.Code, appErr.Message)
		}
	}
}
