package middleware

import (
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"cyber-contact-backend/internal/delivery/http/response"
	"cyber-contact-backend/pkg/apperror"
	"cyber-contact-backend/pkg/logger"
	"cyber-contact-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic in any later handler into a generic 500.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		requestID := GetRequestID(c)

		logger.Log.Error("panic_recovered",
			"error", fmt.Sprint(recovered),
			"path", c.Request.URL.Path,
			"request_id", requestID,
			"stack", string(debug.Stack()),
		)
		security.DefaultLogger().Log(c.Request.Context(), security.SecurityEvent{
			Event:     security.EventServerError,
			IP:        c.ClientIP(),
			RequestID: requestID,
			Details:   map[string]any{"path": c.Request.URL.Path},
		})

		response.Error(c, http.StatusInternalServerError, apperror.MsgInternal)
		c.Abort()
	})
}
