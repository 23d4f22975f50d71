package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AvailableEndpoints is advertised on every 404.
var AvailableEndpoints = []string{"GET /api/health", "POST /api/contact"}

// Response standardizes the API JSON response
type Response struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message"`
	Errors    []string `json:"errors,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
}

// NotFoundResponse is the 404 body.
type NotFoundResponse struct {
	Success            bool     `json:"success"`
	Message            string   `json:"message"`
	AvailableEndpoints []string `json:"availableEndpoints"`
}

// RateLimitResponse is the 429 body.
type RateLimitResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
	Version   string `json:"version"`
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Success sends a success response
func Success(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{
		Success:   true,
		Message:   message,
		Timestamp: now(),
	})
}

// ValidationFailed sends a 400 with the complete list of violations.
func ValidationFailed(c *gin.Context, message string, errs []string) {
	if errs == nil {
		errs = []string{}
	}
	// errors must be present even when empty, so bypass omitempty
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": message,
		"errors":  errs,
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Timestamp: now(),
	})
}

// NotFound lists the routes that do exist.
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, NotFoundResponse{
		Success:            false,
		Message:            message,
		AvailableEndpoints: AvailableEndpoints,
	})
}

// RateLimited aborts with the fixed 429 payload.
func RateLimited(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, RateLimitResponse{
		Error:  message,
		Status: http.StatusTooManyRequests,
	})
}
