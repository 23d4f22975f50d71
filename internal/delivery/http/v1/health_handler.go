package v1

import (
	"net/http"
	"time"

	"cyber-contact-backend/internal/delivery/http/response"
	"cyber-contact-backend/internal/usecase"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC usecase.HealthUsecase
}

func NewHealthHandler(api *gin.RouterGroup, healthUC usecase.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}
	api.GET("/health", handler.Health)
}

// Health godoc
// @Summary      Health check
// @Description  Liveness probe. Does not touch the SMTP relay.
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	status := h.healthUC.Check(c.Request.Context())
	c.JSON(http.StatusOK, response.HealthResponse{
		Status:    status.Status,
		Timestamp: status.Timestamp.Format(time.RFC3339),
		Service:   status.Service,
		Version:   status.Version,
	})
}
