package v1

import (
	"errors"
	"net/http"
	"time"

	"cyber-contact-backend/internal/delivery/http/middleware"
	"cyber-contact-backend/internal/delivery/http/response"
	"cyber-contact-backend/internal/domain"
	"cyber-contact-backend/pkg/apperror"
	"cyber-contact-backend/pkg/logger"
	"cyber-contact-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers POST /contact. Route-specific middlewares (the
// contact rate limiter) run before the handler.
func NewContactHandler(api *gin.RouterGroup, contactUC domain.ContactUsecase, mws ...gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	api.POST("/contact", append(mws, handler.SubmitContact)...)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Validates the submission, emails the team and sends an acknowledgement to the visitor.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactSubmission  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.RateLimitResponse
// @Failure      500      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	start := time.Now()
	ctx := c.Request.Context()
	requestID := middleware.GetRequestID(c)
	cc := domain.ClientContext{
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		Timestamp: start,
	}
	log := logger.Log.With("ip", cc.IP, "user_agent", cc.UserAgent, "request_id", requestID)
	seclog := security.DefaultLogger()

	log.Info("contact_submission_started")

	var sub domain.ContactSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.Error(apperror.New(http.StatusRequestEntityTooLarge, apperror.MsgTooLarge, err))
			return
		}
		log.Warn("contact_validation_failed", "reason", "malformed_body", "duration_ms", time.Since(start).Milliseconds())
		seclog.Log(ctx, security.SecurityEvent{
			Event:     security.EventMalformedRequest,
			IP:        cc.IP,
			UserAgent: cc.UserAgent,
			RequestID: requestID,
		})
		c.Error(apperror.Validation([]string{apperror.MsgMalformed}))
		return
	}

	err := h.contactUC.Submit(ctx, sub, cc)
	duration := time.Since(start).Milliseconds()

	var appErr *apperror.AppError
	switch {
	case err == nil:
		log.Info("contact_submission_succeeded", "service", sub.Service, "duration_ms", duration)
		seclog.LogContactSubmitted(ctx, sub.Email, cc.IP, requestID, sub.Service)
		response.Success(c, apperror.MsgSubmitted)

	case errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest:
		// Expected client error, not a server failure
		log.Info("contact_validation_failed", "violations", len(appErr.Details), "duration_ms", duration)
		seclog.LogValidationFailed(ctx, cc.IP, cc.UserAgent, requestID, len(appErr.Details))
		c.Error(err)

	default:
		log.Error("contact_submission_failed", "error", err.Error(), "duration_ms", duration)
		seclog.LogDispatchFailed(ctx, cc.IP, requestID, err)
		c.Error(err)
	}
}
