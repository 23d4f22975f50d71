package v1

import (
	"cyber-contact-backend/config"
	"cyber-contact-backend/internal/delivery/http/middleware"
	"cyber-contact-backend/internal/delivery/http/response"
	"cyber-contact-backend/internal/domain"
	"cyber-contact-backend/internal/usecase"
	"cyber-contact-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC      domain.ContactUsecase
	HealthUC       usecase.HealthUsecase
	GlobalLimiter  middleware.Limiter
	ContactLimiter middleware.Limiter
	Config         *config.Config
}

func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	r := gin.New()

	if err := r.SetTrustedProxies(deps.Config.TrustedProxies); err != nil {
		return nil, err
	}

	// Global Middlewares
	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL))
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config.IsProduction()))
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.BodyLimit(deps.Config.BodyLimitBytes))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(deps.GlobalLimiter)))

	api := r.Group("/api")

	NewHealthHandler(api, deps.HealthUC)
	NewContactHandler(api, deps.ContactUC,
		middleware.RateLimitMiddleware(middleware.ContactRateLimitConfig(deps.ContactLimiter)),
	)

	if deps.Config.EnableSwagger {
		api.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, apperror.MsgNotFound)
	})

	return r, nil
}
