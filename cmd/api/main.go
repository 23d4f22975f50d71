package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cyber-contact-backend/config"
	_ "cyber-contact-backend/docs" // Important for Swagger
	v1 "cyber-contact-backend/internal/delivery/http/v1"
	"cyber-contact-backend/internal/usecase"
	"cyber-contact-backend/pkg/email"
	"cyber-contact-backend/pkg/logger"
	"cyber-contact-backend/pkg/ratelimit"
	"cyber-contact-backend/pkg/redis"
	"cyber-contact-backend/pkg/security"
	"cyber-contact-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// @title           Cyber Contact API
// @version         1.0
// @description     Contact form relay: validates submissions and delivers them by email.
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logCloser, err := logger.Init(logger.Options{
		Level:      cfg.LogLevel,
		Production: cfg.IsProduction(),
		File:       cfg.LogFile,
	})
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	var cleanup closers
	defer cleanup.run()
	cleanup.add(func() { _ = logCloser.Close() })

	// fatal flushes logs and releases resources before exiting; os.Exit skips defers
	fatal := func(msg string, args ...any) {
		logger.Log.Error(msg, args...)
		cleanup.run()
		os.Exit(1)
	}

	env := "development"
	if cfg.IsProduction() {
		env = "production"
		gin.SetMode(gin.ReleaseMode)
	}
	secLog := security.InitSecurityLogger(cfg.ServiceName, env)
	cleanup.add(func() { _ = secLog.Sync() })

	logger.Log.Info("Starting contact backend", "port", cfg.Port, "env", env)

	// 3. Setup Rate Limit Store (Redis when configured, memory otherwise)
	var store ratelimit.Store
	if cfg.RedisURL != "" {
		client, err := redis.New(context.Background(), redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
		if err != nil {
			fatal("Failed to connect to Redis", "error", err)
		}
		cleanup.add(func() { _ = client.Close() })
		store = ratelimit.NewRedisStore(client, "contact-api:ratelimit:")
		logger.Log.Info("Rate limiter using Redis")
	} else {
		memStore := ratelimit.NewMemoryStore()
		cleanup.add(memStore.Close)
		store = memStore
		logger.Log.Info("Rate limiter using in-memory store")
	}

	globalLimiter, err := ratelimit.NewSlidingWindow(store, cfg.RateLimitMax, cfg.RateLimitWindow)
	if err != nil {
		fatal("Invalid global rate limit", "error", err)
	}
	contactLimiter, err := ratelimit.NewSlidingWindow(store, cfg.ContactRateLimitMax, cfg.ContactRateLimitWindow)
	if err != nil {
		fatal("Invalid contact rate limit", "error", err)
	}

	// 4. Setup Mailer and verify the relay before serving traffic
	pool := email.NewPool(email.PoolConfig{
		Host:           cfg.SMTPHost,
		Port:           cfg.SMTPPort,
		Username:       cfg.SMTPUser,
		Password:       cfg.SMTPPassword,
		TLSMode:        email.TLSMode(cfg.SMTPTLSMode),
		DialTimeout:    cfg.SMTPDialTimeout,
		MaxConnections: cfg.SMTPMaxConnections,
		MaxMessages:    cfg.SMTPMaxMessages,
	})
	cleanup.add(func() {
		if err := pool.Close(); err != nil {
			logger.Log.Error("Failed to close SMTP pool", "error", err)
		}
	})

	verifyCtx, cancelVerify := context.WithTimeout(context.Background(), cfg.SMTPDialTimeout+10*time.Second)
	err = pool.Verify(verifyCtx)
	cancelVerify()
	if err != nil {
		fatal("SMTP verification failed", "host", cfg.SMTPHost, "port", cfg.SMTPPort, "error", err)
	}
	logger.Log.Info("SMTP relay verified", "host", cfg.SMTPHost)

	renderer, err := email.NewRenderer(email.RendererConfig{
		BrandName:    cfg.BrandName,
		SiteURL:      cfg.SiteURL,
		ContactPhone: cfg.ContactPhone,
		Location:     cfg.Location(),
	})
	if err != nil {
		fatal("Failed to parse email templates", "error", err)
	}

	// 5. Setup UseCases
	contactUC := usecase.NewContactUsecase(
		validation.NewContactValidator(validator.New()),
		renderer,
		pool,
		usecase.ContactConfig{
			FromName:    cfg.SMTPFromName,
			FromAddress: cfg.SMTPFromEmail,
			Inbox:       cfg.ContactEmailTo,
			BrandName:   cfg.BrandName,
		},
	)
	healthUC := usecase.NewHealthUsecase(cfg.ServiceName, cfg.ServiceVersion)

	// 6. Setup Router
	router, err := v1.NewRouter(v1.RouterDeps{
		ContactUC:      contactUC,
		HealthUC:       healthUC,
		GlobalLimiter:  globalLimiter,
		ContactLimiter: contactLimiter,
		Config:         cfg,
	})
	if err != nil {
		fatal("Failed to build router", "error", err)
	}

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("Listen failed", "error", err)
		}
	}()
	logger.Log.Info("Server listening", "addr", srv.Addr, "frontend", cfg.FrontendURL)

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}
	logger.Log.Info("Server exiting")
}

// closers runs registered cleanups once, in reverse order.
type closers []func()

func (c *closers) add(fn func()) { *c = append(*c, fn) }

func (c *closers) run() {
	fns := *c
	*c = nil
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
