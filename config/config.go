package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // timezone lookups must not depend on the host image

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           string   `env:"PORT" envDefault:"3001"`
	AppEnv         string   `env:"APP_ENV" envDefault:"development"`
	FrontendURL    string   `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
	BodyLimitBytes int64    `env:"BODY_LIMIT_BYTES" envDefault:"10485760"` // 10MB
	EnableSwagger  bool     `env:"ENABLE_SWAGGER" envDefault:"false"`
	ServiceName    string   `env:"SERVICE_NAME" envDefault:"Cyber Contact API"`
	ServiceVersion string   `env:"SERVICE_VERSION" envDefault:"1.0.0"`

	// SMTP Configuration
	SMTPHost           string        `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort           int           `env:"SMTP_PORT" envDefault:"587"`
	SMTPTLSMode        string        `env:"SMTP_TLS_MODE" envDefault:"starttls"` // starttls | tls | none
	SMTPUser           string        `env:"SMTP_USER"`
	SMTPPassword       string        `env:"SMTP_PASSWORD"`
	SMTPFromName       string        `env:"SMTP_FROM_NAME"`
	// SMTPFromEmail is the verified sender; some relays use a login that is not an address
	SMTPFromEmail      string        `env:"SMTP_FROM_EMAIL"`
	ContactEmailTo     string        `env:"CONTACT_EMAIL_TO"`
	SMTPMaxConnections int           `env:"SMTP_MAX_CONNECTIONS" envDefault:"5"`
	SMTPMaxMessages    int           `env:"SMTP_MAX_MESSAGES" envDefault:"100"`
	SMTPDialTimeout    time.Duration `env:"SMTP_DIAL_TIMEOUT" envDefault:"10s"`

	// Rate Limiting Configuration
	RateLimitWindow        time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`
	RateLimitMax           int           `env:"RATE_LIMIT_MAX" envDefault:"100"`
	ContactRateLimitWindow time.Duration `env:"CONTACT_RATE_LIMIT_WINDOW" envDefault:"15m"`
	ContactRateLimitMax    int           `env:"CONTACT_RATE_LIMIT_MAX" envDefault:"5"`

	// Redis is optional; limiter counters stay in memory when unset
	RedisURL      string `env:"REDIS_URL"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Email template data
	BrandName    string `env:"BRAND_NAME" envDefault:"Ciberseguridad Consultores"`
	SiteURL      string `env:"SITE_URL" envDefault:"http://localhost:5173"`
	ContactPhone string `env:"CONTACT_PHONE" envDefault:"+34 682 790 545"`
	Timezone     string `env:"TIMEZONE" envDefault:"Europe/Madrid"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
}

func LoadConfig() (*Config, error) {
	// Load .env file (only relevant locally, ignored when the file is missing)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	// Strip trailing slash so the CORS origin compares exactly
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")

	if cfg.SMTPFromName == "" {
		cfg.SMTPFromName = cfg.BrandName
	}
	if cfg.SMTPFromEmail == "" {
		cfg.SMTPFromEmail = cfg.SMTPUser
	}
	if cfg.ContactEmailTo == "" {
		cfg.ContactEmailTo = cfg.SMTPUser
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges that env tags cannot express.
// Missing SMTP credentials are not rejected here: the mailer verification step owns that failure.
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if c.FrontendURL == "" {
		errs = append(errs, errors.New("FRONTEND_URL must not be empty"))
	}
	switch c.SMTPTLSMode {
	case "starttls", "tls", "none":
	default:
		errs = append(errs, fmt.Errorf("SMTP_TLS_MODE must be one of starttls, tls, none (got %q)", c.SMTPTLSMode))
	}
	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		errs = append(errs, fmt.Errorf("SMTP_PORT out of range: %d", c.SMTPPort))
	}
	if c.SMTPMaxConnections <= 0 {
		errs = append(errs, errors.New("SMTP_MAX_CONNECTIONS must be positive"))
	}
	if c.SMTPMaxMessages <= 0 {
		errs = append(errs, errors.New("SMTP_MAX_MESSAGES must be positive"))
	}
	if c.RateLimitWindow <= 0 || c.RateLimitMax <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW and RATE_LIMIT_MAX must be positive"))
	}
	if c.ContactRateLimitWindow <= 0 || c.ContactRateLimitMax <= 0 {
		errs = append(errs, errors.New("CONTACT_RATE_LIMIT_WINDOW and CONTACT_RATE_LIMIT_MAX must be positive"))
	}
	if c.BodyLimitBytes <= 0 {
		errs = append(errs, errors.New("BODY_LIMIT_BYTES must be positive"))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err))
	}

	return errors.Join(errs...)
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Location returns the configured timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
