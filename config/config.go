// Package config loads runtime configuration from the environment.
// A .env file in the working directory is honored when present.
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	Addr         string        `envconfig:"ADDR" default:":8080"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout  time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`

	DBPath string `envconfig:"DB_PATH" default:"leave.db"`

	Env       string `envconfig:"APP_ENV" default:"development"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`

	JWTSecret string        `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"12h"`

	// Default per-category leave entitlement granted at onboarding.
	Entitlement int `envconfig:"LEAVE_ENTITLEMENT" default:"10"`

	EmailEnabled bool   `envconfig:"EMAIL_ENABLED" default:"false"`
	SMTPHost     string `envconfig:"SMTP_HOST" default:""`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser     string `envconfig:"SMTP_USER" default:""`
	SMTPPassword string `envconfig:"SMTP_PASSWORD" default:""`
	SMTPFrom     string `envconfig:"SMTP_FROM" default:"no-reply@lms.local"`
	SMTPUseTLS   bool   `envconfig:"SMTP_USE_TLS" default:"true"`
}

// Load reads configuration from the environment. Missing .env is not an
// error; explicit environment variables always win.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
