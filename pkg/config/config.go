package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// AppEnv gates .env loading; production never reads a local env file.
	// Falls back to NODE_ENV for hosts configured for the previous deployment.
	AppEnv string `envconfig:"APP_ENV"`

	Port     int    `envconfig:"PORT" default:"5000"`
	HTTPAddr string `envconfig:"HTTP_ADDR"`

	ServiceName string `envconfig:"SERVICE_NAME" default:"thats-whatsupp-backend"`

	// AllowedOrigins is the raw comma-separated allowlist, e.g.
	//   http://localhost:3000,https://your-app.vercel.app
	// Parsed into an api.OriginRegistry at startup.
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`

	// DatabaseURL is the Postgres endpoint (Supabase pooler or direct).
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// DatabaseServiceKey is the privileged database credential. When set it
	// replaces whatever password DATABASE_URL carries. Never expose it to the frontend.
	DatabaseServiceKey string `envconfig:"DATABASE_SERVICE_KEY"`

	// Commit is set by Render on deploy.
	Commit string `envconfig:"RENDER_GIT_COMMIT"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

func Load() (Config, error) {
	// Convenience for local dev: load variables from .env if present.
	// In production, rely on real environment variables.
	if !IsProduction(appEnv()) {
		_ = godotenv.Load()
	}

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if c.AppEnv == "" {
		c.AppEnv = env("NODE_ENV", "development")
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return Config{}, fmt.Errorf("config: DATABASE_URL is empty")
	}
	if c.HTTPAddr == "" {
		if c.Port <= 0 || c.Port > 65535 {
			return Config{}, fmt.Errorf("config: invalid PORT %d", c.Port)
		}
		c.HTTPAddr = fmt.Sprintf(":%d", c.Port)
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	return c, nil
}

func IsProduction(appEnv string) bool {
	switch strings.ToLower(strings.TrimSpace(appEnv)) {
	case "production", "prod":
		return true
	}
	return false
}

func appEnv() string {
	if v := os.Getenv("APP_ENV"); v != "" {
		return v
	}
	return os.Getenv("NODE_ENV")
}

func env(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
