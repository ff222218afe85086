package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is loaded once at startup and treated as immutable afterwards.
// Components receive the values they need, never the environment.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret     string `env:"JWT_SECRET"`
	TokenTTLHours int    `env:"TOKEN_TTL_HOURS, default=24"`

	// PublicPaths lists path prefixes the auth gate lets through without a
	// token. Empty means the compiled-in defaults below.
	PublicPaths []string `env:"PUBLIC_PATHS, delimiter=;"`

	Postgres PostgresConfig
	Redis    RedisConfig
	Throttle ThrottleConfig
}

type PostgresConfig struct {
	DSN string `env:"POSTGRES_DSN, default=postgres://localhost:5432/accounts?sslmode=disable"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type ThrottleConfig struct {
	MaxFailures int           `env:"LOGIN_MAX_FAILURES,   default=10"`
	Window      time.Duration `env:"LOGIN_FAILURE_WINDOW, default=15m"`
}

// defaultPublicPaths keeps registration, login, and the health and metrics
// endpoints reachable
// without a session. Logout is listed because its handler re-verifies the
// token itself: closing a session must work with an expired token, and a
// repeat logout must read as success rather than a gate rejection.
var defaultPublicPaths = []string{"/auth/register", "/auth/login", "/auth/logout", "/health", "/metrics"}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	if len(cfg.PublicPaths) == 0 {
		cfg.PublicPaths = defaultPublicPaths
	}
	return &cfg
}

// TokenTTL returns the configured token lifetime as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}
