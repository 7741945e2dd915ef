package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session SessionConfig
	Guards  GuardConfig
	Rate    RateConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	// TTL is the idle timeout: every restored session pushes expiry out again.
	TTL        time.Duration `env:"SESSION_TTL,    default=24h"`
	CookieName string        `env:"SESSION_COOKIE, default=board_session"`
}

// GuardConfig holds the request-size limits enforced by the award pipeline.
type GuardConfig struct {
	MaxPathLength  int `env:"MAX_PATH_LENGTH,  default=42"`
	MaxHeaderBytes int `env:"MAX_HEADER_BYTES, default=2048"`
	MaxBodyBytes   int `env:"MAX_BODY_BYTES,   default=1024"`
}

// RateConfig bounds request frequency on the protected home route.
type RateConfig struct {
	Window time.Duration `env:"RATE_WINDOW, default=5s"`
	Max    int64         `env:"RATE_MAX,    default=5"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=award_board"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
