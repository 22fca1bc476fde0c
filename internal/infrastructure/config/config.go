package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string        `env:"PORT,         default=8080"`
	Env        string        `env:"ENV,          default=development"`
	LogLevel   string        `env:"LOG_LEVEL,    default=info"`
	JWTSecret  string        `env:"JWT_SECRET,   required"`
	TokenTTL   time.Duration `env:"JWT_TTL,      default=8h"`
	CORSOrigin string        `env:"CORS_ORIGIN,  default=http://localhost:3000"`
	BcryptCost int           `env:"BCRYPT_COST,  default=12"`

	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI      string `env:"MONGODB_URI, required"`
	Database string `env:"MONGODB_DB,  default=action_auto_crm"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// RateLimitConfig controls the fixed-window admission-control layer.
type RateLimitConfig struct {
	Window time.Duration `env:"RATE_LIMIT_WINDOW, default=15m"`
	Max    int64         `env:"RATE_LIMIT_MAX,    default=100"`
}

// Load reads configuration from environment variables. A missing required
// value is a startup error; callers treat it as fatal.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Production reports whether the process runs with the production profile.
// Non-production responses may include internal diagnostic detail.
func (c *Config) Production() bool {
	return c.Env == "production"
}
