package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string        `env:"PORT,        default=8080"`
	Env        string        `env:"APP_ENV,     default=development"`
	JWTSecret  string        `env:"JWT_SECRET"`
	LogLevel   string        `env:"LOG_LEVEL,   default=info"`
	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"`

	// AdminEmails is the exact-match allow-list consulted by the admin
	// classifier, on top of the "admin" substring heuristic.
	AdminEmails []string `env:"ADMIN_EMAILS, delimiter=,"`
	// ReservedAdminID is the national ID reserved for the admin account.
	ReservedAdminID string `env:"RESERVED_ADMIN_ID"`
	// AdminPath is the prefix of the admin area used for the guard's
	// forced redirect.
	AdminPath string `env:"ADMIN_PATH, default=/admin"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=renewal_platform"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Development reports whether the app runs with development-environment
// guard semantics.
func (c *Config) Development() bool {
	return c.Env != "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
