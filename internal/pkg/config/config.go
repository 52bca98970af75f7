package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	JWTTTL    time.Duration `env:"JWT_TTL,   default=24h"`

	// CORSAllowOrigins is a comma separated list; "*" allows any origin.
	CORSAllowOrigins string `env:"CORS_ALLOW_ORIGINS, default=*"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Login     LoginConfig
	Seed      SeedConfig
	Bootstrap BootstrapConfig
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,      default=ISC"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

// RedisConfig is optional: an empty Addr disables login throttling.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type LoginConfig struct {
	MaxAttempts   int           `env:"LOGIN_MAX_ATTEMPTS,   default=5"`
	LockoutWindow time.Duration `env:"LOGIN_LOCKOUT_WINDOW, default=15m"`
}

type SeedConfig struct {
	DemoData bool `env:"SEED_DEMO_DATA, default=false"`
}

type BootstrapConfig struct {
	Username string `env:"BOOTSTRAP_SUPERADMIN_USERNAME"`
	Password string `env:"BOOTSTRAP_SUPERADMIN_PASSWORD"`
	Email    string `env:"BOOTSTRAP_SUPERADMIN_EMAIL"`
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// AllowOrigins splits CORSAllowOrigins into its entries.
func (c *Config) AllowOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through the given lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if len(cfg.JWTSecret) < 16 && !cfg.IsDevelopment() {
		return nil, fmt.Errorf("JWT_SECRET must be at least 16 characters outside development")
	}
	return &cfg, nil
}
