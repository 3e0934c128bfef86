package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port          string `env:"PORT,            default=8080"`
	Env           string `env:"ENV,             default=development"`
	LogLevel      string `env:"LOG_LEVEL,       default=info"`
	ServerBaseURL string `env:"SERVER_BASE_URL, default=http://localhost:8080"`

	JWT   JWTConfig
	Login LoginConfig
	Mongo MongoConfig
	Redis RedisConfig
	Mail  MailConfig
	HTTP  HTTPConfig
}

type JWTConfig struct {
	Secret    string        `env:"JWT_SECRET,          required"`
	Algorithm string        `env:"JWT_ALGORITHM,       default=HS256"`
	TTL       time.Duration `env:"ACCESS_TOKEN_EXPIRE, default=30m"`
}

type LoginConfig struct {
	MaxAttempts int           `env:"MAX_LOGIN_ATTEMPTS,   default=5"`
	Window      time.Duration `env:"LOGIN_ATTEMPT_WINDOW, default=15m"`
	// RatePerSecond and Burst bound login requests per client IP.
	RatePerSecond float64 `env:"LOGIN_RATE,  default=1"`
	Burst         int     `env:"LOGIN_BURST, default=5"`
}

type MongoConfig struct {
	URI         string `env:"MONGO_URI,           default=mongodb://localhost:27017"`
	Database    string `env:"MONGO_DB,            default=user_management"`
	MaxPoolSize uint64 `env:"MONGO_MAX_POOL_SIZE, default=50"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,      default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,        default=0"`
	PoolSize int    `env:"REDIS_POOL_SIZE, default=10"`
}

type MailConfig struct {
	From    string `env:"MAIL_FROM,    default=noreply@example.com"`
	Workers int    `env:"MAIL_WORKERS, default=4"`
}

type HTTPConfig struct {
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`
}

// IsDevelopment reports whether the service runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration through the given lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if cfg.Login.MaxAttempts <= 0 {
		return nil, fmt.Errorf("MAX_LOGIN_ATTEMPTS must be positive, got %d", cfg.Login.MaxAttempts)
	}
	if cfg.JWT.TTL <= 0 {
		return nil, fmt.Errorf("ACCESS_TOKEN_EXPIRE must be positive, got %s", cfg.JWT.TTL)
	}
	return &cfg, nil
}
