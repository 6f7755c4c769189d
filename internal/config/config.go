package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerAddress   string        `mapstructure:"SERVER_ADDRESS"`
	PostgresConn    string        `mapstructure:"POSTGRES_CONN"`
	RunMigrations   bool          `mapstructure:"RUN_MIGRATIONS"`
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int           `mapstructure:"REDIS_DB"`
	JWTSecret       string        `mapstructure:"JWT_SECRET"`
	TokenTTL        time.Duration `mapstructure:"TOKEN_TTL"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	LogFormat       string        `mapstructure:"LOG_FORMAT"`
	CORSOrigins     []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var defaults = map[string]interface{}{
	"SERVER_ADDRESS":       "0.0.0.0:8080",
	"POSTGRES_CONN":        "",
	"RUN_MIGRATIONS":       true,
	"REDIS_ADDR":           "localhost:6379",
	"REDIS_PASSWORD":       "",
	"REDIS_DB":             0,
	"JWT_SECRET":           "",
	"TOKEN_TTL":            "24h",
	"LOG_LEVEL":            "info",
	"LOG_FORMAT":           "json",
	"CORS_ALLOWED_ORIGINS": "*",
	"SHUTDOWN_TIMEOUT":     "10s",
}

// Load читает .env (если есть) и переменные окружения
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.PostgresConn == "" {
		return errors.New("POSTGRES_CONN is not set")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	return nil
}
