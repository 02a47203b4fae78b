package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the full application configuration, loaded once in main and
// injected from there. No package reads viper on its own.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Sentry   SentryConfig   `mapstructure:"sentry"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
	Limit    LimitConfig    `mapstructure:"limit"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// Mode is gin's mode: debug or release.
	Mode string `mapstructure:"mode"`
	// BaseURL is the externally reachable address of this service,
	// used wherever an absolute link to ourselves is needed.
	BaseURL         string        `mapstructure:"base_url"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	// Driver is sqlite or postgres.
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type SentryConfig struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
}

type TracingConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

type LimitConfig struct {
	// RPS is the sustained request rate allowed per client on write routes.
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

func (s ServerConfig) Addr() string { return fmt.Sprintf("%s:%d", s.Host, s.Port) }

// Load reads config.yaml (working dir or ./config) merged over defaults,
// then applies BLOGR_* environment overrides.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.base_url", "http://localhost:8080")
	viper.SetDefault("server.shutdown_timeout", "5s")
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "blogr.db")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("auth.token_ttl", "24h")
	viper.SetDefault("tracing.enabled", false)
	viper.SetDefault("limit.rps", 10)
	viper.SetDefault("limit.burst", 20)

	viper.SetEnvPrefix("BLOGR")
	viper.AutomaticEnv()
	_ = viper.BindEnv("database.dsn", "BLOGR_DATABASE_DSN")
	_ = viper.BindEnv("redis.addr", "BLOGR_REDIS_ADDR")
	_ = viper.BindEnv("auth.jwt_secret", "BLOGR_JWT_SECRET")
	_ = viper.BindEnv("sentry.dsn", "BLOGR_SENTRY_DSN")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret is required")
	}
	return &cfg, nil
}
