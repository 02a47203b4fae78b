package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsAndEnv(t *testing.T) {
	viper.Reset()
	t.Setenv("BLOGR_JWT_SECRET", "unit-test-secret")
	t.Setenv("BLOGR_REDIS_ADDR", "redis.test:6379")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	require.Equal(t, "http://localhost:8080", cfg.Server.BaseURL)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "unit-test-secret", cfg.Auth.JWTSecret)
	require.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	require.Equal(t, "redis.test:6379", cfg.Redis.Addr)
	require.False(t, cfg.Tracing.Enabled)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	viper.Reset()

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "jwt_secret")
}
