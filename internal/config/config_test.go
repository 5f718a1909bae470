package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:3333", cfg.Server.Addr)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, 10, cfg.Auth.AccessTTLMinutes)
	require.Equal(t, 168, cfg.Auth.RefreshTTLHours)
	require.Equal(t, "refreshToken", cfg.Auth.RefreshCookieName)
	require.Equal(t, 6, cfg.Auth.BcryptCost)
	require.False(t, cfg.Production())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ACCOUNT_ENVIRONMENT", "production")
	t.Setenv("ACCOUNT_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("ACCOUNT_DATABASE_DRIVER", "postgres")
	t.Setenv("ACCOUNT_DATABASE_DSN", "postgres://localhost/accounts")
	t.Setenv("ACCOUNT_AUTH_JWTSECRET", "s3cret")
	t.Setenv("ACCOUNT_AUTH_ACCESSTTLMINUTES", "5")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, "postgres://localhost/accounts", cfg.Database.DSN)
	require.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	require.Equal(t, 5, cfg.Auth.AccessTTLMinutes)
	require.True(t, cfg.Production())
}
