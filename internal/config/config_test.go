package config

import (
	"errors"
	"testing"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/stretchr/testify/require"
)

func restore() {
	loadDotEnv = func() error { return nil }
	processEnvconf = envconfig.Process
}

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	t.Setenv("JWT_SECRET", "s3cret")
}

func TestLoadDefaults(t *testing.T) {
	restore()
	t.Cleanup(restore)
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, ":8080", cfg.Addr())
	require.Equal(t, "localhost:6379", cfg.Redis.Addr)
	require.Equal(t, 0, cfg.Redis.DB)
	require.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	require.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	require.Equal(t, ReadAccessPublic, cfg.Catalog.ReadAccess)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
	require.False(t, cfg.Database.MigrateDown)
	require.NotContains(t, cfg.String(), "s3cret")
}

func TestLoadOverrides(t *testing.T) {
	restore()
	t.Cleanup(restore)
	setRequired(t)
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CATALOG_READ_ACCESS", "authenticated")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.Addr())
	require.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	require.Equal(t, 3, cfg.Redis.DB)
	require.Equal(t, ReadAccessAuthenticated, cfg.Catalog.ReadAccess)
	require.Equal(t, "text", cfg.Log.Format)
}

func TestLoadErrors(t *testing.T) {
	restore()
	t.Cleanup(restore)

	t.Run("missing database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("JWT_SECRET", "s")
		_, err := Load()
		require.ErrorContains(t, err, "DATABASE_URL")
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "db")
		t.Setenv("JWT_SECRET", "")
		_, err := Load()
		require.ErrorContains(t, err, "JWT_SECRET")
	})

	t.Run("bad port", func(t *testing.T) {
		setRequired(t)
		t.Setenv("PORT", "70000")
		_, err := Load()
		require.ErrorContains(t, err, "PORT")
	})

	t.Run("bad ttl", func(t *testing.T) {
		setRequired(t)
		t.Setenv("JWT_TTL", "-1m")
		_, err := Load()
		require.ErrorContains(t, err, "JWT_TTL")
	})

	t.Run("bad read access", func(t *testing.T) {
		setRequired(t)
		t.Setenv("CATALOG_READ_ACCESS", "Public")
		_, err := Load()
		require.ErrorContains(t, err, "CATALOG_READ_ACCESS")
	})

	t.Run("unparsable env", func(t *testing.T) {
		setRequired(t)
		t.Setenv("REDIS_DB", "abc")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("process error", func(t *testing.T) {
		processEnvconf = func(string, interface{}) error { return errors.New("env") }
		t.Cleanup(restore)
		_, err := Load()
		require.ErrorContains(t, err, "env")
	})
}
