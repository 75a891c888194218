package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MYADMINCAPTIVA_USER", "admin")
	t.Setenv("MYADMINCAPTIVA_PASS", "s3cret")
	t.Setenv("AUTH_JWT_SECRET", "signing-key")
	t.Setenv("SERVER_ADDR", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "")
	t.Setenv("LOGIN_LOCKOUT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	t.Setenv("ACCOUNT_HOOK_URL", "")
	t.Setenv("TRUSTED_PROXIES", "")
	t.Setenv("ACCOUNT_HOOK_METHOD", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, "admin", cfg.Auth.AdminUsername)
	assert.Equal(t, "s3cret", cfg.Auth.AdminPassword)
	assert.Equal(t, "signing-key", cfg.Auth.JWTSecret)
	assert.Equal(t, 5, cfg.Auth.LoginMaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Auth.LoginLockout)
	assert.Empty(t, cfg.Hook.URL)
	assert.Equal(t, "POST", cfg.Hook.Method)
	assert.Empty(t, cfg.Server.TrustedProxies)
}

func TestLoadTrustedProxies(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.10")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.10"}, cfg.Server.TrustedProxies)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "storage-driver", key: "STORAGE_DRIVER", val: "mongo"},
		{name: "max-attempts", key: "LOGIN_MAX_ATTEMPTS", val: "zero"},
		{name: "max-attempts-negative", key: "LOGIN_MAX_ATTEMPTS", val: "-1"},
		{name: "lockout", key: "LOGIN_LOCKOUT", val: "forever"},
		{name: "trusted-proxies", key: "TRUSTED_PROXIES", val: "10.0.0.0/8,proxy.local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestPostgresURL(t *testing.T) {
	t.Run("database-url-wins", func(t *testing.T) {
		cfg := PostgresConfig{DatabaseURL: "postgres://x@db/y", User: "ignored", Database: "ignored"}
		got, err := cfg.URL()
		require.NoError(t, err)
		assert.Equal(t, "postgres://x@db/y", got)
	})

	t.Run("built-from-parts", func(t *testing.T) {
		cfg := PostgresConfig{Host: "db", Port: "5433", User: "captiva", Password: "p@ss", Database: "portal", SSLMode: "disable"}
		got, err := cfg.URL()
		require.NoError(t, err)
		assert.Equal(t, "postgres://captiva:p%40ss@db:5433/portal?sslmode=disable", got)
	})

	t.Run("missing-user", func(t *testing.T) {
		_, err := PostgresConfig{Database: "portal"}.URL()
		require.Error(t, err)
	})
}
