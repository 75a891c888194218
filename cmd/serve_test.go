package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/myadmincaptiva/backend/internal/config"
	"github.com/myadmincaptiva/backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAccountStoreDefaultsToMemory(t *testing.T) {
	store, closeStore, err := openAccountStore(context.Background(), config.Config{
		Storage: config.StorageConfig{Driver: config.StorageMemory},
	})
	require.NoError(t, err)
	defer closeStore()

	_, ok := store.(*db.Memory)
	assert.True(t, ok)
}

func TestOpenAccountStorePostgresNeedsDSN(t *testing.T) {
	_, _, err := openAccountStore(context.Background(), config.Config{
		Storage: config.StorageConfig{Driver: config.StoragePostgres},
	})
	assert.Error(t, err)
}

func TestOpenLoginLimiter(t *testing.T) {
	t.Run("disabled-without-redis", func(t *testing.T) {
		limiter, closeLimiter, err := openLoginLimiter(context.Background(), config.Config{})
		require.NoError(t, err)
		defer closeLimiter()
		assert.Nil(t, limiter)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		limiter, closeLimiter, err := openLoginLimiter(context.Background(), config.Config{
			Auth:  config.AuthConfig{LoginMaxAttempts: 2, LoginLockout: time.Minute},
			Redis: config.RedisConfig{URL: "redis://" + mr.Addr()},
		})
		require.NoError(t, err)
		defer closeLimiter()
		require.NotNil(t, limiter)

		ctx := context.Background()
		require.NoError(t, limiter.RecordFailure(ctx, "10.0.0.1"))
		require.NoError(t, limiter.RecordFailure(ctx, "10.0.0.1"))
		assert.Error(t, limiter.Check(ctx, "10.0.0.1"))
	})

	t.Run("bad-url", func(t *testing.T) {
		_, _, err := openLoginLimiter(context.Background(), config.Config{
			Redis: config.RedisConfig{URL: "://nope"},
		})
		assert.Error(t, err)
	})
}
