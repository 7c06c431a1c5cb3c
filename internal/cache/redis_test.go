package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dimitrije/pickup-api/internal/models"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStatsCache(t *testing.T, ttl time.Duration) (*StatsCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStatsCache(client, ttl), srv
}

func TestStatsCache_Miss(t *testing.T) {
	c, _ := setupStatsCache(t, time.Minute)

	stats, ok, err := c.Get(context.Background())

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, stats)
}

func TestStatsCache_SetThenGet(t *testing.T) {
	c, _ := setupStatsCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, &models.Stats{ActiveMatches: 3, OnlinePlayers: 17}))

	stats, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, stats.ActiveMatches)
	assert.Equal(t, 17, stats.OnlinePlayers)
}

func TestStatsCache_ExpiresAfterTTL(t *testing.T) {
	c, srv := setupStatsCache(t, 30*time.Second)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, &models.Stats{ActiveMatches: 1}))
	srv.FastForward(31 * time.Second)

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStatsCache_Invalidate(t *testing.T) {
	c, _ := setupStatsCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, &models.Stats{ActiveMatches: 1}))
	require.NoError(t, c.Invalidate(ctx))

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStatsCache_CorruptValue(t *testing.T) {
	c, srv := setupStatsCache(t, time.Minute)
	require.NoError(t, srv.Set(statsKey, "not-json"))

	_, ok, err := c.Get(context.Background())

	assert.Error(t, err)
	assert.False(t, ok)
}

func TestConnect_Success(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := Connect(context.Background(), "redis://"+srv.Addr()+"/0")

	require.NoError(t, err)
	assert.NoError(t, client.Close())
}

func TestConnect_InvalidURL(t *testing.T) {
	_, err := Connect(context.Background(), "://nope")
	assert.Error(t, err)
}
