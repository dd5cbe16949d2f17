package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return mr, client
}

func TestBrandCache_SetAndGet(t *testing.T) {
	mr, client := setupTestRedis(t)
	c := NewBrandCache(client, time.Minute)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "brands:in-stock")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "brands:in-stock", []string{"Chanel", "Dior"}))

	brands, ok, err := c.Get(ctx, "brands:in-stock")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"Chanel", "Dior"}, brands)

	assert.True(t, mr.Exists("decant:catalog:brands:in-stock"))
	assert.Equal(t, time.Minute, mr.TTL("decant:catalog:brands:in-stock"))
}

func TestBrandCache_EmptyListIsCached(t *testing.T) {
	_, client := setupTestRedis(t)
	c := NewBrandCache(client, 0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "brands:all", nil))

	brands, ok, err := c.Get(ctx, "brands:all")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, brands)
}

func TestBrandCache_Expiry(t *testing.T) {
	mr, client := setupTestRedis(t)
	c := NewBrandCache(client, 0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "brands:all", []string{"Creed"}))
	mr.FastForward(DefaultTTL + time.Second)

	_, ok, err := c.Get(ctx, "brands:all")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBrandCache_CorruptValue(t *testing.T) {
	mr, client := setupTestRedis(t)
	c := NewBrandCache(client, 0)

	require.NoError(t, mr.Set("decant:catalog:brands:all", "not json"))

	_, ok, err := c.Get(context.Background(), "brands:all")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestBrandCache_Invalidate(t *testing.T) {
	mr, client := setupTestRedis(t)
	c := NewBrandCache(client, 0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "brands:all", []string{"Creed"}))
	require.NoError(t, c.Set(ctx, "brands:in-stock", []string{"Creed"}))
	require.NoError(t, c.Invalidate(ctx, "brands:all", "brands:in-stock"))

	assert.False(t, mr.Exists("decant:catalog:brands:all"))
	assert.False(t, mr.Exists("decant:catalog:brands:in-stock"))
	assert.NoError(t, c.Invalidate(ctx))
}

func TestBrandCache_ServerDown(t *testing.T) {
	mr, client := setupTestRedis(t)
	c := NewBrandCache(client, 0)
	mr.Close()

	_, _, err := c.Get(context.Background(), "brands:all")
	assert.Error(t, err)
	assert.Error(t, c.Set(context.Background(), "brands:all", []string{"Dior"}))
}

func TestConnect(t *testing.T) {
	mr, _ := setupTestRedis(t)

	client, err := Connect(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	defer client.Close()

	_, err = Connect(context.Background(), "not a url")
	assert.Error(t, err)
}
