package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewRedisCache(NewRedisClient(mr.Addr(), "", 0))
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

type profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestRedisCache_SetGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Connect(ctx))
	require.NoError(t, c.Set(ctx, "user:1", profile{ID: "1", Name: "Sara"}, time.Minute))

	var got profile
	found, err := c.Get(ctx, "user:1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Sara", got.Name)
}

func TestRedisCache_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	var got profile
	found, err := c.Get(context.Background(), "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, got.ID)
}

func TestRedisCache_ExistsExpiresAndDelete(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "revoked:abc", true, 10*time.Second))
	ok, err := c.Exists(ctx, "revoked:abc")
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(11 * time.Second)
	ok, err = c.Exists(ctx, "revoked:abc")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", 1, 0))
	require.NoError(t, c.Delete(ctx, "k"))
	ok, _ = c.Exists(ctx, "k")
	assert.False(t, ok)

	assert.NoError(t, c.Delete(ctx))
}

func TestRedisCache_PingFailsWhenDown(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, c.Ping(context.Background()))

	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}
