package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordpress-posts/internal/common/logger"
	"wordpress-posts/internal/common/metrics"
	"wordpress-posts/internal/models"
)

func setupCache(t *testing.T) (*PostCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewPostCache(rdb, time.Minute, logger.NewTestLogger(t)), mr
}

func TestPostCache_RoundTrip(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()
	site := "https://blog.example.com"

	_, ok := c.Get(ctx, site, 12)
	assert.False(t, ok)

	post := &models.Post{ID: 12, Status: models.StatusPublish, Title: models.Rendered{Rendered: "Cached"}}
	require.NoError(t, c.Set(ctx, site, post))

	assert.True(t, mr.Exists("wp:post:https://blog.example.com:12"))
	assert.Equal(t, time.Minute, mr.TTL("wp:post:https://blog.example.com:12"))

	hitsBefore := testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("hit"))
	got, ok := c.Get(ctx, site, 12)
	require.True(t, ok)
	assert.Equal(t, "Cached", got.Title.Rendered)
	assert.Equal(t, hitsBefore+1, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("hit")))

	require.NoError(t, c.Invalidate(ctx, site, 12))
	_, ok = c.Get(ctx, site, 12)
	assert.False(t, ok)
}

func TestPostCache_Expiry(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "s", &models.Post{ID: 1}))
	mr.FastForward(2 * time.Minute)

	_, ok := c.Get(ctx, "s", 1)
	assert.False(t, ok)
}

func TestPostCache_CorruptEntryIsMiss(t *testing.T) {
	c, mr := setupCache(t)
	require.NoError(t, mr.Set(Key("s", 3), "{not json"))

	_, ok := c.Get(context.Background(), "s", 3)
	assert.False(t, ok)
}

func TestPostCache_RedisDownIsMiss(t *testing.T) {
	c, mr := setupCache(t)
	mr.Close()

	_, ok := c.Get(context.Background(), "s", 3)
	assert.False(t, ok)
	assert.Error(t, c.Set(context.Background(), "s", &models.Post{ID: 3}))
}

func TestPostCache_NilIsNoop(t *testing.T) {
	var c *PostCache
	_, ok := c.Get(context.Background(), "s", 1)
	assert.False(t, ok)
	assert.NoError(t, c.Set(context.Background(), "s", &models.Post{ID: 1}))
	assert.NoError(t, c.Invalidate(context.Background(), "s", 1))
}
