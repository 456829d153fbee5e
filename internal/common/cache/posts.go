// Package cache keeps recently read posts in redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"wordpress-posts/internal/common/logger"
	"wordpress-posts/internal/common/metrics"
	"wordpress-posts/internal/models"
)

const keyPrefix = "wp:post:"

// PostCache is a read-through cache for single posts. A nil *PostCache is
// valid and caches nothing.
type PostCache struct {
	client *redis.Client
	ttl    time.Duration
	log    logger.Logger
}

func NewPostCache(client *redis.Client, ttl time.Duration, log logger.Logger) *PostCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &PostCache{client: client, ttl: ttl, log: log}
}

func Key(siteURL string, id int64) string {
	return fmt.Sprintf("%s%s:%d", keyPrefix, siteURL, id)
}

// Get returns the cached post. Redis errors count as a miss.
func (c *PostCache) Get(ctx context.Context, siteURL string, id int64) (*models.Post, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, Key(siteURL, id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("post cache read failed", map[string]interface{}{"post_id": id, "error": err})
			metrics.CacheLookups.WithLabelValues("error").Inc()
			return nil, false
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}

	var post models.Post
	if err := json.Unmarshal(raw, &post); err != nil {
		c.log.Warn("discarding undecodable cached post", map[string]interface{}{"post_id": id, "error": err})
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return nil, false
	}

	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return &post, true
}

func (c *PostCache) Set(ctx context.Context, siteURL string, post *models.Post) error {
	if c == nil || post == nil {
		return nil
	}
	raw, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("failed to encode post: %w", err)
	}
	if err := c.client.Set(ctx, Key(siteURL, post.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache post %d: %w", post.ID, err)
	}
	return nil
}

func (c *PostCache) Invalidate(ctx context.Context, siteURL string, id int64) error {
	if c == nil {
		return nil
	}
	if err := c.client.Del(ctx, Key(siteURL, id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate post %d: %w", id, err)
	}
	return nil
}
