package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/keijiban/bulletin-board/internal/api/metrics"
	"github.com/keijiban/bulletin-board/internal/core/domain"
)

const feedKeyPrefix = "posts:feed:"

// PostCache is a short-lived read-through cache for the newest-first post
// feed. Entries are keyed per limit and dropped wholesale on any post write,
// so the feed is never more than one TTL stale.
type PostCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewPostCache returns a PostCache with the given entry TTL.
func NewPostCache(rdb *redis.Client, ttl time.Duration) *PostCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &PostCache{rdb: rdb, ttl: ttl}
}

// GetFeed returns the cached feed for limit, or nil on a miss.
func (c *PostCache) GetFeed(ctx context.Context, limit int) ([]*domain.Post, error) {
	b, err := c.rdb.Get(ctx, c.key(limit)).Bytes()
	if err == redis.Nil {
		metrics.FeedCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("feed cache get: %w", err)
	}
	var posts []*domain.Post
	if err := json.Unmarshal(b, &posts); err != nil {
		return nil, fmt.Errorf("feed cache decode: %w", err)
	}
	metrics.FeedCacheTotal.WithLabelValues("hit").Inc()
	return posts, nil
}

// SetFeed stores the feed for limit.
func (c *PostCache) SetFeed(ctx context.Context, limit int, posts []*domain.Post) error {
	b, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("feed cache encode: %w", err)
	}
	return c.rdb.Set(ctx, c.key(limit), b, c.ttl).Err()
}

// Invalidate removes every cached feed entry.
func (c *PostCache) Invalidate(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, feedKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *PostCache) key(limit int) string {
	return fmt.Sprintf("%s%d", feedKeyPrefix, limit)
}
