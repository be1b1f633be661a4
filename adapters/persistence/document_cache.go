package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spotme/spotme-api/internal/application/service"
	"github.com/spotme/spotme-api/internal/domain/portfolio"
)

type redisDocumentCache struct {
	rdb *redis.Client
}

func NewRedisDocumentCache(rdb *redis.Client) service.DocumentCache {
	return &redisDocumentCache{rdb: rdb}
}

func publishedKey(slug string) string {
	return "portfolio:published:" + slug
}

func (c *redisDocumentCache) GetPublished(ctx context.Context, slug string) (*portfolio.Record, error) {
	data, err := c.rdb.Get(ctx, publishedKey(slug)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read published portfolio from cache: %w", err)
	}

	rec := &portfolio.Record{}
	if err := json.Unmarshal(data, rec); err != nil {
		// stale shape from an older deploy, treat as a miss
		return nil, nil
	}
	return rec, nil
}

func (c *redisDocumentCache) SetPublished(ctx context.Context, rec *portfolio.Record, ttl time.Duration) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal published portfolio: %w", err)
	}
	if err := c.rdb.Set(ctx, publishedKey(rec.Slug), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache published portfolio: %w", err)
	}
	return nil
}

func (c *redisDocumentCache) InvalidatePublished(ctx context.Context, slug string) error {
	if err := c.rdb.Del(ctx, publishedKey(slug)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate published portfolio: %w", err)
	}
	return nil
}
