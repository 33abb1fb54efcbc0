// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// category.go caches the category list in Valkey. Categories change only
// through seeding or manual SQL, so a TTL plus explicit invalidation is
// enough to keep the cached list fresh.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"sharehub/internal/models"
)

const (
	// categoriesKey is the Valkey key holding the JSON-encoded category list.
	categoriesKey = "categories:all"

	// DefaultCategoryTTL is how long the category list stays cached.
	DefaultCategoryTTL = 10 * time.Minute
)

// CategoryCache stores the full category list in Valkey. Errors are logged
// and treated as misses so the database stays the source of truth.
type CategoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCategoryCache creates a category cache backed by the given client.
func NewCategoryCache(client *redis.Client, ttl time.Duration) *CategoryCache {
	if ttl == 0 {
		ttl = DefaultCategoryTTL
	}
	return &CategoryCache{client: client, ttl: ttl}
}

// Get returns the cached category list, or false on a miss.
func (c *CategoryCache) Get(ctx context.Context) ([]models.Category, bool) {
	val, err := c.client.Get(ctx, categoriesKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("category cache get error", "error", err)
		return nil, false
	}

	var categories []models.Category
	if err := json.Unmarshal(val, &categories); err != nil {
		slog.Warn("category cache decode error", "error", err)
		return nil, false
	}
	slog.Debug("category cache hit", "count", len(categories))
	return categories, true
}

// Set stores the category list with the configured TTL.
func (c *CategoryCache) Set(ctx context.Context, categories []models.Category) {
	data, err := json.Marshal(categories)
	if err != nil {
		slog.Warn("category cache encode error", "error", err)
		return
	}
	if err := c.client.Set(ctx, categoriesKey, data, c.ttl).Err(); err != nil {
		slog.Warn("category cache set error", "error", err)
	}
}

// Invalidate drops the cached list.
func (c *CategoryCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, categoriesKey).Err(); err != nil {
		slog.Warn("category cache invalidate error", "error", err)
		return
	}
	slog.Debug("category cache invalidated")
}
