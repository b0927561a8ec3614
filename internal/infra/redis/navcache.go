package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/axiom-software-co/sitenav/internal/core/domain"
)

// NavCache stores navigation projections in Redis. Entries stay fresh for
// the freshness window and are retained longer so stale copies can serve
// as fallback while the platform API is unreachable.
type NavCache struct {
	rdb       *redis.Client
	freshFor  time.Duration
	retention time.Duration
}

// NewNavCache creates a navigation cache with the given freshness window
// and retention.
func NewNavCache(client *Client, freshFor, retention time.Duration) *NavCache {
	if retention < freshFor {
		retention = freshFor
	}
	return &NavCache{
		rdb:       client.rdb,
		freshFor:  freshFor,
		retention: retention,
	}
}

// Key helpers
func navigationKey() string {
	return "sitenav:navigation"
}

func servicesKey(category string) string {
	if category == "" {
		return "sitenav:services:all"
	}
	return fmt.Sprintf("sitenav:services:%s", category)
}

// entry wraps a cached payload with its storage time.
type entry[T any] struct {
	Data     T         `json:"data"`
	StoredAt time.Time `json:"stored_at"`
}

func getEntry[T any](ctx context.Context, c *NavCache, key string) (*T, bool, error) {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get failed: %w", err)
	}

	var e entry[T]
	if err := json.Unmarshal(val, &e); err != nil {
		return nil, false, fmt.Errorf("decode cache entry: %w", err)
	}

	fresh := time.Since(e.StoredAt) < c.freshFor
	return &e.Data, fresh, nil
}

func setEntry[T any](ctx context.Context, c *NavCache, key string, data T) error {
	val, err := json.Marshal(entry[T]{Data: data, StoredAt: time.Now()})
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := c.rdb.Set(ctx, key, val, c.retention).Err(); err != nil {
		return fmt.Errorf("set failed: %w", err)
	}
	return nil
}

// GetNavigation returns the cached navigation payload and whether it is
// still fresh. A nil payload means cache miss.
func (c *NavCache) GetNavigation(ctx context.Context) (*domain.NavigationData, bool, error) {
	return getEntry[domain.NavigationData](ctx, c, navigationKey())
}

// SetNavigation stores the navigation payload.
func (c *NavCache) SetNavigation(ctx context.Context, nav *domain.NavigationData) error {
	return setEntry(ctx, c, navigationKey(), *nav)
}

// GetServicesPage returns the cached services listing for a category
// filter and whether it is still fresh. A nil payload means cache miss.
func (c *NavCache) GetServicesPage(
	ctx context.Context,
	category string,
) (*domain.ServicesPage, bool, error) {
	return getEntry[domain.ServicesPage](ctx, c, servicesKey(category))
}

// SetServicesPage stores the services listing for a category filter.
func (c *NavCache) SetServicesPage(
	ctx context.Context,
	category string,
	page *domain.ServicesPage,
) error {
	return setEntry(ctx, c, servicesKey(category), *page)
}

// Flush removes all cached navigation projections.
func (c *NavCache) Flush(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, "sitenav:*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("del failed: %w", err)
	}
	return nil
}
