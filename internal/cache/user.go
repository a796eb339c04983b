package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fitlog/fitlog/internal/model"
)

// Cache key prefixes and TTLs.
const (
	userKeyPrefix     = "user:"
	negCacheKeySuffix = ":neg"

	// DefaultUserTTL is the TTL for cached user data.
	DefaultUserTTL = 24 * time.Hour

	// NegativeCacheTTL is the TTL for negative cache entries.
	NegativeCacheTTL = 5 * time.Minute
)

// Common cache errors.
var (
	ErrCacheMiss = errors.New("cache miss")
)

// GetUser retrieves a user from cache by ID.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetUser(ctx context.Context, id string) (*model.CachedUser, error) {
	key := userKeyPrefix + id

	result, err := c.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall failed: %w", err)
	}

	if len(result) == 0 {
		return nil, ErrCacheMiss
	}

	cached := &model.CachedUser{
		Username:  result["username"],
		CreatedAt: result["created_at"],
	}

	return cached, nil
}

// SetUser stores a user in cache with the given TTL.
// A ttl of zero falls back to DefaultUserTTL.
func (c *Cache) SetUser(ctx context.Context, user *model.User, ttl time.Duration) error {
	key := userKeyPrefix + user.ID
	cached := user.ToCachedUser()

	if ttl <= 0 {
		ttl = DefaultUserTTL
	}

	fields := map[string]any{
		"username":   cached.Username,
		"created_at": cached.CreatedAt,
	}

	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, ttl)
	pipe.Del(ctx, key+negCacheKeySuffix)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache user: %w", err)
	}

	return nil
}

// SetNegativeUser marks a user ID as known-absent for a short window.
func (c *Cache) SetNegativeUser(ctx context.Context, id string) error {
	key := userKeyPrefix + id + negCacheKeySuffix

	if err := c.client.Set(ctx, key, "1", NegativeCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set negative cache: %w", err)
	}

	return nil
}

// IsNegativelyCached reports whether a user ID is marked as absent.
func (c *Cache) IsNegativelyCached(ctx context.Context, id string) (bool, error) {
	key := userKeyPrefix + id + negCacheKeySuffix

	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists failed: %w", err)
	}

	return n > 0, nil
}
