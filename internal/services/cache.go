package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/localboost/localboost-backend/internal/database"
)

const (
	// CacheKeyPrefix is the Redis key prefix for cached responses.
	CacheKeyPrefix = "cache:"
	// DirectoryCacheTTL keeps listing responses fresh enough that a new
	// review shows up quickly even if invalidation is missed.
	DirectoryCacheTTL = 60 * time.Second
	// StaticCacheTTL is for data that only changes at seed time
	// (categories, deals).
	StaticCacheTTL = 5 * time.Minute
)

// CacheService provides JSON response caching on Redis. A Redis failure is a
// cache miss, never a request failure.
type CacheService struct{}

// Get retrieves a value from cache.
func (c *CacheService) Get(key string, dest interface{}) (bool, error) {
	ctx := context.Background()

	val, err := database.RedisClient.Get(ctx, CacheKeyPrefix+key).Result()
	if err != nil {
		return false, nil // Cache miss, not an error
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetWithTTL stores a value in cache.
func (c *CacheService) SetWithTTL(key string, value interface{}, ttl time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	ctx := context.Background()
	return database.RedisClient.Set(ctx, CacheKeyPrefix+key, jsonData, ttl).Err()
}

// Delete removes a value from cache.
func (c *CacheService) Delete(key string) error {
	ctx := context.Background()
	return database.RedisClient.Del(ctx, CacheKeyPrefix+key).Err()
}

// DeleteByPrefix removes every cached value under a key prefix. Used to drop
// all business-listing pages when a review lands.
func (c *CacheService) DeleteByPrefix(prefix string) error {
	ctx := context.Background()
	iter := database.RedisClient.Scan(ctx, 0, CacheKeyPrefix+prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		database.RedisClient.Del(ctx, iter.Val())
	}
	return iter.Err()
}
