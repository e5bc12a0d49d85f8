package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const assessmentKeyPrefix = "assessment:"

// RedisAssessmentCache stores free-text route assessments in Redis with a
// per-entry TTL, since weather assessments go stale.
type RedisAssessmentCache struct {
	client *redis.Client
}

func NewRedisAssessmentCache(client *redis.Client) *RedisAssessmentCache {
	return &RedisAssessmentCache{client: client}
}

// Fetch the cached assessment for a key. An expired or absent entry is a
// miss, not an error.
func (c *RedisAssessmentCache) Get(ctx context.Context, key string) (string, bool, error) {
	if c.client == nil {
		return "", false, errors.New("assessment cache: client is nil")
	}

	if strings.TrimSpace(key) == "" {
		return "", false, errors.New("get assessment cache: key must not be empty")
	}

	val, err := c.client.Get(ctx, assessmentKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get assessment cache key=%q: %w", key, err)
	}

	return val, true, nil
}

// Store one assessment under the key with the given TTL.
func (c *RedisAssessmentCache) Put(ctx context.Context, key string, assessment string, ttl time.Duration) error {
	if c.client == nil {
		return errors.New("assessment cache: client is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert assessment cache: key must not be empty")
	}

	if err := c.client.Set(ctx, assessmentKeyPrefix+key, assessment, ttl).Err(); err != nil {
		return fmt.Errorf("insert assessment cache key=%q: %w", key, err)
	}

	return nil
}
