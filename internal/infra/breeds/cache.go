package breeds

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"doggywalk/internal/domain/service"

	"github.com/go-redis/redis/v8"
)

const (
	breedListKey         = "doggywalk:breeds"
	temperamentKeyPrefix = "doggywalk:breeds:temperament:"
)

// CachedCatalog serves catalog answers from redis. Redis failures are logged and
// the request goes to the wrapped catalog; only successful answers are cached.
type CachedCatalog struct {
	inner  service.BreedCatalog
	redis  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedCatalog wraps inner with a redis cache holding entries for ttl.
func NewCachedCatalog(inner service.BreedCatalog, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedCatalog {
	return &CachedCatalog{inner: inner, redis: client, ttl: ttl, logger: logger}
}

func (c *CachedCatalog) ListBreeds(ctx context.Context) ([]string, error) {
	if raw, ok := c.read(ctx, breedListKey); ok {
		var names []string
		if err := json.Unmarshal([]byte(raw), &names); err == nil {
			return names, nil
		}
	}

	names, err := c.inner.ListBreeds(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(names); err == nil {
		c.write(ctx, breedListKey, string(raw))
	}

	return names, nil
}

func (c *CachedCatalog) LookupTemperament(ctx context.Context, name string) (string, bool, error) {
	key := temperamentKeyPrefix + strings.ToLower(strings.TrimSpace(name))
	if temperament, ok := c.read(ctx, key); ok {
		return temperament, true, nil
	}

	temperament, found, err := c.inner.LookupTemperament(ctx, name)
	if err != nil || !found {
		return temperament, found, err
	}

	c.write(ctx, key, temperament)

	return temperament, true, nil
}

func (c *CachedCatalog) read(ctx context.Context, key string) (string, bool) {
	value, err := c.redis.Get(ctx, key).Result()
	if err == nil {
		return value, true
	}
	if err != redis.Nil {
		c.logger.WarnContext(ctx, "Breed cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	return "", false
}

func (c *CachedCatalog) write(ctx context.Context, key, value string) {
	if err := c.redis.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "Breed cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}
