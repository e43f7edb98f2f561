package auth

import (
	"context"
	"sync"
	"time"

	"doggywalk/internal/domain/service"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

const revokedKeyPrefix = "doggywalk:revoked:"

// NewTokenRevoker stores revocations in redis when a client is available and in
// process memory otherwise.
func NewTokenRevoker(client *redis.Client) service.TokenRevoker {
	if client == nil {
		return newMemoryRevoker(time.Now)
	}

	return &redisRevoker{client: client}
}

// redisRevoker keeps one key per revoked token, expiring with the token itself.
type redisRevoker struct {
	client *redis.Client
}

func (r *redisRevoker) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := r.client.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to store revoked token")
	}

	return nil
}

func (r *redisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, errors.Wrap(err, "failed to check revoked token")
	}

	return n > 0, nil
}

// memoryRevoker is the single-instance fallback. Entries are pruned on write once
// their token has expired.
type memoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func newMemoryRevoker(now func() time.Time) *memoryRevoker {
	return &memoryRevoker{revoked: make(map[string]time.Time), now: now}
}

func (r *memoryRevoker) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, exp := range r.revoked {
		if !exp.After(now) {
			delete(r.revoked, id)
		}
	}
	if expiresAt.After(now) {
		r.revoked[tokenID] = expiresAt
	}

	return nil
}

func (r *memoryRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	exp, ok := r.revoked[tokenID]

	return ok && exp.After(r.now()), nil
}
