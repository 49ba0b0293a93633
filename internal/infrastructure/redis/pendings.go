package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lead-capture-api/internal/config"
	"github.com/lead-capture-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Redis key prefix for pending verifications.
const pendingKeyPrefix = "otp:pending:"

// PendingStore is a Redis-backed pending-verification store. SET with EX
// gives replace-on-reissue and expiry reaping in one round trip; the
// workflow still performs its own lazy expiry check against ExpiresAt.
type PendingStore struct {
	client *redis.Client
}

// NewPendingStore connects to Redis and verifies the connection with a ping.
func NewPendingStore(cfg *config.Config) (*PendingStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &PendingStore{client: client}, nil
}

func (s *PendingStore) Put(ctx context.Context, p *domain.PendingVerification) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal pending verification: %w", err)
	}
	ttl := time.Until(time.Unix(p.ExpiresAt, 0))
	if ttl <= 0 {
		return fmt.Errorf("pending verification already expired")
	}
	return s.client.Set(ctx, pendingKeyPrefix+p.SessionID, b, ttl).Err()
}

func (s *PendingStore) Get(ctx context.Context, sessionID string) (*domain.PendingVerification, error) {
	b, err := s.client.Get(ctx, pendingKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("pending verification not found: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var p domain.PendingVerification
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("unmarshal pending verification: %w", err)
	}
	return &p, nil
}

func (s *PendingStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, pendingKeyPrefix+sessionID).Err()
}

// Close releases the underlying Redis connection pool.
func (s *PendingStore) Close() error {
	return s.client.Close()
}
