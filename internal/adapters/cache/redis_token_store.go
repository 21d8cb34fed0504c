package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/apperrors"
	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	portsrepo "github.com/StoneLedger/crusher_books_app/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

// reportTokenKeyPrefix namespaces download tokens in the shared Redis keyspace.
const reportTokenKeyPrefix = "report_token:"

// RedisTokenStore is the ReportTokenStore for multi-instance deployments.
// Expiry rides on native Redis TTL and Take is atomic via GETDEL, so any
// instance can redeem a token issued by any other, still exactly once.
type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore creates a token store over an existing Redis client.
func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

// Ensure RedisTokenStore implements the port.
var _ portsrepo.ReportTokenStore = (*RedisTokenStore)(nil)

// Put stores the JSON-encoded spec under the token with Redis-managed TTL.
func (s *RedisTokenStore) Put(ctx context.Context, token string, spec domain.ReportSpec, ttl time.Duration) error {
	payload, err := json.Marshal(spec)
	if err != nil {
		return fmt.Errorf("failed to encode report spec: %w", err)
	}

	if err := s.client.Set(ctx, reportTokenKeyPrefix+token, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store download token in redis: %w", err)
	}
	return nil
}

// Take atomically fetches and deletes the token's spec.
func (s *RedisTokenStore) Take(ctx context.Context, token string) (*domain.ReportSpec, error) {
	payload, err := s.client.GetDel(ctx, reportTokenKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to take download token from redis: %w", err)
	}

	var spec domain.ReportSpec
	if err := json.Unmarshal(payload, &spec); err != nil {
		return nil, fmt.Errorf("failed to decode report spec: %w", err)
	}
	return &spec, nil
}

// Sweep is a no-op; Redis expires keys natively.
func (s *RedisTokenStore) Sweep(ctx context.Context) {}
