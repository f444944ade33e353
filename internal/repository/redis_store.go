package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/teksi-laju/service-booking/internal/domain"
)

// RedisStore keeps session state (draft booking, selected index) in Redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a RedisStore over an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get retrieves the value stored at key.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, domain.NewPersistenceError(fmt.Sprintf("redis get %s: %v", key, err))
	}
	return val, true, nil
}

// Set stores value at key without expiry; session keys are cleared
// explicitly by the booking flow.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return domain.NewPersistenceError(fmt.Sprintf("redis set %s: %v", key, err))
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return domain.NewPersistenceError(fmt.Sprintf("redis del %s: %v", key, err))
	}
	return nil
}
