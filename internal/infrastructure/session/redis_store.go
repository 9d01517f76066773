package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gabbai/backend/internal/domain/scanning"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "scan:state:"

// RedisStateStore implements StateStore using Redis. This is suitable for
// deployments where several backend instances serve the same scanners.
type RedisStateStore struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisStateStore creates a new Redis-backed scan state store
func NewRedisStateStore(cfg RedisConfig) (*RedisStateStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStateStore{
		client:    client,
		keyPrefix: defaultKeyPrefix,
	}, nil
}

// NewRedisStateStoreWithClient creates a store with an existing Redis client
func NewRedisStateStoreWithClient(client *redis.Client, keyPrefix string) *RedisStateStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisStateStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get loads the session state of an operator
func (s *RedisStateStore) Get(ctx context.Context, operatorID string) (scanning.SessionState, bool, error) {
	payload, err := s.client.Get(ctx, s.keyPrefix+operatorID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return scanning.SessionState{}, false, nil
		}
		return scanning.SessionState{}, false, fmt.Errorf("failed to load scan state: %w", err)
	}

	var state scanning.SessionState
	if err := json.Unmarshal(payload, &state); err != nil {
		return scanning.SessionState{}, false, fmt.Errorf("failed to decode scan state: %w", err)
	}
	return state, true, nil
}

// Put stores the session state of an operator with a TTL
func (s *RedisStateStore) Put(ctx context.Context, operatorID string, state scanning.SessionState, ttl time.Duration) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode scan state: %w", err)
	}
	if err := s.client.Set(ctx, s.keyPrefix+operatorID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store scan state: %w", err)
	}
	return nil
}

// Delete removes the session state of an operator
func (s *RedisStateStore) Delete(ctx context.Context, operatorID string) error {
	if err := s.client.Del(ctx, s.keyPrefix+operatorID).Err(); err != nil {
		return fmt.Errorf("failed to delete scan state: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisStateStore) Close() error {
	return s.client.Close()
}

// Ensure RedisStateStore implements StateStore
var _ scanning.StateStore = (*RedisStateStore)(nil)
