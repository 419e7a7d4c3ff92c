package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "uwrite:"

// Store caches JSON-serializable read projections.
//
// Every Invalidate bumps a generation counter. A reader takes the generation
// before loading from the database and hands it to Set, which drops the
// write when an invalidation happened in between, so a projection loaded
// before a mutation is never stored after it.
type Store interface {
	// Get loads key into dst and reports whether it was present
	Get(ctx context.Context, key string, dst any) (bool, error)
	// Generation returns the current invalidation generation
	Generation(ctx context.Context) (int64, error)
	// Set stores value unless the generation moved past gen
	Set(ctx context.Context, key string, value any, gen int64) error
	Invalidate(ctx context.Context, keys ...string) error
}

// PublicListKey is the key of the public project listing
func PublicListKey() string {
	return keyPrefix + "public:projects"
}

func generationKey() string {
	return keyPrefix + "public:generation"
}

// PublicProjectKey is the key of one public project projection
func PublicProjectKey(projectID string) string {
	return fmt.Sprintf("%spublic:project:%s", keyPrefix, projectID)
}

// RedisStore handles cache storage in Redis
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to redisURL and verifies the connection
func NewRedisStore(redisURL string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Get loads a cached value
func (s *RedisStore) Get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return true, nil
}

// Generation reads the invalidation counter; a missing counter is 0
func (s *RedisStore) Generation(ctx context.Context) (int64, error) {
	return readGeneration(ctx, s.client)
}

// getter is the read side shared by *redis.Client and *redis.Tx
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, c getter) (int64, error) {
	gen, err := c.Get(ctx, generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	return gen, nil
}

// Set stores a value with the store's TTL. The generation key is watched so
// an Invalidate racing with the write aborts it.
func (s *RedisStore) Set(ctx context.Context, key string, value any, gen int64) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx)
		if err != nil {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		return err
	}, generationKey())
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// Invalidate bumps the generation and removes keys in one transaction
func (s *RedisStore) Invalidate(ctx context.Context, keys ...string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey())
		if len(keys) > 0 {
			pipe.Del(ctx, keys...)
		}
		return nil
	})
	return err
}

// NopStore never caches anything
type NopStore struct{}

func (NopStore) Get(context.Context, string, any) (bool, error) { return false, nil }
func (NopStore) Generation(context.Context) (int64, error)      { return 0, nil }
func (NopStore) Set(context.Context, string, any, int64) error  { return nil }
func (NopStore) Invalidate(context.Context, ...string) error    { return nil }
