package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ekolek/ekolek/internal/pkg/models"
	"github.com/go-redis/redis/v8"
)

// RedisClient represents a Redis client
type RedisClient struct {
	Client *redis.Client
}

// NewRedisClient creates a new Redis client
func NewRedisClient(config models.RedisConfig) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
		PoolSize: config.PoolSize,
	})

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{Client: client}, nil
}

// GetClient returns the underlying Redis client
func (r *RedisClient) GetClient() *redis.Client {
	return r.Client
}

// Set stores a key-value pair with an optional expiration
func (r *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.Client.Set(ctx, key, value, expiration).Err()
}

// Get retrieves a value by key
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	return r.Client.Get(ctx, key).Result()
}

// Delete removes a key
func (r *RedisClient) Delete(ctx context.Context, key string) error {
	return r.Client.Del(ctx, key).Err()
}

// HSetMap stores multiple fields on a hash and refreshes its expiration
func (r *RedisClient) HSetMap(ctx context.Context, key string, values map[string]string, expiration time.Duration) error {
	args := make([]interface{}, 0, len(values)*2)
	for k, v := range values {
		args = append(args, k, v)
	}
	if err := r.Client.HSet(ctx, key, args...).Err(); err != nil {
		return err
	}
	if expiration > 0 {
		return r.Client.Expire(ctx, key, expiration).Err()
	}
	return nil
}

// HGetAll retrieves all fields of a hash
func (r *RedisClient) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return r.Client.HGetAll(ctx, key).Result()
}

// HGet retrieves a single field of a hash
func (r *RedisClient) HGet(ctx context.Context, key, field string) (string, error) {
	return r.Client.HGet(ctx, key, field).Result()
}

// HDel removes fields from a hash
func (r *RedisClient) HDel(ctx context.Context, key string, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return r.Client.HDel(ctx, key, fields...).Err()
}

// ReplaceHashFunc atomically rewrites the full contents of a hash. The
// current fields are read under WATCH and passed to transform; its
// result replaces the hash in the same transaction, so a concurrent
// write between read and swap aborts the transaction instead of being
// silently overwritten. Transform returns false to leave the hash
// untouched. Callers should retry on ErrTxConflict; transform runs
// again against a fresh read on every attempt.
func (r *RedisClient) ReplaceHashFunc(ctx context.Context, key string, transform func(current map[string]string) (map[string]string, bool), expiration time.Duration) error {
	err := r.Client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return err
		}

		values, ok := transform(current)
		if !ok {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			if len(values) > 0 {
				args := make([]interface{}, 0, len(values)*2)
				for k, v := range values {
					args = append(args, k, v)
				}
				pipe.HSet(ctx, key, args...)
				if expiration > 0 {
					pipe.Expire(ctx, key, expiration)
				}
			}
			return nil
		})
		return err
	}, key)
	if err == redis.TxFailedErr {
		return ErrTxConflict
	}
	return err
}

// ErrTxConflict is returned when an optimistic transaction lost the race
// against a concurrent write to the same key.
var ErrTxConflict = fmt.Errorf("redis transaction conflict")

// Close closes the Redis client
func (r *RedisClient) Close() error {
	return r.Client.Close()
}
