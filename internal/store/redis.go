package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions holds the connection settings for RedisStore.
type RedisOptions struct {
	// URL is a redis:// connection string. It takes priority over Addr.
	URL      string
	Addr     string
	Password string
	DB       int
	// Timeout bounds dialing, reads and writes on the connection.
	Timeout time.Duration
}

// RedisStore implements ListStore on top of Redis lists.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a RedisStore from connection options.
// The connection is established lazily by the client pool.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	clientOpts, err := opts.clientOptions()
	if err != nil {
		return nil, err
	}

	return NewRedisStoreWithClient(redis.NewClient(clientOpts)), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (o RedisOptions) clientOptions() (*redis.Options, error) {
	var clientOpts *redis.Options

	if o.URL != "" {
		parsed, err := redis.ParseURL(o.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		clientOpts = parsed
	} else {
		clientOpts = &redis.Options{
			Addr:     o.Addr,
			Password: o.Password,
			DB:       o.DB,
		}
	}

	if o.Timeout > 0 {
		clientOpts.DialTimeout = o.Timeout
		clientOpts.ReadTimeout = o.Timeout
		clientOpts.WriteTimeout = o.Timeout
	}

	return clientOpts, nil
}

// Exists reports whether key holds a non-empty list.
// Redis removes a list key once its last element is gone.
func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("exists %q: %w", key, err)
	}
	return n > 0, nil
}

// Append pushes value onto the tail of the list.
func (s *RedisStore) Append(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrInvalidKey
	}

	if err := s.client.RPush(ctx, key, value).Err(); err != nil {
		return fmt.Errorf("append %q: %w", key, err)
	}
	return nil
}

// ReadAt returns the value at index.
func (s *RedisStore) ReadAt(ctx context.Context, key string, index int) (string, error) {
	// LINDEX treats negative indexes as offsets from the tail.
	if index < 0 {
		return "", ErrNotFound
	}

	value, err := s.client.LIndex(ctx, key, int64(index)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read %q[%d]: %w", key, index, err)
	}
	return value, nil
}

// ReadAll returns every value in the list.
func (s *RedisStore) ReadAll(ctx context.Context, key string) ([]string, error) {
	values, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read all %q: %w", key, err)
	}
	return values, nil
}

// ReplaceAt overwrites the value at index.
func (s *RedisStore) ReplaceAt(ctx context.Context, key string, index int, value string) error {
	if index < 0 {
		return ErrNotFound
	}

	err := s.client.LSet(ctx, key, int64(index), value).Err()
	if err != nil {
		if isOutOfRange(err) {
			return ErrNotFound
		}
		return fmt.Errorf("replace %q[%d]: %w", key, index, err)
	}
	return nil
}

// RemoveFirstMatch removes the first entry equal to value.
func (s *RedisStore) RemoveFirstMatch(ctx context.Context, key, value string) error {
	removed, err := s.client.LRem(ctx, key, 1, value).Result()
	if err != nil {
		return fmt.Errorf("remove from %q: %w", key, err)
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteKey drops the list stored under key.
func (s *RedisStore) DeleteKey(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Ping checks connectivity to Redis.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// isOutOfRange matches the errors LSET returns for a bad index or missing key.
func isOutOfRange(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "index out of range") || strings.Contains(msg, "no such key")
}
