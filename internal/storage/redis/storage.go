package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/teamdraft/internal/model"
	"github.com/mcoot/teamdraft/internal/storage"
)

// Storage keeps session preferences as plain Redis strings under
// "<prefix>:kv:<key>".
type Storage struct {
	client *redis.Client
	prefix string
	cfg    Config
}

var _ storage.Storage = (*Storage)(nil)

// New connects to cfg.URL and pings it before returning
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().DialTimeout
	}
	opts.DialTimeout = timeout

	s := NewWithClient(redis.NewClient(opts), cfg)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.Ping(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// NewWithClient wraps an existing client without checking the connection
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = DefaultConfig().KeyPrefix
	}
	return &Storage{client: client, prefix: prefix, cfg: cfg}
}

// Ping checks that the server is reachable
func (s *Storage) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (s *Storage) Close() error {
	return s.client.Close()
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.kvKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, model.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.kvKey(key), value, s.cfg.TTL).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *Storage) kvKey(key string) string {
	return s.prefix + ":kv:" + key
}
