package redisstate

// Package redisstate provides a Redis-backed StateStore for deployments
// where portal state must survive process restarts on another host.

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tpo-portal/tpo-ui-api/internal/ports"
)

// Store persists portal state keys in Redis under a common prefix.
type Store struct {
	client redis.UniversalClient
	prefix string
}

// New creates a Redis state store with the default "portal:" prefix.
func New(client redis.UniversalClient) *Store {
	return &Store{client: client, prefix: "portal:"}
}

// NewWithPrefix creates a Redis state store with a custom key prefix.
func NewWithPrefix(client redis.UniversalClient, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrKeyNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
