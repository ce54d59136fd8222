package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Service is the cache-aside surface shared by the read endpoints.
// Listing and stats handlers only ever read through GetOrSet and
// invalidate by key pattern, so that is the whole contract.
type Service interface {
	// GetOrSet reads a cached value into dest, or on a miss runs the
	// fetcher, stores its result under key with the given TTL, and
	// decodes it into dest. Cache errors degrade to a direct fetch.
	GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error

	// DeletePattern drops every key matching the glob pattern. Used by
	// writes that invalidate a whole listing family at once.
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error
}

type service struct {
	client *redis.Client
}

func NewService(client *redis.Client) Service {
	return &service{client: client}
}

func (s *service) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	// A miss, a transport error, and a corrupt entry all degrade to a
	// direct fetch; Redis never takes the read path down with it
	raw, err := s.client.Get(ctx, key).Result()
	if err == nil {
		if json.Unmarshal([]byte(raw), dest) == nil {
			return nil
		}
	}

	data, err := fetcher()
	if err != nil {
		return fmt.Errorf("fetcher error: %w", err)
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}

	// Best-effort write-back; the fetched value is served either way
	s.client.Set(ctx, key, encoded, ttl)

	return json.Unmarshal(encoded, dest)
}

func (s *service) DeletePattern(ctx context.Context, pattern string) error {
	// SCAN instead of KEYS so invalidation never blocks the server
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()

	keys := make([]string, 0, 32)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys for %q: %w", pattern, err)
	}

	if len(keys) > 0 {
		if err := s.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to delete %d keys for %q: %w", len(keys), pattern, err)
		}
	}

	return nil
}

func (s *service) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
