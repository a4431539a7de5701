// Package checkpoint persists per-entity resume cursors so an
// interrupted import can pick up from the last fully persisted page
// instead of refetching everything.
package checkpoint

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Store records the next-page cursor per entity kind.
type Store interface {
	// Cursor returns the saved cursor for an entity kind, or "" when
	// none is saved.
	Cursor(ctx context.Context, entity string) (string, error)

	// SetCursor saves the cursor for an entity kind.
	SetCursor(ctx context.Context, entity, cursor string) error

	// Clear removes the cursor for an entity kind, marking its copy as
	// complete.
	Clear(ctx context.Context, entity string) error
}

const keyPrefix = "chatmesh:import:cursor:"

type redisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Store backed by Redis. Cursors survive
// process restarts.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

var _ Store = (*redisStore)(nil)

func (s *redisStore) Cursor(ctx context.Context, entity string) (string, error) {
	val, err := s.client.Get(ctx, keyPrefix+entity).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read checkpoint for %s: %w", entity, err)
	}
	return val, nil
}

func (s *redisStore) SetCursor(ctx context.Context, entity, cursor string) error {
	if err := s.client.Set(ctx, keyPrefix+entity, cursor, 0).Err(); err != nil {
		return fmt.Errorf("failed to save checkpoint for %s: %w", entity, err)
	}
	return nil
}

func (s *redisStore) Clear(ctx context.Context, entity string) error {
	if err := s.client.Del(ctx, keyPrefix+entity).Err(); err != nil {
		return fmt.Errorf("failed to clear checkpoint for %s: %w", entity, err)
	}
	return nil
}

type memoryStore struct {
	mu      sync.Mutex
	cursors map[string]string
}

// NewMemoryStore creates a Store that lives and dies with the process.
// Used when Redis is not configured.
func NewMemoryStore() Store {
	return &memoryStore{cursors: make(map[string]string)}
}

var _ Store = (*memoryStore)(nil)

func (s *memoryStore) Cursor(_ context.Context, entity string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursors[entity], nil
}

func (s *memoryStore) SetCursor(_ context.Context, entity, cursor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursors[entity] = cursor
	return nil
}

func (s *memoryStore) Clear(_ context.Context, entity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cursors, entity)
	return nil
}
