package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore implements ListStore with in-memory storage.
// It mirrors Redis list semantics: a list that becomes empty is removed.
type MemoryStore struct {
	mu    sync.RWMutex
	lists map[string][]string
}

// NewMemoryStore creates a new MemoryStore instance.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		lists: make(map[string][]string),
	}
}

// Exists reports whether key holds a non-empty list.
func (s *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.lists[key]) > 0, nil
}

// Append pushes value onto the tail of the list.
func (s *MemoryStore) Append(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("append: %w", err)
	}

	if key == "" {
		return ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lists[key] = append(s.lists[key], value)

	return nil
}

// ReadAt returns the value at index.
func (s *MemoryStore) ReadAt(ctx context.Context, key string, index int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("read at: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.lists[key]
	if index < 0 || index >= len(list) {
		return "", ErrNotFound
	}

	return list[index], nil
}

// ReadAll returns a copy of the list.
func (s *MemoryStore) ReadAll(ctx context.Context, key string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read all: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.lists[key]
	values := make([]string, len(list))
	copy(values, list)

	return values, nil
}

// ReplaceAt overwrites the value at index.
func (s *MemoryStore) ReplaceAt(ctx context.Context, key string, index int, value string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("replace at: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.lists[key]
	if index < 0 || index >= len(list) {
		return ErrNotFound
	}

	list[index] = value

	return nil
}

// RemoveFirstMatch removes the first entry equal to value.
func (s *MemoryStore) RemoveFirstMatch(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("remove first match: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.lists[key]
	for i, v := range list {
		if v != value {
			continue
		}

		list = append(list[:i:i], list[i+1:]...)
		if len(list) == 0 {
			delete(s.lists, key)
		} else {
			s.lists[key] = list
		}
		return nil
	}

	return ErrNotFound
}

// DeleteKey drops the list stored under key.
func (s *MemoryStore) DeleteKey(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("delete key: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.lists, key)

	return nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
