// Package store provides the per-channel list storage used by the command executor.
package store

import (
	"context"
	"errors"
)

// Store errors.
var (
	ErrNotFound   = errors.New("list item not found")
	ErrInvalidKey = errors.New("invalid list key")
)

// ListStore defines an ordered list of strings addressed by a channel key.
// Indexes are 0-based. A key whose list is empty does not exist.
type ListStore interface {
	// Exists reports whether the list stored under key has at least one entry.
	Exists(ctx context.Context, key string) (bool, error)

	// Append pushes value onto the tail of the list, creating it if needed.
	Append(ctx context.Context, key, value string) error

	// ReadAt returns the value at index or ErrNotFound when index is out of range.
	ReadAt(ctx context.Context, key string, index int) (string, error)

	// ReadAll returns every value in insertion order.
	ReadAll(ctx context.Context, key string) ([]string, error)

	// ReplaceAt overwrites the value at index in place.
	ReplaceAt(ctx context.Context, key string, index int, value string) error

	// RemoveFirstMatch removes the first entry equal to value.
	RemoveFirstMatch(ctx context.Context, key, value string) error

	// DeleteKey drops the whole list.
	DeleteKey(ctx context.Context, key string) error
}

// Pinger is implemented by stores that can report their connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}
