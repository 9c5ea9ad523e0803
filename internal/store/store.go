package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// ErrCollectionNotFound is returned by Read when no collection exists under
// the requested key.
var ErrCollectionNotFound = errors.New("collection not found")

// Store is a key/value store of whole JSON collections. Every key holds one
// serialized collection; reads and writes are wholesale, so concurrent
// writers to the same key resolve last-write-wins.
type Store interface {
	// Read returns the raw JSON blob stored under key, or
	// ErrCollectionNotFound.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write overwrites the collection stored under key.
	Write(ctx context.Context, key string, data []byte) error

	// Delete removes the collection stored under key. Deleting a missing key
	// is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists keys beginning with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Ping checks the health of the backing store.
	Ping(ctx context.Context) error

	// Close releases backing connections.
	Close() error
}

// ReadAll reads the collection under key as a slice of T. A missing key or a
// blob that fails to parse yields the empty slice; the failure is logged and
// never surfaced to the caller.
func ReadAll[T any](ctx context.Context, s Store, key string) []T {
	raw, err := s.Read(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCollectionNotFound) {
			slog.ErrorContext(ctx, "collection read failed, treating as empty", "key", key, "error", err)
		}
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.ErrorContext(ctx, "collection parse failed, treating as empty", "key", key, "error", err)
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// WriteAll serializes items and overwrites the collection under key.
func WriteAll[T any](ctx context.Context, s Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal collection %s: %w", key, err)
	}
	return s.Write(ctx, key, data)
}
