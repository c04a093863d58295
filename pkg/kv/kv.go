// Package kv provides the persistent key-value backends the journal is stored
// in. Keys are namespaced with ':' (for example "diary:index").
package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Separator splits a key into its namespace parts.
const Separator = ":"

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("kv: store closed")

// Reader is the read half of a Store.
type Reader interface {
	// Get returns the value for key and whether it exists. A missing key is
	// not an error.
	Get(key string) (string, bool, error)
}

// Writer is the write half of a Store.
type Writer interface {
	Set(key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
}

// Store is a persistent string key-value facility.
type Store interface {
	Reader
	Writer
	// Keys lists every key starting with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// Batcher is implemented by backends that can apply several writes
// atomically.
type Batcher interface {
	Batch(fn func(w Writer) error) error
}

// EventType describes a change notification.
type EventType int

const (
	// EventKeyChanged indicates a single key was written or removed.
	EventKeyChanged EventType = iota
	// EventInvalidated indicates the change could not be attributed to a key
	// and callers should reload everything they care about.
	EventInvalidated
)

// Event is emitted by Watcher.Watch.
type Event struct {
	Type EventType
	Key  string
}

// Watcher is implemented by backends that can report external changes.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

// Open returns the backend named by kind rooted at path.
func Open(kind, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "diskv":
		return NewDiskv(path)
	case "sqlite", "sqlite3":
		return OpenSQLite(path)
	case "memory", "mem":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("kv: unknown backend %q", kind)
	}
}

func splitKey(key string) ([]string, string) {
	parts := strings.Split(key, Separator)
	return parts[:len(parts)-1], parts[len(parts)-1]
}
