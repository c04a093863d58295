package kv

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Memory is a volatile Store. Batches are applied to a copy and swapped in, so
// a failing batch leaves the store untouched.
type Memory struct {
	mu     sync.Mutex
	data   map[string]string
	closed bool
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.data[key] = value
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.data, key)
	return nil
}

func (m *Memory) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *Memory) Batch(fn func(w Writer) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	staged := &mapWriter{data: make(map[string]string, len(m.data))}
	for k, v := range m.data {
		staged.data[k] = v
	}
	if err := fn(staged); err != nil {
		return err
	}
	m.data = staged.data
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

type mapWriter struct {
	data map[string]string
}

func (w *mapWriter) Set(key, value string) error {
	w.data[key] = value
	return nil
}

func (w *mapWriter) Remove(key string) error {
	delete(w.data, key)
	return nil
}
