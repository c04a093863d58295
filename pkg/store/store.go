// Package store persists journal entries keyed by date, alongside an index of
// the dates that have an entry.
//
// Layout inside the key-value backend:
//
//	diary:index        JSON array of dates with an entry
//	diary:YYYY-MM-DD   entry text
//
// The index is a cache of which entry keys exist. Writes are ordered so that a
// crash can leave an entry missing from the index, never an indexed date
// without an entry; Reindex repairs the former.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"tableflip.dev/diary/pkg/datekey"
	"tableflip.dev/diary/pkg/kv"
)

const (
	// Namespace prefixes every key the store writes.
	Namespace = "diary"

	// IndexKey holds the serialized date index.
	IndexKey = Namespace + kv.Separator + "index"
)

// EntryKey returns the backend key holding the text for date.
func EntryKey(date datekey.Key) string {
	return Namespace + kv.Separator + string(date)
}

// Entry is a single day's journal text.
type Entry struct {
	Date datekey.Key `json:"date"`
	Text string      `json:"text"`
}

// Store is the journal entry store.
type Store struct {
	kv  kv.Store
	log *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for recovered conditions.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns a Store over backend.
func New(backend kv.Store, opts ...Option) *Store {
	s := &Store{kv: backend, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.kv.Close()
}

// Load returns the text stored for date, or "" when there is none.
func (s *Store) Load(date datekey.Key) (string, error) {
	if !date.Valid() {
		return "", fmt.Errorf("store: load: %w: %q", datekey.ErrInvalid, date)
	}
	key := EntryKey(date)
	text, _, err := s.kv.Get(key)
	if err != nil {
		return "", storageErr("load", key, err)
	}
	return text, nil
}

// Save replaces the text for date and records date in the index.
func (s *Store) Save(date datekey.Key, text string) error {
	if !date.Valid() {
		return fmt.Errorf("store: save: %w: %q", datekey.ErrInvalid, date)
	}
	idx, err := s.indexForUpdate()
	if err != nil {
		return err
	}
	steps := []step{setEntry(date, text)}
	if !idx.has(date) {
		idx.add(date)
		steps = append(steps, writeIndex(idx))
	}
	return s.commit("save", steps...)
}

// Delete removes the entry for date and its index membership. Deleting a date
// with no entry is a no-op.
func (s *Store) Delete(date datekey.Key) error {
	if !date.Valid() {
		return fmt.Errorf("store: delete: %w: %q", datekey.ErrInvalid, date)
	}
	key := EntryKey(date)
	_, exists, err := s.kv.Get(key)
	if err != nil {
		return storageErr("delete", key, err)
	}
	idx, err := s.indexForUpdate()
	if err != nil {
		return err
	}

	var steps []step
	if idx.has(date) {
		idx.remove(date)
		steps = append(steps, writeIndex(idx))
	}
	if exists {
		steps = append(steps, removeEntry(date))
	}
	if len(steps) == 0 {
		return nil
	}
	return s.commit("delete", steps...)
}

// ListDates returns the indexed dates in ascending order. Callers must not
// rely on the order for anything but display.
func (s *Store) ListDates() ([]datekey.Key, error) {
	idx, malformed, err := s.readIndex()
	if err != nil {
		return nil, err
	}
	if malformed {
		return []datekey.Key{}, nil
	}
	return idx.sorted(), nil
}

// Entries returns every indexed entry in ascending date order.
func (s *Store) Entries() ([]Entry, error) {
	dates, err := s.ListDates()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(dates))
	for _, d := range dates {
		text, err := s.Load(d)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Date: d, Text: text})
	}
	return entries, nil
}

// Reindex rebuilds the index from the entry keys present in the backend and
// returns the rebuilt date list.
func (s *Store) Reindex(ctx context.Context) ([]datekey.Key, error) {
	idx, err := s.deriveIndex(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.commit("reindex", writeIndex(idx)); err != nil {
		return nil, err
	}
	return idx.sorted(), nil
}

// Watch reports backend changes when the backend supports it.
func (s *Store) Watch(ctx context.Context) (<-chan kv.Event, error) {
	w, ok := s.kv.(kv.Watcher)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	events, err := w.Watch(ctx)
	if err != nil {
		return nil, storageErr("watch", "", err)
	}
	return events, nil
}

// readIndex loads the index. A missing index is empty; an unparsable one is
// reported as malformed with an empty set.
func (s *Store) readIndex() (dateSet, bool, error) {
	raw, ok, err := s.kv.Get(IndexKey)
	if err != nil {
		return nil, false, storageErr("read index", IndexKey, err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return dateSet{}, false, nil
	}
	idx, err := parseIndex(raw)
	if err != nil {
		s.log.Warn("store: malformed index, treating as empty", "key", IndexKey, "err", err)
		return dateSet{}, true, nil
	}
	return idx, false, nil
}

// indexForUpdate returns the index a mutation should start from. A malformed
// index is rebuilt from the entry keys so the mutation does not drop other
// dates.
func (s *Store) indexForUpdate() (dateSet, error) {
	idx, malformed, err := s.readIndex()
	if err != nil || !malformed {
		return idx, err
	}
	return s.deriveIndex(context.Background())
}

func (s *Store) deriveIndex(ctx context.Context) (dateSet, error) {
	keys, err := s.kv.Keys(ctx, Namespace+kv.Separator)
	if err != nil {
		return nil, storageErr("list keys", Namespace+kv.Separator, err)
	}
	idx := dateSet{}
	for _, key := range keys {
		if key == IndexKey {
			continue
		}
		d, err := datekey.Parse(strings.TrimPrefix(key, Namespace+kv.Separator))
		if err != nil {
			s.log.Debug("store: skipping non-entry key", "key", key)
			continue
		}
		idx.add(d)
	}
	return idx, nil
}

func parseIndex(raw string) (dateSet, error) {
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, err
	}
	if list == nil {
		return nil, fmt.Errorf("index is %s, not an array", strings.TrimSpace(raw))
	}
	idx := make(dateSet, len(list))
	for _, item := range list {
		d, err := datekey.Parse(item)
		if err != nil {
			return nil, err
		}
		idx.add(d)
	}
	return idx, nil
}

type dateSet map[datekey.Key]struct{}

func (d dateSet) has(k datekey.Key) bool {
	_, ok := d[k]
	return ok
}

func (d dateSet) add(k datekey.Key) { d[k] = struct{}{} }

func (d dateSet) remove(k datekey.Key) { delete(d, k) }

func (d dateSet) sorted() []datekey.Key {
	out := make([]datekey.Key, 0, len(d))
	for k := range d {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
