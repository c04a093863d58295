package kv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/peterbourgon/diskv/v3"
)

const watchThrottle = 100 * time.Millisecond

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel; events are dropped rather than blocking the watcher. The
// channel is closed once ctx is done or the watcher fails.
func (s *Diskv) Watch(ctx context.Context) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("kv: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				slog.Warn("kv: watcher close", "err", err)
			}
		})
	}

	dirs, err := collectDirs(s.basePath)
	if err != nil {
		closeWatcher()
		return nil, fmt.Errorf("kv: enumerate directories: %w", err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("kv: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
			}
		}

		throttle := newEventThrottle(watchThrottle)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("kv: watcher error", "err", err)
				throttle.Enqueue(Event{Type: EventInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&fsnotify.Create == fsnotify.Create {
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						dir := filepath.Clean(evt.Name)
						if _, found := watched[dir]; !found {
							if err := watcher.Add(dir); err != nil {
								slog.Warn("kv: watch directory", "dir", dir, "err", err)
							} else {
								watched[dir] = struct{}{}
							}
						}
						throttle.Enqueue(Event{Type: EventInvalidated}, send)
						continue
					}
				}

				key := s.keyForPath(evt.Name)
				switch {
				case key == "":
					throttle.Enqueue(Event{Type: EventInvalidated}, send)
				case isTempKey(key):
				default:
					throttle.Enqueue(Event{Type: EventKeyChanged, Key: key}, send)
				}
			}
		}
	}()

	return events, nil
}

func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			if d.Name() == tempDirName {
				return filepath.SkipDir
			}
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// keyForPath maps a file below basePath back to its key.
func (s *Diskv) keyForPath(path string) string {
	rel, err := filepath.Rel(s.basePath, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	return pathToKeyTransform(&diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	})
}

// eventThrottle coalesces bursts of filesystem notifications so a save (entry
// write plus index write) reaches the consumer once per key.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[Event]struct{}
	delay   time.Duration
	stopped bool
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[Event]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.pending[ev] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

// flush holds the lock while sending so Stop cannot return mid-flush; send
// must not block.
func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	for ev := range t.pending {
		send(ev)
	}
	t.pending = make(map[Event]struct{})
	t.timer = nil
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
