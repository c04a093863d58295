package kv

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	d, err := NewDiskv(filepath.Join(dir, "diskv"))
	if err != nil {
		t.Fatalf("diskv: %v", err)
	}
	s, err := OpenSQLite(filepath.Join(dir, "diary.sqlite"))
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return map[string]Store{
		"memory": NewMemory(),
		"diskv":  d,
		"sqlite": s,
	}
}

func TestStoreContract(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := s.Get("diary:2024-03-05"); err != nil || ok {
				t.Fatalf("missing key: ok=%v err=%v", ok, err)
			}
			if err := s.Set("diary:2024-03-05", "hello"); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := s.Set("diary:2024-03-05", "world"); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			if err := s.Set("diary:index", `["2024-03-05"]`); err != nil {
				t.Fatalf("set index: %v", err)
			}
			if err := s.Set("other:thing", "x"); err != nil {
				t.Fatalf("set other: %v", err)
			}
			v, ok, err := s.Get("diary:2024-03-05")
			if err != nil || !ok || v != "world" {
				t.Fatalf("get: %q %v %v", v, ok, err)
			}

			keys, err := s.Keys(context.Background(), "diary:")
			if err != nil {
				t.Fatalf("keys: %v", err)
			}
			want := []string{"diary:2024-03-05", "diary:index"}
			if !reflect.DeepEqual(keys, want) {
				t.Fatalf("keys = %v, want %v", keys, want)
			}

			if err := s.Remove("diary:2024-03-05"); err != nil {
				t.Fatalf("remove: %v", err)
			}
			if err := s.Remove("diary:2024-03-05"); err != nil {
				t.Fatalf("second remove: %v", err)
			}
			if _, ok, _ := s.Get("diary:2024-03-05"); ok {
				t.Fatal("expected key to be gone")
			}
		})
	}
}

func TestEmptyValue(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Set("diary:2024-01-01", ""); err != nil {
				t.Fatalf("set: %v", err)
			}
			v, ok, err := s.Get("diary:2024-01-01")
			if err != nil || !ok || v != "" {
				t.Fatalf("get: %q %v %v", v, ok, err)
			}
		})
	}
}

func TestBatchRollsBack(t *testing.T) {
	boom := errors.New("boom")
	for name, s := range backends(t) {
		b, ok := s.(Batcher)
		if !ok {
			continue
		}
		t.Run(name, func(t *testing.T) {
			if err := s.Set("diary:index", "[]"); err != nil {
				t.Fatalf("seed: %v", err)
			}
			err := b.Batch(func(w Writer) error {
				if err := w.Set("diary:2024-03-05", "hello"); err != nil {
					return err
				}
				if err := w.Remove("diary:index"); err != nil {
					return err
				}
				return boom
			})
			if !errors.Is(err, boom) {
				t.Fatalf("expected boom, got %v", err)
			}
			if _, ok, _ := s.Get("diary:2024-03-05"); ok {
				t.Fatal("batched write leaked")
			}
			if v, ok, _ := s.Get("diary:index"); !ok || v != "[]" {
				t.Fatalf("batched remove leaked: %q %v", v, ok)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		kind    string
		want    string
		wantErr bool
	}{
		{kind: "", want: "*kv.Diskv"},
		{kind: "diskv", want: "*kv.Diskv"},
		{kind: "sqlite", want: "*kv.SQLite"},
		{kind: "memory", want: "*kv.Memory"},
		{kind: "etcd", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			path := filepath.Join(dir, tt.kind+"-store")
			s, err := Open(tt.kind, path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer s.Close()
			if got := reflect.TypeOf(s).String(); got != tt.want {
				t.Fatalf("type = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMemoryClosed(t *testing.T) {
	m := NewMemory()
	_ = m.Close()
	if err := m.Set("a", "b"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestDiskvWatchEmitsKeyChanges(t *testing.T) {
	d, err := NewDiskv(t.TempDir())
	if err != nil {
		t.Fatalf("diskv: %v", err)
	}
	// Pre-create the namespace directory so the write lands in a watched dir.
	if err := d.Set("diary:index", "[]"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := d.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	if err := d.Set("diary:2024-03-05", "hello"); err != nil {
		t.Fatalf("set: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Key == "diary:2024-03-05" {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for key change event")
		}
	}
}

func TestKeyTransformRoundTrip(t *testing.T) {
	for _, key := range []string{"diary:index", "diary:2024-03-05", "plain"} {
		if got := pathToKeyTransform(keyToPathTransform(key)); got != key {
			t.Errorf("%q round-tripped to %q", key, got)
		}
	}
}
