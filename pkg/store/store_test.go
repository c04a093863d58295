package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/mock/gomock"

	"tableflip.dev/diary/pkg/datekey"
	"tableflip.dev/diary/pkg/kv"
	"tableflip.dev/diary/pkg/kv/kvmock"
)

var quiet = WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

func newStores(t *testing.T) map[string]*Store {
	t.Helper()
	dir := t.TempDir()
	d, err := kv.NewDiskv(filepath.Join(dir, "diskv"))
	if err != nil {
		t.Fatalf("diskv: %v", err)
	}
	sq, err := kv.OpenSQLite(filepath.Join(dir, "diary.sqlite"))
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]*Store{
		"memory": New(kv.NewMemory(), quiet),
		"diskv":  New(d, quiet),
		"sqlite": New(sq, quiet),
	}
}

func countDate(dates []datekey.Key, want datekey.Key) int {
	n := 0
	for _, d := range dates {
		if d == want {
			n++
		}
	}
	return n
}

func TestSaveLoadList(t *testing.T) {
	date := datekey.MustParse("2024-03-05")
	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Save(date, "hello"); err != nil {
				t.Fatalf("save: %v", err)
			}
			text, err := s.Load(date)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if text != "hello" {
				t.Fatalf("load = %q, want hello", text)
			}
			dates, err := s.ListDates()
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if countDate(dates, date) != 1 {
				t.Fatalf("expected %s once in %v", date, dates)
			}
		})
	}
}

func TestSaveOverwrites(t *testing.T) {
	date := datekey.MustParse("2024-03-05")
	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Save(date, "hello"); err != nil {
				t.Fatalf("save: %v", err)
			}
			if err := s.Save(date, "world"); err != nil {
				t.Fatalf("save: %v", err)
			}
			if text, _ := s.Load(date); text != "world" {
				t.Fatalf("load = %q, want world", text)
			}
			dates, _ := s.ListDates()
			if countDate(dates, date) != 1 {
				t.Fatalf("expected %s exactly once in %v", date, dates)
			}
		})
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	date := datekey.MustParse("2024-03-05")
	other := datekey.MustParse("2024-03-06")
	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Save(date, "hello"); err != nil {
				t.Fatalf("save: %v", err)
			}
			if err := s.Save(other, "keep"); err != nil {
				t.Fatalf("save: %v", err)
			}
			if err := s.Delete(date); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if text, err := s.Load(date); err != nil || text != "" {
				t.Fatalf("load after delete = %q, %v", text, err)
			}
			dates, _ := s.ListDates()
			if !reflect.DeepEqual(dates, []datekey.Key{other}) {
				t.Fatalf("dates = %v", dates)
			}
			if err := s.Delete(date); err != nil {
				t.Fatalf("second delete: %v", err)
			}
			if err := s.Delete("2030-01-01"); err != nil {
				t.Fatalf("delete never saved: %v", err)
			}
		})
	}
}

func TestLoadMissingIsEmpty(t *testing.T) {
	s := New(kv.NewMemory(), quiet)
	text, err := s.Load("2024-01-01")
	if err != nil || text != "" {
		t.Fatalf("load = %q, %v", text, err)
	}
	dates, err := s.ListDates()
	if err != nil || len(dates) != 0 {
		t.Fatalf("list = %v, %v", dates, err)
	}
}

func TestSaveRejectsInvalidDate(t *testing.T) {
	s := New(kv.NewMemory(), quiet)
	if err := s.Save("2024-02-30", "x"); !errors.Is(err, datekey.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestMalformedIndex(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "{oops"},
		{name: "wrong shape", raw: `{"2024-03-05": true}`},
		{name: "bad member", raw: `["2024-03-05", "yesterday"]`},
		{name: "null", raw: "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := kv.NewMemory()
			_ = m.Set(EntryKey("2024-03-05"), "hello")
			_ = m.Set(IndexKey, tt.raw)
			s := New(m, quiet)

			dates, err := s.ListDates()
			if err != nil {
				t.Fatalf("malformed index should not error: %v", err)
			}
			if len(dates) != 0 {
				t.Fatalf("expected empty index, got %v", dates)
			}

			// A mutation rebuilds from entry keys rather than dropping them.
			if err := s.Save("2024-03-06", "world"); err != nil {
				t.Fatalf("save: %v", err)
			}
			dates, _ = s.ListDates()
			want := []datekey.Key{"2024-03-05", "2024-03-06"}
			if !reflect.DeepEqual(dates, want) {
				t.Fatalf("dates = %v, want %v", dates, want)
			}
		})
	}
}

func TestIndexDeduplicatesOnRead(t *testing.T) {
	m := kv.NewMemory()
	_ = m.Set(EntryKey("2024-03-05"), "hello")
	_ = m.Set(IndexKey, `["2024-03-05","2024-03-05"]`)
	s := New(m, quiet)
	dates, err := s.ListDates()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !reflect.DeepEqual(dates, []datekey.Key{"2024-03-05"}) {
		t.Fatalf("dates = %v", dates)
	}
}

func TestReindexRecoversUnindexedEntries(t *testing.T) {
	m := kv.NewMemory()
	_ = m.Set(EntryKey("2024-03-05"), "hello")
	_ = m.Set(EntryKey("2024-03-01"), "first")
	_ = m.Set(Namespace+kv.Separator+"notes", "not an entry")
	_ = m.Set(IndexKey, `["2024-03-01"]`)
	s := New(m, quiet)

	dates, err := s.Reindex(context.Background())
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}
	want := []datekey.Key{"2024-03-01", "2024-03-05"}
	if !reflect.DeepEqual(dates, want) {
		t.Fatalf("reindex = %v, want %v", dates, want)
	}
	listed, _ := s.ListDates()
	if !reflect.DeepEqual(listed, want) {
		t.Fatalf("list = %v, want %v", listed, want)
	}
}

func TestEntries(t *testing.T) {
	s := New(kv.NewMemory(), quiet)
	_ = s.Save("2024-03-06", "b")
	_ = s.Save("2024-03-05", "a")
	entries, err := s.Entries()
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	want := []Entry{{Date: "2024-03-05", Text: "a"}, {Date: "2024-03-06", Text: "b"}}
	if !reflect.DeepEqual(entries, want) {
		t.Fatalf("entries = %v, want %v", entries, want)
	}
}

func TestSaveWritesEntryBeforeIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := kvmock.NewMockStore(ctrl)

	gomock.InOrder(
		m.EXPECT().Get(IndexKey).Return(`["2024-03-01"]`, true, nil),
		m.EXPECT().Set(EntryKey("2024-03-05"), "hello").Return(nil),
		m.EXPECT().Set(IndexKey, `["2024-03-01","2024-03-05"]`).Return(nil),
	)

	if err := New(m, quiet).Save("2024-03-05", "hello"); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func TestSaveSkipsIndexWriteWhenPresent(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := kvmock.NewMockStore(ctrl)

	m.EXPECT().Get(IndexKey).Return(`["2024-03-05"]`, true, nil)
	m.EXPECT().Set(EntryKey("2024-03-05"), "again").Return(nil)

	if err := New(m, quiet).Save("2024-03-05", "again"); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func TestDeleteDropsIndexBeforeEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := kvmock.NewMockStore(ctrl)

	gomock.InOrder(
		m.EXPECT().Get(EntryKey("2024-03-05")).Return("hello", true, nil),
		m.EXPECT().Get(IndexKey).Return(`["2024-03-05"]`, true, nil),
		m.EXPECT().Set(IndexKey, `[]`).Return(nil),
		m.EXPECT().Remove(EntryKey("2024-03-05")).Return(nil),
	)

	if err := New(m, quiet).Delete("2024-03-05"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestStorageFailuresSurface(t *testing.T) {
	disk := errors.New("disk on fire")

	tests := []struct {
		name   string
		expect func(m *kvmock.MockStore)
		call   func(s *Store) error
	}{
		{
			name: "load",
			expect: func(m *kvmock.MockStore) {
				m.EXPECT().Get(EntryKey("2024-03-05")).Return("", false, disk)
			},
			call: func(s *Store) error {
				_, err := s.Load("2024-03-05")
				return err
			},
		},
		{
			name: "save entry write",
			expect: func(m *kvmock.MockStore) {
				m.EXPECT().Get(IndexKey).Return("", false, nil)
				m.EXPECT().Set(EntryKey("2024-03-05"), "hello").Return(disk)
			},
			call: func(s *Store) error { return s.Save("2024-03-05", "hello") },
		},
		{
			name: "save index write",
			expect: func(m *kvmock.MockStore) {
				m.EXPECT().Get(IndexKey).Return("", false, nil)
				m.EXPECT().Set(EntryKey("2024-03-05"), "hello").Return(nil)
				m.EXPECT().Set(IndexKey, gomock.Any()).Return(disk)
			},
			call: func(s *Store) error { return s.Save("2024-03-05", "hello") },
		},
		{
			name: "delete",
			expect: func(m *kvmock.MockStore) {
				m.EXPECT().Get(EntryKey("2024-03-05")).Return("hello", true, nil)
				m.EXPECT().Get(IndexKey).Return(`["2024-03-05"]`, true, nil)
				m.EXPECT().Set(IndexKey, `[]`).Return(disk)
			},
			call: func(s *Store) error { return s.Delete("2024-03-05") },
		},
		{
			name: "list",
			expect: func(m *kvmock.MockStore) {
				m.EXPECT().Get(IndexKey).Return("", false, disk)
			},
			call: func(s *Store) error {
				_, err := s.ListDates()
				return err
			},
		},
		{
			name: "reindex",
			expect: func(m *kvmock.MockStore) {
				m.EXPECT().Keys(gomock.Any(), Namespace+kv.Separator).Return(nil, disk)
			},
			call: func(s *Store) error {
				_, err := s.Reindex(context.Background())
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := kvmock.NewMockStore(ctrl)
			tt.expect(m)

			err := tt.call(New(m, quiet))
			if !errors.Is(err, ErrStorageFailure) {
				t.Fatalf("expected ErrStorageFailure, got %v", err)
			}
			if !errors.Is(err, disk) {
				t.Fatalf("expected cause to be preserved, got %v", err)
			}
			var se *StorageError
			if !errors.As(err, &se) || se.Op == "" {
				t.Fatalf("expected *StorageError with op, got %#v", err)
			}
		})
	}
}

func TestWatchUnsupported(t *testing.T) {
	s := New(kv.NewMemory(), quiet)
	if _, err := s.Watch(context.Background()); !errors.Is(err, ErrWatchUnsupported) {
		t.Fatalf("expected ErrWatchUnsupported, got %v", err)
	}
}

// sharedDiskv opens two stores on one directory, standing in for a running
// UI and a CLI invocation next to it.
func sharedDiskv(t *testing.T) (ui, cli *Store) {
	t.Helper()
	dir := t.TempDir()
	a, err := kv.NewDiskv(dir)
	if err != nil {
		t.Fatalf("diskv: %v", err)
	}
	b, err := kv.NewDiskv(dir)
	if err != nil {
		t.Fatalf("diskv: %v", err)
	}
	return New(a, quiet), New(b, quiet)
}

func TestDiskvSeesOtherWriters(t *testing.T) {
	ui, cli := sharedDiskv(t)
	if err := ui.Save("2024-03-05", "mine"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := ui.ListDates(); err != nil {
		t.Fatalf("list: %v", err)
	}
	if text, _ := ui.Load("2024-03-05"); text != "mine" {
		t.Fatalf("load = %q", text)
	}

	if err := cli.Save("2024-03-06", "theirs"); err != nil {
		t.Fatalf("cli save: %v", err)
	}
	if err := cli.Save("2024-03-05", "edited"); err != nil {
		t.Fatalf("cli save: %v", err)
	}

	dates, err := ui.ListDates()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []datekey.Key{"2024-03-05", "2024-03-06"}
	if !reflect.DeepEqual(dates, want) {
		t.Fatalf("dates = %v, want %v", dates, want)
	}
	if text, _ := ui.Load("2024-03-05"); text != "edited" {
		t.Fatalf("load = %q, want edited", text)
	}
}

func TestDiskvNoIndexedDateWithoutEntry(t *testing.T) {
	ui, cli := sharedDiskv(t)
	for _, d := range []datekey.Key{"2024-03-01", "2024-03-02"} {
		if err := ui.Save(d, "x"); err != nil {
			t.Fatalf("save %s: %v", d, err)
		}
	}
	if _, err := ui.ListDates(); err != nil {
		t.Fatalf("list: %v", err)
	}
	if err := cli.Delete("2024-03-02"); err != nil {
		t.Fatalf("cli delete: %v", err)
	}
	if err := ui.Save("2024-03-03", "y"); err != nil {
		t.Fatalf("save: %v", err)
	}

	dates, err := cli.ListDates()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []datekey.Key{"2024-03-01", "2024-03-03"}
	if !reflect.DeepEqual(dates, want) {
		t.Fatalf("dates = %v, want %v", dates, want)
	}
	for _, d := range dates {
		if _, ok, err := cli.kv.Get(EntryKey(d)); err != nil || !ok {
			t.Fatalf("indexed date %s has no entry", d)
		}
	}
}

func TestLoadDeleteRejectInvalidDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := New(kvmock.NewMockStore(ctrl), quiet)
	for _, bad := range []datekey.Key{"../../etc/passwd", "2024-02-30", ""} {
		if _, err := s.Load(bad); !errors.Is(err, datekey.ErrInvalid) {
			t.Errorf("Load(%q) = %v, want ErrInvalid", bad, err)
		}
		if err := s.Delete(bad); !errors.Is(err, datekey.ErrInvalid) {
			t.Errorf("Delete(%q) = %v, want ErrInvalid", bad, err)
		}
	}
}
