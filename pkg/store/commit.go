package store

import (
	"encoding/json"

	"tableflip.dev/diary/pkg/datekey"
	"tableflip.dev/diary/pkg/kv"
)

// step is one write of a multi-key update.
type step struct {
	key   string
	apply func(w kv.Writer) error
}

func setEntry(date datekey.Key, text string) step {
	key := EntryKey(date)
	return step{key: key, apply: func(w kv.Writer) error {
		return w.Set(key, text)
	}}
}

func removeEntry(date datekey.Key) step {
	key := EntryKey(date)
	return step{key: key, apply: func(w kv.Writer) error {
		return w.Remove(key)
	}}
}

func writeIndex(idx dateSet) step {
	list := make([]string, 0, len(idx))
	for _, d := range idx.sorted() {
		list = append(list, string(d))
	}
	return step{key: IndexKey, apply: func(w kv.Writer) error {
		data, err := json.Marshal(list)
		if err != nil {
			return err
		}
		return w.Set(IndexKey, string(data))
	}}
}

// commit applies steps in order and stops at the first failure. Backends that
// implement kv.Batcher apply them atomically; others rely on the step order:
// Save writes the entry before the index and Delete drops the index member
// before the entry.
func (s *Store) commit(op string, steps ...step) error {
	if b, ok := s.kv.(kv.Batcher); ok {
		var failed string
		err := b.Batch(func(w kv.Writer) error {
			for _, st := range steps {
				if err := st.apply(w); err != nil {
					failed = st.key
					return err
				}
			}
			return nil
		})
		return storageErr(op, failed, err)
	}
	for _, st := range steps {
		if err := st.apply(s.kv); err != nil {
			return storageErr(op, st.key, err)
		}
	}
	return nil
}
