package kv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

const tempDirName = ".tmp"

// Diskv stores each key as a file below basePath; "diary:2024-03-05" lives at
// <basePath>/diary/2024-03-05. Reads always go to disk: another process (the
// CLI next to a running UI) may have rewritten any key.
type Diskv struct {
	d        *diskv.Diskv
	basePath string
}

// NewDiskv returns a diskv backed Store rooted at basePath.
func NewDiskv(basePath string) (*Diskv, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("kv: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("kv: ensure base path: %w", err)
	}
	return &Diskv{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			TempDir:           filepath.Join(basePath, tempDirName),
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
		}),
		basePath: basePath,
	}, nil
}

// BasePath returns the directory the store writes to.
func (s *Diskv) BasePath() string {
	return s.basePath
}

func (s *Diskv) Get(key string) (string, bool, error) {
	rc, err := s.d.ReadStream(key, true)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	defer rc.Close()
	val, err := io.ReadAll(rc)
	if err != nil {
		return "", false, err
	}
	return string(val), true, nil
}

func (s *Diskv) Set(key, value string) error {
	return s.d.Write(key, []byte(value))
}

func (s *Diskv) Remove(key string) error {
	if err := s.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Diskv) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys := make([]string, 0)
	for key := range s.d.KeysPrefix(prefix, ctx.Done()) {
		if isTempKey(key) {
			continue
		}
		keys = append(keys, key)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op; diskv holds no open handles between calls.
func (s *Diskv) Close() error {
	return nil
}

func keyToPathTransform(key string) *diskv.PathKey {
	path, file := splitKey(key)
	return &diskv.PathKey{
		Path:     path,
		FileName: file,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return strings.Join(pathKey.Path, Separator) + Separator + pathKey.FileName
}

func isTempKey(key string) bool {
	return key == tempDirName || strings.HasPrefix(key, tempDirName+Separator)
}
