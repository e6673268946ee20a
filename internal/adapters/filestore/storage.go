// Package filestore keeps each browser scope in a JSON file. It is meant for
// single-node development where state should survive restarts without Redis.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"sync"
	"time"

	"github.com/spf13/afero"
)

var scopeRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

type record struct {
	Values    map[string]string `json:"values"`
	ExpiresAt *time.Time        `json:"expires_at,omitempty"`
}

// Storage is a ports.Storage over an afero filesystem.
type Storage struct {
	fs  afero.Fs
	dir string
	now func() time.Time

	mu sync.Mutex
}

// New creates a file storage rooted at dir on fsys. The directory is created lazily.
func New(fsys afero.Fs, dir string) *Storage {
	return &Storage{fs: fsys, dir: dir, now: time.Now}
}

// NewOS creates a file storage on the operating system filesystem.
func NewOS(dir string) *Storage {
	return New(afero.NewOsFs(), dir)
}

func (s *Storage) file(scope string) (string, error) {
	if !scopeRe.MatchString(scope) {
		return "", fmt.Errorf("invalid storage scope %q", scope)
	}
	return path.Join(s.dir, scope+".json"), nil
}

func (s *Storage) read(name string) (record, error) {
	var rec record
	raw, err := afero.ReadFile(s.fs, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return rec, nil
		}
		return rec, fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return record{}, fmt.Errorf("decode %s: %w", name, err)
	}
	if rec.ExpiresAt != nil && !s.now().Before(*rec.ExpiresAt) {
		_ = s.fs.Remove(name)
		return record{}, nil
	}
	return rec, nil
}

// write replaces name atomically through a temp file and rename.
func (s *Storage) write(name string, rec record) error {
	if err := s.fs.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", s.dir, err)
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	tmp := name + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, name); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

func (s *Storage) Load(_ context.Context, scope string, keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if scope == "" {
		return out, nil
	}
	name, err := s.file(scope)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.read(name)
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		if v, ok := rec.Values[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (s *Storage) Store(_ context.Context, scope string, values map[string]string, ttl time.Duration) error {
	name, err := s.file(scope)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.read(name)
	if err != nil {
		// Corrupt content is overwritten.
		rec = record{}
	}
	if rec.Values == nil {
		rec.Values = make(map[string]string, len(values))
	}
	for k, v := range values {
		rec.Values[k] = v
	}
	if ttl > 0 {
		exp := s.now().Add(ttl)
		rec.ExpiresAt = &exp
	}
	return s.write(name, rec)
}

func (s *Storage) Remove(_ context.Context, scope string, keys ...string) error {
	if scope == "" || len(keys) == 0 {
		return nil
	}
	name, err := s.file(scope)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.read(name)
	if err != nil {
		// Undecodable content holds no usable credential.
		if rmErr := s.fs.Remove(name); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", name, rmErr)
		}
		return nil
	}
	for _, k := range keys {
		delete(rec.Values, k)
	}
	if len(rec.Values) == 0 {
		if rmErr := s.fs.Remove(name); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", name, rmErr)
		}
		return nil
	}
	return s.write(name, rec)
}
