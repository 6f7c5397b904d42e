package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// File is a filesystem-backed cache. Keys are namespaced by the segment
// before the first ':', which becomes a subdirectory, so entries of one
// operation kind can be inspected or wiped together. Entry files carry an
// expiry envelope; expired entries read as a miss and are lazily deleted.
type File struct {
	dir        string
	defaultTTL time.Duration
}

func NewFile(dir string, defaultTTL time.Duration) *File {
	if defaultTTL <= 0 {
		defaultTTL = DefaultExpiration
	}
	return &File{dir: dir, defaultTTL: defaultTTL}
}

type envelope struct {
	ExpiresAt time.Time `json:"expires_at"`
	Payload   []byte    `json:"payload"`
}

func (f *File) path(key string) string {
	category := "misc"
	if idx := strings.IndexByte(key, ':'); idx > 0 {
		category = key[:idx]
	}
	return filepath.Join(f.dir, category, fmt.Sprintf("%016x.json", xxhash.Sum64String(key)))
}

func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	path := f.path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrMiss
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		// Corrupt entry, drop it.
		_ = os.Remove(path)
		return nil, ErrMiss
	}

	if time.Now().After(env.ExpiresAt) {
		_ = os.Remove(path)
		return nil, ErrMiss
	}

	return env.Payload, nil
}

func (f *File) Set(ctx context.Context, key string, value []byte) error {
	return f.SetWithExpiration(ctx, key, value, f.defaultTTL)
}

// SetWithExpiration persists the entry atomically (write to a temp file in
// the same directory, then rename) so a concurrent reader never sees a
// half-written entry as valid.
func (f *File) SetWithExpiration(_ context.Context, key string, value []byte, expiration time.Duration) error {
	path := f.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}

	data, err := json.Marshal(envelope{
		ExpiresAt: time.Now().Add(expiration),
		Payload:   value,
	})
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to publish cache entry: %w", err)
	}
	return nil
}
