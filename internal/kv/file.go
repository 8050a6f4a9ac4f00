package kv

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
)

var _ Store = (*File)(nil)

// File stores each key in its own file under a base directory. Writes go to a
// temp file in the same directory and are renamed over the target, so a
// reader never sees a partial value.
type File struct {
	mu      sync.RWMutex
	baseDir string
}

// DefaultDataDir is $XDG_DATA_HOME/unifind or ~/.local/share/unifind.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "unifind")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "unifind")
}

// NewFile creates baseDir if needed and returns a File rooted there. An
// empty baseDir uses DefaultDataDir.
func NewFile(baseDir string) (*File, error) {
	if baseDir == "" {
		baseDir = DefaultDataDir()
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &File{baseDir: baseDir}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.baseDir, url.QueryEscape(key)+".json")
}

func (f *File) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (f *File) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(f.baseDir, ".kv-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, f.path(key)); err != nil {
		cleanup()
		return err
	}
	return nil
}

// Ping verifies the data directory is still present and writable.
func (f *File) Ping(ctx context.Context) error {
	info, err := os.Stat(f.baseDir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", f.baseDir)
	}
	probe, err := os.CreateTemp(f.baseDir, ".ping-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(name)
}

func (f *File) Close() error { return nil }
