package kv

import (
	"context"
	"fmt"
)

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Backends lists the accepted backend names.
var Backends = []string{BackendFile, BackendSQLite, BackendRedis, BackendMemory}

// Options selects and configures a backend for Open.
type Options struct {
	Backend    string
	Dir        string
	SQLitePath string
	RedisURL   string
}

// Open returns the backend selected by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile, "":
		return NewFile(opts.Dir)
	case BackendSQLite:
		path := opts.SQLitePath
		if path == "" {
			path = DefaultSQLitePath()
		}
		return OpenSQLite(ctx, path)
	case BackendRedis:
		if opts.RedisURL == "" {
			return nil, fmt.Errorf("redis backend requires a redis url")
		}
		return NewRedis(opts.RedisURL)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
