package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// Store is a flat byte-oriented key-value store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendDir    = "dir"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend  string
	Path     string // directory for dir, database file for sqlite
	RedisURL string
	Prefix   string // redis key prefix
}

// Open returns the store named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case BackendDir, "":
		d, err := OpenDir(opts.Path)
		if err != nil {
			return nil, err
		}
		return d, nil
	case BackendSQLite:
		db, err := OpenSQLite(ctx, opts.Path)
		if err != nil {
			return nil, err
		}
		return db, nil
	case BackendRedis:
		r, err := OpenRedis(ctx, opts.RedisURL, opts.Prefix)
		if err != nil {
			return nil, err
		}
		return r, nil
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
