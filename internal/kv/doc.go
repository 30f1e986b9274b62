// Package kv provides the byte-oriented key-value stores behind folio's
// persistence layer.
//
// Every backend implements Store: Get, Set and Close. Keys are short names
// ("photos", "albums", "darkMode"); values are opaque bytes. Get reports a
// missing key with ErrNotFound so callers can fall back to defaults.
//
// Backends:
//
//	dir     one file per key, atomic rename on write (default)
//	sqlite  single kv table in a WAL-mode database (mattn/go-sqlite3)
//	redis   string keys under a "folio:" prefix (redis/go-redis/v9)
//	memory  process-local map, used by --ephemeral and tests
//
// Open picks a backend by name:
//
//	store, err := kv.Open(ctx, kv.Options{Backend: "sqlite", Path: dbPath})
//	defer store.Close()
package kv
