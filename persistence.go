package main

import (
	"fmt"
	"io"
	"strings"

	"upsidedown/internal/snapshot"
)

// openStore returns the server-side snapshot store for the configured
// backend, or nil for cookie snapshots. The closer releases the store.
func openStore(cfg Config) (snapshot.Storage, io.Closer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.StorageBackend)) {
	case BackendCookie:
		return nil, nopCloser{}, nil
	case BackendMemory:
		return snapshot.NewMemoryStore(), nopCloser{}, nil
	case BackendFile:
		store, err := snapshot.NewFileStore(cfg.StorageDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open file store: %w", err)
		}
		return store, nopCloser{}, nil
	case BackendSQLite:
		store, err := snapshot.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
