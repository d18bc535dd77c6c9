package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// KV is the key-value layer the board document is persisted in.
type KV interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

type Backend string

const (
	BackendDiskv  Backend = "diskv"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackendDiskv:
		return BackendDiskv, nil
	case BackendSQLite:
		return BackendSQLite, nil
	case BackendMemory:
		return BackendMemory, nil
	}
	return "", fmt.Errorf("%w: %q (expected diskv|sqlite|memory)", ErrUnknownBackend, s)
}

// OpenKV opens the backend rooted at dir.
func OpenKV(ctx context.Context, dir string, backend Backend) (KV, error) {
	switch backend {
	case "", BackendDiskv:
		return openDiskvKV(dir)
	case BackendSQLite:
		return openSQLiteKV(ctx, dir)
	case BackendMemory:
		return NewMemoryKV(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}
