package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

const diskvTempDir = ".tmp"

type diskvKV struct {
	d *diskv.Diskv
}

func openDiskvKV(dir string) (*diskvKV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure dir: %w", err)
	}
	return &diskvKV{d: diskv.New(diskv.Options{
		BasePath:          dir,
		AdvancedTransform: flatTransform,
		InverseTransform:  flatInverseTransform,
		// Writes land in a temp file first and are renamed into place.
		TempDir:      filepath.Join(dir, diskvTempDir),
		CacheSizeMax: 1024 * 1024, // 1MB
	})}, nil
}

// Keys map to plain files directly under the workspace dir.
func flatTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{Path: []string{}, FileName: key}
}

func flatInverseTransform(pk *diskv.PathKey) string {
	return pk.FileName
}

func (k *diskvKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	// Other processes rewrite the document, so reads bypass the cache.
	rc, err := k.d.ReadStream(key, true)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("store: read %s: %w", key, err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, false, fmt.Errorf("store: read %s: %w", key, err)
	}
	return b, true, nil
}

func (k *diskvKV) Set(_ context.Context, key string, value []byte) error {
	if err := k.d.Write(key, value); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (k *diskvKV) Close() error { return nil }
