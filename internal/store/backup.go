package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const backupsDirName = "backups"

// Backup copies the current document to <dir>/backups/dnd-containers.<unixms>.json before
// it gets overwritten wholesale (import). It returns "" when there is nothing to back up.
func (s Store) Backup(ctx context.Context, kv KV) (string, error) {
	data, ok, err := kv.Get(ctx, DocumentKey)
	if err != nil {
		return "", err
	}
	if !ok || isNullOrEmpty(data) {
		return "", nil
	}
	dir := filepath.Join(s.Dir, backupsDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("store: backup dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s.%d.json", DocumentKey, time.Now().UnixMilli()))
	if err := atomicWriteFile(dir, DocumentKey+".*.tmp", path, data, 0o644); err != nil {
		return "", fmt.Errorf("store: backup: %w", err)
	}
	return path, nil
}
