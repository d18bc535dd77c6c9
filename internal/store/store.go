package store

import (
	"context"
	"os"
	"path/filepath"

	"kanban-cli/internal/model"
)

const workspaceDirName = ".kanban"

// Store is a board workspace on disk: a directory plus the backend holding its document.
type Store struct {
	Dir     string
	Backend Backend
}

func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, workspaceDirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, workspaceDirName), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) Open(ctx context.Context) (KV, error) {
	if s.Backend != BackendMemory {
		if err := s.Ensure(); err != nil {
			return nil, err
		}
	}
	return OpenKV(ctx, s.Dir, s.Backend)
}

// Load opens the backend, reads the board and closes it again.
func (s Store) Load(ctx context.Context) (*model.Board, error) {
	kv, err := s.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer kv.Close()
	return LoadBoard(ctx, kv)
}

func (s Store) Save(ctx context.Context, b *model.Board) error {
	kv, err := s.Open(ctx)
	if err != nil {
		return err
	}
	defer kv.Close()
	return SaveBoard(ctx, kv, b)
}

// documentFiles lists the file names inside Dir that change when the document is written.
func (s Store) documentFiles() map[string]bool {
	switch s.Backend {
	case BackendSQLite:
		return map[string]bool{sqliteFileName: true, sqliteFileName + "-wal": true}
	case BackendMemory:
		return nil
	}
	return map[string]bool{DocumentKey: true}
}
