package store

import (
	"context"
	"os"
	"testing"
)

func TestBackup_CopiesCurrentDocument(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := Store{Dir: t.TempDir(), Backend: BackendDiskv}
	kv, err := s.Open(ctx)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer kv.Close()

	path, err := s.Backup(ctx, kv)
	if err != nil || path != "" {
		t.Fatalf("expected no backup without a document; path=%q err=%v", path, err)
	}

	if err := SaveBoard(ctx, kv, sampleBoard()); err != nil {
		t.Fatalf("SaveBoard: %v", err)
	}
	path, err = s.Backup(ctx, kv)
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	got, err := DecodeBoard(b)
	if err != nil {
		t.Fatalf("DecodeBoard: %v", err)
	}
	if !got.Equal(sampleBoard()) {
		t.Fatalf("backup does not match the stored board")
	}
}
