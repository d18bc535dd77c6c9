package store

import (
	"context"
	"testing"

	"kanban-cli/internal/model"
)

func sampleBoard() *model.Board {
	return &model.Board{Containers: []model.Container{
		{ID: model.ParseID("container-1"), Title: "To Do", Items: []model.Item{
			{ID: model.ParseID("item-1"), Title: "Task A"},
			{ID: model.ParseID("item-2"), Title: "Task B"},
		}},
		{ID: model.ParseID("container-2"), Title: "Done", Items: []model.Item{}},
	}}
}

func TestEncodeBoard_DocumentShape(t *testing.T) {
	t.Parallel()

	got, err := EncodeBoard(sampleBoard())
	if err != nil {
		t.Fatalf("EncodeBoard: %v", err)
	}
	want := `[{"id":"container-1","title":"To Do","items":[{"id":"item-1","title":"Task A"},{"id":"item-2","title":"Task B"}]},{"id":"container-2","title":"Done","items":[]}]`
	if string(got) != want {
		t.Fatalf("document mismatch:\nwant: %s\ngot:  %s", want, got)
	}

	empty, err := EncodeBoard(model.NewBoard())
	if err != nil {
		t.Fatalf("EncodeBoard (empty): %v", err)
	}
	if string(empty) != "[]" {
		t.Fatalf("expected empty board to encode as [], got %s", empty)
	}
}

func TestDecodeBoard_RoundTrip(t *testing.T) {
	t.Parallel()

	in := sampleBoard()
	b, err := EncodeBoard(in)
	if err != nil {
		t.Fatalf("EncodeBoard: %v", err)
	}
	out, err := DecodeBoard(b)
	if err != nil {
		t.Fatalf("DecodeBoard: %v", err)
	}
	if !out.Equal(in) {
		t.Fatalf("roundtrip mismatch:\nwant: %#v\ngot:  %#v", in, out)
	}
	if !out.Containers[0].Items[0].ID.IsItem() || !out.Containers[1].ID.IsContainer() {
		t.Fatalf("expected ids to be classified on decode")
	}
}

func TestDecodeBoard_Lenient(t *testing.T) {
	t.Parallel()

	doc := `[
		{"id":"container-a","title":"A"},
		{"id":"container-b","title":"B","items":null},
		{"title":"no id","items":[]},
		{"id":7,"title":"numeric","items":[{"id":"item-1","title":"x"},{"title":"dropped"},{"id":"item-2"}]}
	]`
	b, err := DecodeBoard([]byte(doc))
	if err != nil {
		t.Fatalf("DecodeBoard: %v", err)
	}
	if len(b.Containers) != 3 {
		t.Fatalf("expected 3 containers, got %d: %#v", len(b.Containers), b.Containers)
	}
	for _, c := range b.Containers[:2] {
		if c.Items == nil || len(c.Items) != 0 {
			t.Fatalf("expected empty non-nil items for %s, got %#v", c.ID, c.Items)
		}
	}
	last := b.Containers[2]
	if last.ID.String() != "7" || last.ID.Kind() != model.KindUnknown {
		t.Fatalf("expected numeric id kept verbatim, got %q (%s)", last.ID, last.ID.Kind())
	}
	if len(last.Items) != 2 || last.Items[1].Title != "" {
		t.Fatalf("unexpected items: %#v", last.Items)
	}
}

func TestDecodeBoard_KeepsIDsVerbatim(t *testing.T) {
	t.Parallel()

	doc := `[{"id":"container-1 ","title":"A","items":[{"id":" item-1","title":"x"}]}]`
	b, err := DecodeBoard([]byte(doc))
	if err != nil {
		t.Fatalf("DecodeBoard: %v", err)
	}
	out, err := EncodeBoard(b)
	if err != nil {
		t.Fatalf("EncodeBoard: %v", err)
	}
	if string(out) != doc {
		t.Fatalf("round trip changed ids:\n got %s\nwant %s", out, doc)
	}
}

func TestDecodeBoard_RejectsMalformed(t *testing.T) {
	t.Parallel()

	for _, doc := range []string{`{not json}`, `{"id":"container-1"}`, `[1,2]`, `[{"id":"container-1","items":"nope"}]`} {
		if _, err := DecodeBoard([]byte(doc)); err == nil {
			t.Fatalf("expected error for %s", doc)
		}
	}
}

func TestLoadBoard_Fallbacks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cases := []struct {
		name string
		doc  *string
	}{
		{name: "missing"},
		{name: "malformed", doc: strPtr("{not json")},
		{name: "null", doc: strPtr("null")},
		{name: "empty", doc: strPtr("")},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			kv := NewMemoryKV()
			if tc.doc != nil {
				if err := kv.Set(ctx, DocumentKey, []byte(*tc.doc)); err != nil {
					t.Fatalf("Set: %v", err)
				}
			}
			b, err := LoadBoard(ctx, kv)
			if err != nil {
				t.Fatalf("LoadBoard: %v", err)
			}
			if b == nil || len(b.Containers) != 0 {
				t.Fatalf("expected empty board, got %#v", b)
			}
		})
	}
}

func TestSaveBoardThenLoadBoard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	kv := NewMemoryKV()
	if err := SaveBoard(ctx, kv, sampleBoard()); err != nil {
		t.Fatalf("SaveBoard: %v", err)
	}
	got, err := LoadBoard(ctx, kv)
	if err != nil {
		t.Fatalf("LoadBoard: %v", err)
	}
	if !got.Equal(sampleBoard()) {
		t.Fatalf("unexpected board: %#v", got)
	}
}

func strPtr(s string) *string { return &s }
