package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kanban-cli/internal/model"
)

func testBoard() *model.Board {
	return &model.Board{Containers: []model.Container{
		{ID: model.ParseID("container-1"), Title: "To Do", Items: []model.Item{
			{ID: model.ParseID("item-1"), Title: "Task A"},
			{ID: model.ParseID("item-2"), Title: ""},
		}},
		{ID: model.ParseID("container-2"), Title: "Done", Items: []model.Item{}},
	}}
}

func TestRenderBoardMarkdown(t *testing.T) {
	t.Parallel()

	md := RenderBoardMarkdown(testBoard(), RenderOptions{IncludeIDs: true})
	want := strings.Join([]string{
		"# Board",
		"",
		"## To Do `container-1`",
		"",
		"- Task A `item-1`",
		"- (untitled) `item-2`",
		"",
		"## Done `container-2`",
		"",
		"_No items._",
		"",
	}, "\n")
	if md != want {
		t.Fatalf("markdown mismatch:\nwant:\n%s\ngot:\n%s", want, md)
	}
}

func TestRenderBoardMarkdown_EmptyBoard(t *testing.T) {
	t.Parallel()

	md := RenderBoardMarkdown(model.NewBoard(), RenderOptions{Title: "Sprint"})
	if !strings.HasPrefix(md, "# Sprint\n") || !strings.Contains(md, "_No containers._") {
		t.Fatalf("unexpected markdown:\n%s", md)
	}
}

func TestWriteBoard_RespectsOverwrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "board.md")
	res, err := WriteBoard(testBoard(), path, RenderOptions{}, false)
	if err != nil {
		t.Fatalf("WriteBoard: %v", err)
	}
	if len(res.Written) != 1 || res.Written[0] != path {
		t.Fatalf("unexpected result: %#v", res)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), "- Task A") {
		t.Fatalf("expected items in file, got:\n%s", b)
	}

	if _, err := WriteBoard(testBoard(), path, RenderOptions{}, false); err == nil {
		t.Fatalf("expected error without overwrite")
	}
	if _, err := WriteBoard(testBoard(), path, RenderOptions{}, true); err != nil {
		t.Fatalf("WriteBoard (overwrite): %v", err)
	}
}

func TestRenderTerminal_StylesHeadings(t *testing.T) {
	t.Parallel()

	out := RenderTerminal("# Board\n\n- Task A\n", 60, "notty")
	if !strings.Contains(out, "Board") || !strings.Contains(out, "Task A") {
		t.Fatalf("expected rendered text to keep content, got:\n%s", out)
	}
}
