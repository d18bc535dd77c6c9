package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"kanban-cli/internal/model"
)

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteBoard renders the board as Markdown into path.
func WriteBoard(b *model.Board, path string, opt RenderOptions, overwrite bool) (WriteResult, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return WriteResult{}, err
	}
	if err := writeFile(path, []byte(RenderBoardMarkdown(b, opt)), overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{path}}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}

var (
	termRenderersMu sync.Mutex
	// Keyed by style and wrap width. A fixed style avoids terminal background queries.
	termRenderers = map[string]*glamour.TermRenderer{}
)

// RenderTerminal styles Markdown for a terminal using glamour. On renderer errors the
// Markdown is returned unchanged.
func RenderTerminal(md string, width int, style string) string {
	if width < 20 {
		width = 20
	}
	if strings.TrimSpace(style) == "" {
		style = "dark"
	}
	key := style + ":" + strconv.Itoa(width)

	termRenderersMu.Lock()
	defer termRenderersMu.Unlock()
	r := termRenderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		termRenderers[key] = rr
		r = rr
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
