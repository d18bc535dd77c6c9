package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"kanban-cli/internal/model"
)

// DocumentKey is the key the whole board is stored under.
const DocumentKey = "dnd-containers"

type wireItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type wireContainer struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Items []wireItem `json:"items"`
}

// EncodeBoard renders the board as the stored document: a JSON array of containers with
// their items nested in order.
func EncodeBoard(b *model.Board) ([]byte, error) {
	out := make([]wireContainer, 0, len(b.Containers))
	for _, c := range b.Containers {
		wc := wireContainer{ID: c.ID.String(), Title: c.Title, Items: make([]wireItem, 0, len(c.Items))}
		for _, it := range c.Items {
			wc.Items = append(wc.Items, wireItem{ID: it.ID.String(), Title: it.Title})
		}
		out = append(out, wc)
	}
	return json.Marshal(out)
}

// DecodeBoard parses a stored document. Missing or null items decode as an empty list and
// entries without an id are skipped; anything that is not a JSON array of objects is an
// error.
func DecodeBoard(data []byte) (*model.Board, error) {
	var raw []struct {
		ID    json.RawMessage `json:"id"`
		Title *string         `json:"title"`
		Items json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode board: %w", err)
	}

	b := model.NewBoard()
	for i, rc := range raw {
		id := rawID(rc.ID)
		if id == "" {
			slog.Warn("store: skipping container without id", "index", i)
			continue
		}
		c := model.Container{ID: model.ParseID(id), Title: deref(rc.Title), Items: []model.Item{}}
		if !isNullOrEmpty(rc.Items) {
			var items []struct {
				ID    json.RawMessage `json:"id"`
				Title *string         `json:"title"`
			}
			if err := json.Unmarshal(rc.Items, &items); err != nil {
				return nil, fmt.Errorf("decode board: items of %s: %w", id, err)
			}
			for j, ri := range items {
				itemID := rawID(ri.ID)
				if itemID == "" {
					slog.Warn("store: skipping item without id", "container", id, "index", j)
					continue
				}
				c.Items = append(c.Items, model.Item{ID: model.ParseID(itemID), Title: deref(ri.Title)})
			}
		}
		b.Containers = append(b.Containers, c)
	}
	return b, nil
}

// LoadBoard reads the document from kv. A missing or unreadable document yields an empty
// board; only a failing backend is reported as an error.
func LoadBoard(ctx context.Context, kv KV) (*model.Board, error) {
	data, ok, err := kv.Get(ctx, DocumentKey)
	if err != nil {
		return nil, err
	}
	if !ok || isNullOrEmpty(data) {
		return model.NewBoard(), nil
	}
	b, err := DecodeBoard(data)
	if err != nil {
		slog.Warn("store: ignoring malformed board document", "key", DocumentKey, "err", err)
		return model.NewBoard(), nil
	}
	return b, nil
}

func SaveBoard(ctx context.Context, kv KV, b *model.Board) error {
	data, err := EncodeBoard(b)
	if err != nil {
		return err
	}
	return kv.Set(ctx, DocumentKey, data)
}

// rawID accepts string and numeric ids; anything else counts as missing.
func rawID(b json.RawMessage) string {
	b = bytes.TrimSpace(b)
	if isNullOrEmpty(b) {
		return ""
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		return n.String()
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func isNullOrEmpty(b []byte) bool {
	if len(b) == 0 {
		return true
	}
	s := strings.TrimSpace(string(b))
	return s == "" || s == "null"
}
