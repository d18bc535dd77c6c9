package tui

import (
	"testing"

	"kanban-cli/internal/model"
)

func TestItemDropTarget(t *testing.T) {
	b := &model.Board{Containers: []model.Container{
		{ID: id("container-a"), Items: []model.Item{{ID: id("item-1")}, {ID: id("item-2")}, {ID: id("item-3")}}},
		{ID: id("container-b"), Items: []model.Item{{ID: id("item-4")}}},
		{ID: id("container-c"), Items: []model.Item{}},
	}}

	cases := []struct {
		name   string
		active string
		dx, dy int
		want   string
		ok     bool
	}{
		{name: "down skips next sibling", active: "item-1", dy: 1, want: "item-3", ok: true},
		{name: "down to end appends", active: "item-2", dy: 1, want: "container-a", ok: true},
		{name: "down at bottom", active: "item-3", dy: 1},
		{name: "up", active: "item-2", dy: -1, want: "item-1", ok: true},
		{name: "up at top", active: "item-1", dy: -1},
		{name: "right keeps position", active: "item-1", dx: 1, want: "item-4", ok: true},
		{name: "right past end appends", active: "item-3", dx: 1, want: "container-b", ok: true},
		{name: "right into empty", active: "item-4", dx: 1, want: "container-c", ok: true},
		{name: "left at edge", active: "item-1", dx: -1},
		{name: "unknown item", active: "item-x", dy: 1},
	}
	for _, tc := range cases {
		got, ok := itemDropTarget(b, id(tc.active), tc.dx, tc.dy)
		if ok != tc.ok || (ok && got.String() != tc.want) {
			t.Fatalf("%s: got %q, %v; want %q, %v", tc.name, got, ok, tc.want, tc.ok)
		}
	}
}
