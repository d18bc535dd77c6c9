package dnd

import (
	"reflect"
	"testing"

	dto "github.com/prometheus/client_model/go"

	"kanban-cli/internal/board"
	"kanban-cli/internal/model"
	"kanban-cli/internal/observability"
)

func id(s string) model.ID { return model.ParseID(s) }

func exampleStore() *board.Store {
	return board.New(&model.Board{Containers: []model.Container{
		{ID: id("container-1"), Title: "To Do", Items: []model.Item{{ID: id("item-1"), Title: "Task A"}}},
		{ID: id("container-2"), Title: "Done", Items: []model.Item{}},
	}})
}

func ids(b *model.Board) [][]string {
	out := make([][]string, 0, len(b.Containers))
	for _, c := range b.Containers {
		col := []string{c.ID.String()}
		for _, it := range c.Items {
			col = append(col, it.ID.String())
		}
		out = append(out, col)
	}
	return out
}

func TestController_MoveItemOntoContainer(t *testing.T) {
	st := exampleStore()
	c := NewController(st)

	c.DragStart(id("item-1"))
	if !c.DragMove(id("item-1"), id("container-2")) {
		t.Fatalf("expected drag move to relocate the item")
	}

	snap := st.Snapshot()
	if got := snap.FindContainerItems(id("container-1")); len(got) != 0 {
		t.Fatalf("container-1 items = %+v, want none", got)
	}
	want := []model.Item{{ID: id("item-1"), Title: "Task A"}}
	if got := snap.FindContainerItems(id("container-2")); !reflect.DeepEqual(got, want) {
		t.Fatalf("container-2 items = %+v, want %+v", got, want)
	}
}

func TestController_PhasesAndOverlay(t *testing.T) {
	st := exampleStore()
	c := NewController(st)

	if c.Phase() != PhaseIdle {
		t.Fatalf("expected idle before drag start")
	}
	if _, ok := c.Overlay(); ok {
		t.Fatalf("expected no overlay while idle")
	}

	c.DragStart(id("item-1"))
	if c.Phase() != PhaseDragging {
		t.Fatalf("expected dragging after drag start")
	}
	ov, ok := c.Overlay()
	if !ok || ov.Kind != model.KindItem || ov.Title != "Task A" {
		t.Fatalf("unexpected item overlay: %+v, %v", ov, ok)
	}

	// Drop with no target: nothing moves, but the gesture ends.
	if c.DragEnd(id("item-1"), model.ID{}) {
		t.Fatalf("expected drop without target to be a no-op")
	}
	if c.Phase() != PhaseIdle {
		t.Fatalf("expected idle after drag end")
	}

	c.DragStart(id("container-1"))
	ov, ok = c.Overlay()
	if !ok || ov.Kind != model.KindContainer || ov.Title != "To Do" || len(ov.Items) != 1 {
		t.Fatalf("unexpected container overlay: %+v, %v", ov, ok)
	}
	c.Cancel()
	if _, ok := c.ActiveID(); ok {
		t.Fatalf("expected cancel to clear the active id")
	}
}

func TestController_OverlayForStaleIDIsEmpty(t *testing.T) {
	c := NewController(exampleStore())
	c.DragStart(id("item-gone"))

	ov, ok := c.Overlay()
	if !ok || ov.Title != "" {
		t.Fatalf("expected empty title overlay for stale id, got %+v, %v", ov, ok)
	}
}

func TestController_DragMoveIgnoresContainersAndMissingTargets(t *testing.T) {
	st := exampleStore()
	c := NewController(st)
	before := st.Snapshot()

	c.DragStart(id("container-1"))
	if c.DragMove(id("container-1"), id("container-2")) {
		t.Fatalf("containers must not move during drag move")
	}
	if c.DragMove(id("item-1"), model.ID{}) {
		t.Fatalf("expected no-op without a drop target")
	}
	if c.DragMove(id("item-1"), id("item-1")) {
		t.Fatalf("expected no-op when hovering over itself")
	}
	if st.Snapshot() != before {
		t.Fatalf("expected no new snapshot")
	}
}

func TestController_DragEndReordersContainers(t *testing.T) {
	st := board.New(&model.Board{Containers: []model.Container{
		{ID: id("container-a"), Title: "A", Items: []model.Item{{ID: id("item-a1"), Title: "a1"}}},
		{ID: id("container-b"), Title: "B", Items: []model.Item{}},
		{ID: id("container-c"), Title: "C", Items: []model.Item{{ID: id("item-c1"), Title: "c1"}}},
	}})
	c := NewController(st)

	c.DragStart(id("container-c"))
	c.DragMove(id("container-c"), id("container-a"))
	if !c.DragEnd(id("container-c"), id("container-a")) {
		t.Fatalf("expected container reorder")
	}

	want := [][]string{
		{"container-c", "item-c1"},
		{"container-a", "item-a1"},
		{"container-b"},
	}
	if got := ids(st.Snapshot()); !reflect.DeepEqual(got, want) {
		t.Fatalf("board = %v, want %v", got, want)
	}
}

func TestController_DragEndItemDelegatesToMove(t *testing.T) {
	st := board.New(&model.Board{Containers: []model.Container{
		{ID: id("container-a"), Title: "A", Items: []model.Item{{ID: id("item-1"), Title: "1"}, {ID: id("item-2"), Title: "2"}}},
		{ID: id("container-b"), Title: "B", Items: []model.Item{{ID: id("item-3"), Title: "3"}}},
	}})
	c := NewController(st)

	// Drop without any preceding move tick still places the item.
	c.DragStart(id("item-1"))
	if !c.DragEnd(id("item-1"), id("item-3")) {
		t.Fatalf("expected drag end to place the item")
	}
	want := [][]string{
		{"container-a", "item-2"},
		{"container-b", "item-1", "item-3"},
	}
	if got := ids(st.Snapshot()); !reflect.DeepEqual(got, want) {
		t.Fatalf("board = %v, want %v", got, want)
	}
}

func TestController_SettlesAfterLiveMoves(t *testing.T) {
	st := exampleStore()
	var ops []board.Op
	cancel := st.Subscribe(func(ch board.Change) { ops = append(ops, ch.Op) })
	defer cancel()

	c := NewController(st)
	if !c.Play(id("item-1"), id("container-2")) {
		t.Fatalf("expected gesture to move the item")
	}

	want := []board.Op{board.OpMoveItem, board.OpSettle}
	if !reflect.DeepEqual(ops, want) {
		t.Fatalf("ops = %v, want %v", ops, want)
	}
}

func gestureCount(t *testing.T, outcome string) float64 {
	t.Helper()
	var m dto.Metric
	if err := observability.DragGesturesTotal.WithLabelValues(outcome).Write(&m); err != nil {
		t.Fatalf("read %s counter: %v", outcome, err)
	}
	return m.GetCounter().GetValue()
}

func TestController_GestureOutcomeFollowsBoardChanges(t *testing.T) {
	st := exampleStore()
	c := NewController(st)
	moved, dropped := gestureCount(t, "moved"), gestureCount(t, "dropped")

	// Dropping onto an unknown target changes nothing.
	c.DragStart(id("item-1"))
	if c.DragEnd(id("item-1"), id("item-missing")) {
		t.Fatalf("expected unknown target to be a no-op")
	}
	if got := gestureCount(t, "moved") - moved; got != 0 {
		t.Fatalf("moved delta = %v, want 0", got)
	}
	if got := gestureCount(t, "dropped") - dropped; got != 1 {
		t.Fatalf("dropped delta = %v, want 1", got)
	}

	// A live move followed by a drop that adds nothing still counts as moved.
	c.DragStart(id("item-1"))
	if !c.DragMove(id("item-1"), id("container-2")) {
		t.Fatalf("expected live move")
	}
	if c.DragEnd(id("item-1"), id("container-2")) {
		t.Fatalf("expected drop onto current container to be a no-op")
	}
	if got := gestureCount(t, "moved") - moved; got != 1 {
		t.Fatalf("moved delta = %v, want 1", got)
	}

	// The live-move flag does not leak into the next gesture.
	c.DragStart(id("item-1"))
	c.DragEnd(id("item-1"), model.ID{})
	if got := gestureCount(t, "moved") - moved; got != 1 {
		t.Fatalf("moved delta after empty drop = %v, want 1", got)
	}
	if got := gestureCount(t, "dropped") - dropped; got != 2 {
		t.Fatalf("dropped delta = %v, want 2", got)
	}
}
