package mutate

import (
	"testing"

	"kanban-cli/internal/model"
)

func id(s string) model.ID { return model.ParseID(s) }

func twoColumns() *model.Board {
	return &model.Board{Containers: []model.Container{
		{ID: id("container-1"), Title: "To Do", Items: []model.Item{{ID: id("item-1"), Title: "Task A"}}},
		{ID: id("container-2"), Title: "Done", Items: []model.Item{}},
	}}
}

func TestAddContainer(t *testing.T) {
	b := twoColumns()

	if !AddContainer(b, id("container-3"), "Later") {
		t.Fatalf("expected AddContainer to change the board")
	}
	if got := len(b.Containers); got != 3 {
		t.Fatalf("container count = %d, want 3", got)
	}
	last := b.Containers[2]
	if last.ID != id("container-3") || last.Title != "Later" {
		t.Fatalf("unexpected appended container: %+v", last)
	}
	if last.Items == nil || len(last.Items) != 0 {
		t.Fatalf("expected new container to have an empty item list, got %#v", last.Items)
	}
}

func TestAddContainer_EmptyTitleIsNoop(t *testing.T) {
	b := twoColumns()
	before := b.Clone()

	if AddContainer(b, id("container-3"), "") {
		t.Fatalf("expected empty title to be ignored")
	}
	if !b.Equal(before) {
		t.Fatalf("board changed on empty title")
	}
}

func TestAddItem(t *testing.T) {
	b := twoColumns()

	if AddItem(b, id("container-2"), id("item-2"), "") {
		t.Fatalf("expected empty title to be ignored")
	}
	if AddItem(b, id("container-9"), id("item-2"), "Task B") {
		t.Fatalf("expected unknown container to be ignored")
	}
	if !AddItem(b, id("container-2"), id("item-2"), "Task B") {
		t.Fatalf("expected AddItem to change the board")
	}
	items := b.FindContainerItems(id("container-2"))
	if len(items) != 1 || items[0].ID != id("item-2") || items[0].Title != "Task B" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestDeleteContainer_DropsItems(t *testing.T) {
	b := twoColumns()

	if DeleteContainer(b, id("container-9")) {
		t.Fatalf("expected unknown id to be a no-op")
	}
	if !DeleteContainer(b, id("container-1")) {
		t.Fatalf("expected delete to change the board")
	}
	if len(b.Containers) != 1 || b.Containers[0].ID != id("container-2") {
		t.Fatalf("unexpected containers: %+v", b.Containers)
	}
	if _, ok := b.FindItem(id("item-1")); ok {
		t.Fatalf("expected items of the deleted container to be gone")
	}
}

func TestDeleteItem(t *testing.T) {
	b := twoColumns()

	if DeleteItem(b, id("container-2"), id("item-1")) {
		t.Fatalf("expected delete from the wrong container to be a no-op")
	}
	if !DeleteItem(b, id("container-1"), id("item-1")) {
		t.Fatalf("expected delete to change the board")
	}
	if n := b.ItemCount(); n != 0 {
		t.Fatalf("item count = %d, want 0", n)
	}
}

func TestEditTitles(t *testing.T) {
	b := twoColumns()

	if !EditContainer(b, id("container-1"), "Backlog") {
		t.Fatalf("expected EditContainer to change the board")
	}
	if EditContainer(b, id("container-9"), "x") {
		t.Fatalf("expected unknown container to be a no-op")
	}
	if !EditItem(b, id("container-1"), id("item-1"), "Task A2") {
		t.Fatalf("expected EditItem to change the board")
	}
	if EditItem(b, id("container-2"), id("item-1"), "x") {
		t.Fatalf("expected item in wrong container to be a no-op")
	}
	if got := b.FindContainerTitle(id("container-1")); got != "Backlog" {
		t.Fatalf("container title = %q", got)
	}
	if got := b.FindItemTitle(id("item-1")); got != "Task A2" {
		t.Fatalf("item title = %q", got)
	}
}
