package mutate

import (
	"kanban-cli/internal/model"
)

// MoveItem relocates the item activeID relative to the drop target overID.
//
// If overID names an item, the moved item is inserted right before it (the target index
// is looked up after the moved item has been removed, so moving down within the same
// container lands before the target). If overID names a container, the item is appended
// to that container.
func MoveItem(b *model.Board, activeID, overID model.ID) bool {
	if b == nil || overID.IsZero() || activeID == overID {
		return false
	}
	src := b.ContainerIndexOfItem(activeID)
	dst, ok := b.Locate(overID)
	if src < 0 || !ok {
		return false
	}

	moved, ok := removeItem(&b.Containers[src], activeID)
	if !ok {
		return false
	}

	dc := &b.Containers[dst]
	if overID.IsItem() {
		at := -1
		for i := range dc.Items {
			if dc.Items[i].ID == overID {
				at = i
				break
			}
		}
		if at < 0 {
			at = len(dc.Items)
		}
		dc.Items = insertAt(dc.Items, at, moved)
	} else {
		dc.Items = append(dc.Items, moved)
	}
	return true
}

// MoveContainer moves container activeID to the index currently held by overID,
// shifting the containers in between by one.
func MoveContainer(b *model.Board, activeID, overID model.ID) bool {
	if b == nil || activeID == overID {
		return false
	}
	from := b.ContainerIndex(activeID)
	to := b.ContainerIndex(overID)
	if from < 0 || to < 0 {
		return false
	}
	b.Containers = ArrayMove(b.Containers, from, to)
	return true
}

// ArrayMove returns a new slice with the element at from relocated to to.
// Out-of-range indexes return an unchanged copy.
func ArrayMove[T any](xs []T, from, to int) []T {
	out := make([]T, len(xs))
	copy(out, xs)
	if from < 0 || from >= len(xs) || to < 0 || to >= len(xs) || from == to {
		return out
	}
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	return insertAt(out, to, moved)
}

func insertAt[T any](xs []T, at int, v T) []T {
	if at < 0 {
		at = 0
	}
	if at > len(xs) {
		at = len(xs)
	}
	var zero T
	xs = append(xs, zero)
	copy(xs[at+1:], xs[at:])
	xs[at] = v
	return xs
}
