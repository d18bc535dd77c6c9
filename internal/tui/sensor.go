package tui

import "kanban-cli/internal/model"

// itemDropTarget acts as the keyboard sensor for item drags. It picks the id to hover over
// so that the splice in mutate.MoveItem moves active one step: dy within its container,
// dx to the same position in the neighbouring container. ok is false at the board edges.
func itemDropTarget(b *model.Board, active model.ID, dx, dy int) (model.ID, bool) {
	ci := b.ContainerIndexOfItem(active)
	if ci < 0 {
		return model.ID{}, false
	}
	src := b.Containers[ci]
	ii := b.ItemIndex(src.ID, active)

	if dx == 0 {
		p := ii + dy
		rest := without(src.Items, active)
		if dy == 0 || p < 0 || p > len(rest) {
			return model.ID{}, false
		}
		return overAt(src.ID, rest, p), true
	}

	nc := ci + dx
	if nc < 0 || nc >= len(b.Containers) {
		return model.ID{}, false
	}
	dest := b.Containers[nc]
	return overAt(dest.ID, dest.Items, min(ii, len(dest.Items))), true
}

// overAt is the item at position p, or the container itself (append) past the end.
func overAt(containerID model.ID, items []model.Item, p int) model.ID {
	if p < len(items) {
		return items[p].ID
	}
	return containerID
}

func without(items []model.Item, id model.ID) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}
