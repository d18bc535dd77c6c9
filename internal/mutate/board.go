package mutate

import (
	"kanban-cli/internal/model"
)

// The functions in this package mutate the board in place and report whether anything
// changed. Misses and empty titles are no-ops, never errors.

func AddContainer(b *model.Board, id model.ID, title string) bool {
	if b == nil || title == "" || id.IsZero() {
		return false
	}
	b.Containers = append(b.Containers, model.Container{
		ID:    id,
		Title: title,
		Items: []model.Item{},
	})
	return true
}

func AddItem(b *model.Board, containerID, id model.ID, title string) bool {
	if b == nil || title == "" || id.IsZero() {
		return false
	}
	c, ok := b.FindContainer(containerID)
	if !ok {
		return false
	}
	c.Items = append(c.Items, model.Item{ID: id, Title: title})
	return true
}

// DeleteContainer drops the container together with its items.
func DeleteContainer(b *model.Board, id model.ID) bool {
	i := b.ContainerIndex(id)
	if i < 0 {
		return false
	}
	b.Containers = append(b.Containers[:i], b.Containers[i+1:]...)
	return true
}

func DeleteItem(b *model.Board, containerID, itemID model.ID) bool {
	c, ok := b.FindContainer(containerID)
	if !ok {
		return false
	}
	_, ok = removeItem(c, itemID)
	return ok
}

func EditContainer(b *model.Board, id model.ID, title string) bool {
	c, ok := b.FindContainer(id)
	if !ok || c.Title == title {
		return false
	}
	c.Title = title
	return true
}

func EditItem(b *model.Board, containerID, itemID model.ID, title string) bool {
	i := b.ItemIndex(containerID, itemID)
	if i < 0 {
		return false
	}
	c, _ := b.FindContainer(containerID)
	if c.Items[i].Title == title {
		return false
	}
	c.Items[i].Title = title
	return true
}

func removeItem(c *model.Container, itemID model.ID) (model.Item, bool) {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			it := c.Items[i]
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return it, true
		}
	}
	return model.Item{}, false
}
