package model

// Lookups over the board. All of them are linear scans; boards are UI-sized.

func (b *Board) ContainerIndex(id ID) int {
	if b == nil || id.IsZero() {
		return -1
	}
	for i := range b.Containers {
		if b.Containers[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) FindContainer(id ID) (*Container, bool) {
	i := b.ContainerIndex(id)
	if i < 0 {
		return nil, false
	}
	return &b.Containers[i], true
}

// ContainerIndexOfItem returns the index of the container holding itemID, or -1.
func (b *Board) ContainerIndexOfItem(itemID ID) int {
	if b == nil || itemID.IsZero() {
		return -1
	}
	for i := range b.Containers {
		if indexOfItem(b.Containers[i].Items, itemID) >= 0 {
			return i
		}
	}
	return -1
}

// FindContainerOfItem returns the container whose items include itemID. Item ids are
// unique, so the first match is the only one.
func (b *Board) FindContainerOfItem(itemID ID) (*Container, bool) {
	i := b.ContainerIndexOfItem(itemID)
	if i < 0 {
		return nil, false
	}
	return &b.Containers[i], true
}

func (b *Board) FindItem(itemID ID) (*Item, bool) {
	c, ok := b.FindContainerOfItem(itemID)
	if !ok {
		return nil, false
	}
	return &c.Items[indexOfItem(c.Items, itemID)], true
}

// ItemIndex returns the position of itemID inside containerID, or -1.
func (b *Board) ItemIndex(containerID, itemID ID) int {
	c, ok := b.FindContainer(containerID)
	if !ok {
		return -1
	}
	return indexOfItem(c.Items, itemID)
}

// Locate resolves the container a drop target belongs to: item ids resolve to the
// container holding the item, anything else is looked up as a container id.
func (b *Board) Locate(id ID) (int, bool) {
	var i int
	if id.IsItem() {
		i = b.ContainerIndexOfItem(id)
	} else {
		i = b.ContainerIndex(id)
	}
	return i, i >= 0
}

func (b *Board) FindItemTitle(itemID ID) string {
	it, ok := b.FindItem(itemID)
	if !ok {
		return ""
	}
	return it.Title
}

func (b *Board) FindContainerTitle(id ID) string {
	c, ok := b.FindContainer(id)
	if !ok {
		return ""
	}
	return c.Title
}

// FindContainerItems never returns nil.
func (b *Board) FindContainerItems(id ID) []Item {
	c, ok := b.FindContainer(id)
	if !ok || c.Items == nil {
		return []Item{}
	}
	return c.Items
}

func indexOfItem(items []Item, id ID) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
