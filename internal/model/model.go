package model

type Item struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
}

type Container struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Board is the ordered list of containers. Container order and item order within a
// container are both display order.
type Board struct {
	Containers []Container `json:"containers"`
}

func NewBoard() *Board {
	return &Board{Containers: []Container{}}
}

// Clone returns a deep copy. Committed snapshots are treated as immutable, so every
// mutation starts from a clone.
func (b *Board) Clone() *Board {
	if b == nil {
		return NewBoard()
	}
	out := &Board{Containers: make([]Container, len(b.Containers))}
	for i, c := range b.Containers {
		items := make([]Item, len(c.Items))
		copy(items, c.Items)
		out.Containers[i] = Container{ID: c.ID, Title: c.Title, Items: items}
	}
	return out
}

func (b *Board) ItemCount() int {
	if b == nil {
		return 0
	}
	n := 0
	for _, c := range b.Containers {
		n += len(c.Items)
	}
	return n
}

// Equal reports whether two boards have the same containers and items in the same order.
func (b *Board) Equal(o *Board) bool {
	if b == nil || o == nil {
		return b == o
	}
	if len(b.Containers) != len(o.Containers) {
		return false
	}
	for i := range b.Containers {
		x, y := b.Containers[i], o.Containers[i]
		if x.ID != y.ID || x.Title != y.Title || len(x.Items) != len(y.Items) {
			return false
		}
		for j := range x.Items {
			if x.Items[j] != y.Items[j] {
				return false
			}
		}
	}
	return true
}
