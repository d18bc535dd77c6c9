package dnd

import (
	"log/slog"
	"sync"

	"kanban-cli/internal/board"
	"kanban-cli/internal/model"
	"kanban-cli/internal/observability"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
)

func (p Phase) String() string {
	if p == PhaseDragging {
		return "dragging"
	}
	return "idle"
}

// Controller reacts to drag gestures reported by a pointer or keyboard sensor.
//
// Items are relocated live on every DragMove so the board follows the pointer across
// containers; DragEnd only has extra work for reordering whole containers.
type Controller struct {
	store *board.Store

	mu     sync.Mutex
	active model.ID
	// moved records whether a DragMove of the current gesture changed the board.
	moved bool
}

func NewController(st *board.Store) *Controller {
	return &Controller{store: st}
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active.IsZero() {
		return PhaseIdle
	}
	return PhaseDragging
}

// ActiveID returns the id being dragged, if any.
func (c *Controller) ActiveID() (model.ID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active, !c.active.IsZero()
}

func (c *Controller) DragStart(active model.ID) {
	c.mu.Lock()
	c.active = active
	c.moved = false
	c.mu.Unlock()
	slog.Debug("dnd: drag start", "active", active.String(), "kind", active.Kind().String())
}

// DragMove handles the pointer hovering over over. A zero over means there is no drop
// target.
func (c *Controller) DragMove(active, over model.ID) bool {
	if over.IsZero() || active == over {
		return false
	}
	if !c.store.MoveItem(active, over, true) {
		return false
	}
	c.mu.Lock()
	c.moved = true
	c.mu.Unlock()
	return true
}

// DragEnd finishes the gesture and always returns the controller to idle.
func (c *Controller) DragEnd(active, over model.ID) bool {
	c.mu.Lock()
	liveMoved := c.moved
	c.mu.Unlock()
	defer c.finish()

	if over.IsZero() || active == over {
		recordItemDrop(liveMoved)
		return false
	}
	if active.IsContainer() && over.IsContainer() {
		moved := c.store.MoveContainer(active, over)
		if moved {
			observability.DragGesturesTotal.WithLabelValues("reordered").Inc()
		}
		return moved
	}
	moved := c.store.MoveItem(active, over, false)
	recordItemDrop(moved || liveMoved)
	return moved
}

// recordItemDrop counts a finished gesture as moved when it changed the board at any
// point, and as dropped otherwise.
func recordItemDrop(changed bool) {
	outcome := "dropped"
	if changed {
		outcome = "moved"
	}
	observability.DragGesturesTotal.WithLabelValues(outcome).Inc()
}

// Cancel abandons the gesture. Moves already applied by DragMove stay in place.
func (c *Controller) Cancel() {
	observability.DragGesturesTotal.WithLabelValues("cancelled").Inc()
	c.finish()
}

func (c *Controller) finish() {
	c.mu.Lock()
	prev := c.active
	c.active = model.ID{}
	c.moved = false
	c.mu.Unlock()
	c.store.Settle()
	slog.Debug("dnd: drag finished", "active", prev.String())
}

// Overlay describes what follows the pointer while dragging.
type Overlay struct {
	Kind  model.Kind
	ID    model.ID
	Title string
	// Items is set when a whole container is being dragged.
	Items []model.Item
}

// Overlay returns the overlay for the active id. ok is false when idle or when the active
// id is neither an item nor a container.
func (c *Controller) Overlay() (Overlay, bool) {
	active, dragging := c.ActiveID()
	if !dragging {
		return Overlay{}, false
	}
	snap := c.store.Snapshot()
	switch {
	case active.IsItem():
		return Overlay{Kind: model.KindItem, ID: active, Title: snap.FindItemTitle(active)}, true
	case active.IsContainer():
		return Overlay{
			Kind:  model.KindContainer,
			ID:    active,
			Title: snap.FindContainerTitle(active),
			Items: snap.FindContainerItems(active),
		}, true
	}
	return Overlay{}, false
}

// Play runs a complete gesture: start, one move over the target, and the drop.
func (c *Controller) Play(active, over model.ID) bool {
	c.DragStart(active)
	moved := c.DragMove(active, over)
	if c.DragEnd(active, over) {
		moved = true
	}
	return moved
}
