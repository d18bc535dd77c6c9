// Package board holds the in-memory board snapshot and applies mutations to it.
//
// Snapshots are copy-on-write: every mutation clones the current board, applies one of
// the mutate functions, and swaps the snapshot pointer in a single assignment. A board
// returned by Snapshot is never modified afterwards, so callers can keep rendering it
// while new snapshots are committed.
package board

import (
	"log/slog"
	"sync"

	"kanban-cli/internal/model"
	"kanban-cli/internal/mutate"
	"kanban-cli/internal/observability"
)

type Op string

const (
	OpAddContainer    Op = "add-container"
	OpAddItem         Op = "add-item"
	OpDeleteContainer Op = "delete-container"
	OpDeleteItem      Op = "delete-item"
	OpEditContainer   Op = "edit-container"
	OpEditItem        Op = "edit-item"
	OpMoveItem        Op = "move-item"
	OpMoveContainer   Op = "move-container"
	OpReplace         Op = "replace"
	OpSettle          Op = "settle"
)

// Change is delivered to subscribers after a snapshot was committed.
type Change struct {
	Op    Op
	Board *model.Board
	// Transient marks changes made while a drag gesture is still in progress.
	Transient bool
}

type Store struct {
	mu      sync.Mutex
	current *model.Board
	rev     uint64
	ids     model.IDSource

	subs    map[int]func(Change)
	nextSub int

	// pendingSettle is set when transient changes were committed since the last Settle.
	pendingSettle bool
}

type Option func(*Store)

// WithIDSource overrides how new container/item ids are generated.
func WithIDSource(src model.IDSource) Option {
	return func(s *Store) { s.ids = src }
}

func New(initial *model.Board, opts ...Option) *Store {
	if initial == nil {
		initial = model.NewBoard()
	}
	s := &Store{
		current: initial.Clone(),
		ids:     model.UUIDSource{},
		subs:    map[int]func(Change){},
	}
	for _, opt := range opts {
		opt(s)
	}
	observability.ObserveBoard(s.current)
	return s
}

func (s *Store) Snapshot() *model.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Revision counts committed snapshots (mutations and replacements). It only grows.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rev
}

// Subscribe registers fn for change notifications and returns a function that removes it.
// Subscribers run synchronously on the goroutine that committed the change.
func (s *Store) Subscribe(fn func(Change)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) AddContainer(title string) (model.ID, bool) {
	newID := s.ids.NewID(model.KindContainer)
	ok := s.apply(OpAddContainer, false, func(b *model.Board) bool {
		return mutate.AddContainer(b, newID, title)
	})
	if !ok {
		return model.ID{}, false
	}
	return newID, true
}

func (s *Store) AddItem(containerID model.ID, title string) (model.ID, bool) {
	newID := s.ids.NewID(model.KindItem)
	ok := s.apply(OpAddItem, false, func(b *model.Board) bool {
		return mutate.AddItem(b, containerID, newID, title)
	})
	if !ok {
		return model.ID{}, false
	}
	return newID, true
}

func (s *Store) DeleteContainer(id model.ID) bool {
	return s.apply(OpDeleteContainer, false, func(b *model.Board) bool {
		return mutate.DeleteContainer(b, id)
	})
}

func (s *Store) DeleteItem(containerID, itemID model.ID) bool {
	return s.apply(OpDeleteItem, false, func(b *model.Board) bool {
		return mutate.DeleteItem(b, containerID, itemID)
	})
}

func (s *Store) EditContainer(id model.ID, title string) bool {
	return s.apply(OpEditContainer, false, func(b *model.Board) bool {
		return mutate.EditContainer(b, id, title)
	})
}

func (s *Store) EditItem(containerID, itemID model.ID, title string) bool {
	return s.apply(OpEditItem, false, func(b *model.Board) bool {
		return mutate.EditItem(b, containerID, itemID, title)
	})
}

// MoveItem places activeID relative to overID (see mutate.MoveItem). transient marks
// moves made mid-gesture.
func (s *Store) MoveItem(activeID, overID model.ID, transient bool) bool {
	return s.apply(OpMoveItem, transient, func(b *model.Board) bool {
		return mutate.MoveItem(b, activeID, overID)
	})
}

func (s *Store) MoveContainer(activeID, overID model.ID) bool {
	return s.apply(OpMoveContainer, false, func(b *model.Board) bool {
		return mutate.MoveContainer(b, activeID, overID)
	})
}

// Replace swaps in a whole board, e.g. after loading from storage.
func (s *Store) Replace(b *model.Board) {
	if b == nil {
		b = model.NewBoard()
	}
	next := b.Clone()
	s.mu.Lock()
	s.current = next
	s.rev++
	s.pendingSettle = false
	subs := s.subscribersLocked()
	s.mu.Unlock()

	observability.ObserveBoard(next)
	notify(subs, Change{Op: OpReplace, Board: next})
}

// Settle marks the end of a gesture. If transient changes were committed since the last
// call, subscribers receive an OpSettle change carrying the current snapshot.
func (s *Store) Settle() bool {
	s.mu.Lock()
	if !s.pendingSettle {
		s.mu.Unlock()
		return false
	}
	s.pendingSettle = false
	cur := s.current
	subs := s.subscribersLocked()
	s.mu.Unlock()

	notify(subs, Change{Op: OpSettle, Board: cur})
	return true
}

func (s *Store) apply(op Op, transient bool, fn func(*model.Board) bool) bool {
	s.mu.Lock()
	next := s.current.Clone()
	if !fn(next) || next.Equal(s.current) {
		s.mu.Unlock()
		slog.Debug("board: no-op mutation", "op", op)
		return false
	}
	s.current = next
	s.rev++
	if transient {
		s.pendingSettle = true
	}
	subs := s.subscribersLocked()
	s.mu.Unlock()

	observability.MutationsTotal.WithLabelValues(string(op)).Inc()
	observability.ObserveBoard(next)
	slog.Debug("board: committed", "op", op, "transient", transient, "containers", len(next.Containers))
	notify(subs, Change{Op: op, Board: next, Transient: transient})
	return true
}

func (s *Store) subscribersLocked() []func(Change) {
	out := make([]func(Change), 0, len(s.subs))
	for i := 0; i < s.nextSub; i++ {
		if fn, ok := s.subs[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify(subs []func(Change), ch Change) {
	for _, fn := range subs {
		fn(ch)
	}
}
