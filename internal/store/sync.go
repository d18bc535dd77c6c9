package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"kanban-cli/internal/board"
	"kanban-cli/internal/model"
	"kanban-cli/internal/observability"
)

const writeTimeout = 5 * time.Second

type SyncOptions struct {
	// DeferDuringDrag holds back writes for transient (mid-gesture) changes until the
	// gesture settles. When false every change is written immediately.
	DeferDuringDrag bool
}

// Syncer writes the whole board document back to a KV after every committed change.
//
// A failed write is logged and counted; the syncer stays dirty and the next change or
// Flush writes the latest snapshot again.
type Syncer struct {
	kv   KV
	opts SyncOptions

	mu      sync.Mutex
	latest  *model.Board
	dirty   bool
	lastErr error
}

func NewSyncer(kv KV, opts SyncOptions) *Syncer {
	return &Syncer{kv: kv, opts: opts}
}

// Attach subscribes the syncer to st and returns the unsubscribe function.
func (s *Syncer) Attach(st *board.Store) func() {
	return st.Subscribe(s.Handle)
}

func (s *Syncer) Handle(ch board.Change) {
	s.mu.Lock()
	s.latest = ch.Board
	switch {
	case ch.Op == board.OpReplace:
		// Replaced boards come from storage (startup load, external reload).
		s.dirty = false
		s.lastErr = nil
		s.mu.Unlock()
		return
	case ch.Transient && s.opts.DeferDuringDrag:
		s.dirty = true
		s.mu.Unlock()
		return
	case ch.Op == board.OpSettle && !s.dirty:
		s.mu.Unlock()
		return
	}
	s.dirty = true
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	_ = s.Flush(ctx)
}

// Flush writes the latest snapshot if it has not been stored yet.
func (s *Syncer) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty || s.latest == nil {
		return nil
	}

	start := time.Now()
	err := SaveBoard(ctx, s.kv, s.latest)
	observability.PersistWriteSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		observability.PersistWriteErrorsTotal.Inc()
		slog.Warn("store: board write failed; will retry on next change", "err", err)
		s.lastErr = err
		return err
	}
	observability.PersistWritesTotal.Inc()
	s.dirty = false
	s.lastErr = nil
	return nil
}

func (s *Syncer) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// LastError is the error of the most recent failed write, or nil once a write succeeded.
func (s *Syncer) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
