package cli

import (
	"context"
	"strings"

	"kanban-cli/internal/board"
	"kanban-cli/internal/dnd"
	"kanban-cli/internal/model"
	"kanban-cli/internal/store"
)

// session is one command's view of the board: the loaded snapshot in a board.Store whose
// changes are written back through a Syncer.
type session struct {
	ws     store.Store
	kv     store.KV
	board  *board.Store
	ctrl   *dnd.Controller
	syncer *store.Syncer
	detach func()
}

func openSession(ctx context.Context, app *App) (*session, error) {
	ws := workspace(app)
	kv, err := ws.Open(ctx)
	if err != nil {
		return nil, err
	}
	b, err := store.LoadBoard(ctx, kv)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	st := board.New(b)
	syncer := store.NewSyncer(kv, store.SyncOptions{DeferDuringDrag: app.cfg.DeferDuringDrag})
	return &session{
		ws:     ws,
		kv:     kv,
		board:  st,
		ctrl:   dnd.NewController(st),
		syncer: syncer,
		detach: syncer.Attach(st),
	}, nil
}

// close flushes anything the syncer still holds and reports the last write failure.
func (s *session) close(ctx context.Context) error {
	s.detach()
	err := s.syncer.Flush(ctx)
	if err == nil {
		err = s.syncer.LastError()
	}
	if cerr := s.kv.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// argID parses an id typed on the command line, ignoring surrounding whitespace.
func argID(s string) model.ID {
	return model.ParseID(strings.TrimSpace(s))
}
