package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"kanban-cli/internal/board"
	"kanban-cli/internal/store"
)

type Options struct {
	Workspace store.Store
	Board     *board.Store
	Syncer    *store.Syncer
	// Watch delivers external changes to the stored document; nil disables reloading.
	Watch <-chan store.WatchEvent
}

// Run shows the interactive board until the user quits. Pending writes are flushed and the
// cursor position is remembered for the next launch.
func Run(ctx context.Context, opts Options) error {
	applyColorProfilePreference()
	m := newAppModel(ctx, opts)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()

	if fm, ok := final.(appModel); ok {
		if serr := opts.Workspace.SaveTUIState(fm.state()); serr != nil {
			slog.Warn("tui: save state failed", "err", serr)
		}
	}
	if opts.Syncer != nil {
		if ferr := opts.Syncer.Flush(context.WithoutCancel(ctx)); ferr != nil && err == nil {
			err = ferr
		}
	}
	return err
}
