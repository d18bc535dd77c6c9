package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"kanban-cli/internal/board"
	"kanban-cli/internal/dnd"
	"kanban-cli/internal/model"
	"kanban-cli/internal/store"
)

type mode int

const (
	modeBrowse mode = iota
	modeDrag
	modeInput
	modeConfirmDelete
)

type inputPurpose int

const (
	inputAddItem inputPurpose = iota
	inputAddContainer
	inputEditItem
	inputEditContainer
)

type appModel struct {
	ctx    context.Context
	ws     store.Store
	board  *board.Store
	ctrl   *dnd.Controller
	syncer *store.Syncer
	watch  <-chan store.WatchEvent
	keys   keyMap

	width  int
	height int

	mode mode
	sel  selection

	// lastOver is the most recent drop target of an item drag.
	lastOver model.ID
	// dropCol is where a dragged container would be dropped.
	dropCol int

	input          textinput.Model
	inputFor       inputPurpose
	inputContainer model.ID
	inputItem      model.ID

	deleteContainer model.ID
	deleteItem      model.ID

	flash    string
	flashErr bool
}

type watchEventMsg struct {
	ev store.WatchEvent
	ok bool
}

type reloadedMsg struct {
	board *model.Board
	err   error
	// rev is the board revision when the load was started.
	rev uint64
}

func newAppModel(ctx context.Context, opts Options) appModel {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Prompt = ""

	m := appModel{
		ctx:    ctx,
		ws:     opts.Workspace,
		board:  opts.Board,
		ctrl:   dnd.NewController(opts.Board),
		syncer: opts.Syncer,
		watch:  opts.Watch,
		keys:   defaultKeyMap(),
		input:  ti,
		sel:    selection{Item: itemSelectAll},
	}
	if st, err := m.ws.LoadTUIState(); err == nil {
		snap := m.board.Snapshot()
		if sel, ok := selectionOf(snap, model.ParseID(st.SelectedItemID)); ok {
			m.sel = sel
		} else if sel, ok := selectionOf(snap, model.ParseID(st.SelectedContainerID)); ok {
			m.sel = sel
		}
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	return waitForWatch(m.watch)
}

func waitForWatch(ch <-chan store.WatchEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		return watchEventMsg{ev: ev, ok: ok}
	}
}

func (m appModel) reloadCmd() tea.Cmd {
	ws, ctx := m.ws, m.ctx
	rev := m.board.Revision()
	return func() tea.Msg {
		b, err := ws.Load(ctx)
		return reloadedMsg{board: b, err: err, rev: rev}
	}
}

// selectedID is the id under the cursor: the selected item, else its container.
func (m appModel) selectedID() model.ID {
	cID, iID := selectedIDs(m.board.Snapshot(), m.sel)
	if !iID.IsZero() {
		return iID
	}
	return cID
}

func (m appModel) state() *store.TUIState {
	cID, iID := selectedIDs(m.board.Snapshot(), m.sel)
	return &store.TUIState{Version: 1, SelectedContainerID: cID.String(), SelectedItemID: iID.String()}
}
