package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"kanban-cli/internal/model"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-20, 10)
		return m, nil

	case watchEventMsg:
		if !msg.ok {
			return m, nil
		}
		return m, tea.Batch(m.reloadCmd(), waitForWatch(m.watch))

	case reloadedMsg:
		cmd := m.applyReload(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.mode {
		case modeDrag:
			return m.updateDrag(msg)
		case modeInput:
			return m.updateInput(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		}
		return m.updateBrowse(msg)
	}

	if m.mode == modeInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// applyReload swaps in a board another process wrote. Reloads are skipped mid-gesture and
// while local changes are still unsaved so nothing in memory is lost. A load that started
// before the latest commit may hold an older document; it is dropped and read again.
func (m *appModel) applyReload(msg reloadedMsg) tea.Cmd {
	if msg.err != nil {
		m.setError(fmt.Errorf("reload: %w", msg.err))
		return nil
	}
	if m.mode == modeDrag || (m.syncer != nil && m.syncer.Dirty()) {
		slog.Debug("tui: external change deferred", "mode", m.mode)
		return nil
	}
	if rev := m.board.Revision(); msg.rev != rev {
		slog.Debug("tui: stale reload dropped", "loaded_at", msg.rev, "revision", rev)
		return m.reloadCmd()
	}
	if msg.board.Equal(m.board.Snapshot()) {
		return nil
	}
	keep := m.selectedID()
	m.board.Replace(msg.board)
	m.follow(keep)
	m.setFlash("reloaded external changes")
	return nil
}

func (m appModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.board.Snapshot()
	m.sel = clampSelection(snap, m.sel)
	m.flash = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.sel.Item > itemSelectAll {
			m.sel.Item--
		}
	case key.Matches(msg, m.keys.Down):
		m.sel.Item++
		m.sel = clampSelection(snap, m.sel)
	case key.Matches(msg, m.keys.Left):
		m.sel.Col--
		m.sel = clampSelection(snap, m.sel)
	case key.Matches(msg, m.keys.Right):
		m.sel.Col++
		m.sel = clampSelection(snap, m.sel)
	case key.Matches(msg, m.keys.Pick):
		active := m.selectedID()
		if active.IsZero() {
			return m, nil
		}
		m.ctrl.DragStart(active)
		m.mode = modeDrag
		m.lastOver = model.ID{}
		m.dropCol = m.sel.Col
	case key.Matches(msg, m.keys.AddItem):
		cID, _ := selectedIDs(snap, m.sel)
		if cID.IsZero() {
			m.setFlash("add a column first (A)")
			return m, nil
		}
		return m.startInput(inputAddItem, cID, model.ID{}, "")
	case key.Matches(msg, m.keys.AddContainer):
		return m.startInput(inputAddContainer, model.ID{}, model.ID{}, "")
	case key.Matches(msg, m.keys.Edit):
		cID, iID := selectedIDs(snap, m.sel)
		switch {
		case !iID.IsZero():
			return m.startInput(inputEditItem, cID, iID, snap.FindItemTitle(iID))
		case !cID.IsZero():
			return m.startInput(inputEditContainer, cID, model.ID{}, snap.FindContainerTitle(cID))
		}
	case key.Matches(msg, m.keys.Delete):
		cID, iID := selectedIDs(snap, m.sel)
		if cID.IsZero() {
			return m, nil
		}
		m.deleteContainer, m.deleteItem = cID, iID
		m.mode = modeConfirmDelete
	}
	return m, nil
}

func (m appModel) updateDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	active, dragging := m.ctrl.ActiveID()
	if !dragging {
		m.mode = modeBrowse
		return m, nil
	}
	snap := m.board.Snapshot()

	var dx, dy int
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.ctrl.Cancel()
		m.mode = modeBrowse
		m.follow(active)
		m.reportSaveError()
		return m, nil
	case key.Matches(msg, m.keys.Drop):
		over := m.lastOver
		if active.IsContainer() && m.dropCol < len(snap.Containers) {
			over = snap.Containers[m.dropCol].ID
		}
		m.ctrl.DragEnd(active, over)
		m.mode = modeBrowse
		m.follow(active)
		m.reportSaveError()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		dy = -1
	case key.Matches(msg, m.keys.Down):
		dy = 1
	case key.Matches(msg, m.keys.Left):
		dx = -1
	case key.Matches(msg, m.keys.Right):
		dx = 1
	default:
		return m, nil
	}

	if active.IsContainer() {
		m.dropCol = min(max(m.dropCol+dx, 0), max(len(snap.Containers)-1, 0))
		if m.dropCol < len(snap.Containers) {
			m.lastOver = snap.Containers[m.dropCol].ID
			// Containers only move on drop; the move tick is still reported.
			m.ctrl.DragMove(active, m.lastOver)
		}
		return m, nil
	}

	over, ok := itemDropTarget(snap, active, dx, dy)
	if !ok {
		return m, nil
	}
	if m.ctrl.DragMove(active, over) {
		m.lastOver = over
	}
	m.follow(active)
	m.reportSaveError()
	return m, nil
}

func (m appModel) startInput(purpose inputPurpose, containerID, itemID model.ID, value string) (tea.Model, tea.Cmd) {
	m.mode = modeInput
	m.inputFor = purpose
	m.inputContainer = containerID
	m.inputItem = itemID
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input.Blur()
		m.mode = modeBrowse
		return m, nil
	case tea.KeyEnter:
		m.input.Blur()
		m.mode = modeBrowse
		m.commitInput(m.input.Value())
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *appModel) commitInput(value string) {
	title := strings.TrimSpace(value)
	switch m.inputFor {
	case inputAddItem:
		if id, ok := m.board.AddItem(m.inputContainer, title); ok {
			m.follow(id)
		} else if title == "" {
			m.setFlash("empty title, nothing added")
		}
	case inputAddContainer:
		if id, ok := m.board.AddContainer(title); ok {
			m.follow(id)
		} else if title == "" {
			m.setFlash("empty title, nothing added")
		}
	case inputEditItem:
		m.board.EditItem(m.inputContainer, m.inputItem, title)
	case inputEditContainer:
		m.board.EditContainer(m.inputContainer, title)
	}
	m.reportSaveError()
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		if m.deleteItem.IsZero() {
			m.board.DeleteContainer(m.deleteContainer)
		} else {
			m.board.DeleteItem(m.deleteContainer, m.deleteItem)
		}
		m.sel = clampSelection(m.board.Snapshot(), m.sel)
		m.mode = modeBrowse
		m.reportSaveError()
	case key.Matches(msg, m.keys.Deny):
		m.mode = modeBrowse
	}
	return m, nil
}

// follow moves the cursor onto id if it is still on the board.
func (m *appModel) follow(id model.ID) {
	snap := m.board.Snapshot()
	if sel, ok := selectionOf(snap, id); ok {
		m.sel = sel
		return
	}
	m.sel = clampSelection(snap, m.sel)
}

func (m *appModel) reportSaveError() {
	if m.syncer == nil {
		return
	}
	if err := m.syncer.LastError(); err != nil {
		m.setError(fmt.Errorf("not saved: %w", err))
	}
}

func (m *appModel) setFlash(s string) {
	m.flash = s
	m.flashErr = false
}

func (m *appModel) setError(err error) {
	m.flash = err.Error()
	m.flashErr = true
}
