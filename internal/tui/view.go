package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kanban-cli/internal/dnd"
	"kanban-cli/internal/model"
)

const overlayMaxItems = 5

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	snap := m.board.Snapshot()

	header := lipgloss.NewStyle().Bold(true).Render("kanban") + " " +
		styleMuted().Render(fmt.Sprintf("%s · %s · %d columns, %d items",
			m.ws.Dir, m.ws.Backend, len(snap.Containers), snap.ItemCount()))
	header = truncateText(header, m.width)

	footer := m.footer(snap)
	bodyH := max(m.height-1-lipgloss.Height(footer), 1)

	active, _ := m.ctrl.ActiveID()
	body := columnsView{board: snap, sel: m.sel, active: active, dropCol: m.dropCol}.render(m.width, bodyH)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m appModel) footer(snap *model.Board) string {
	var lines []string
	switch m.mode {
	case modeDrag:
		if ov, ok := m.ctrl.Overlay(); ok {
			lines = append(lines, renderOverlay(ov, m.width))
		}
		lines = append(lines, styleMuted().Render(helpLine(m.keys.Up, m.keys.Left, m.keys.Drop, m.keys.Cancel)))
	case modeInput:
		lines = append(lines, renderInputLine(m.width, inputLabel(m.inputFor), m.input.View()))
		lines = append(lines, styleMuted().Render("enter save  esc cancel"))
	case modeConfirmDelete:
		what := fmt.Sprintf("column %q and its %d items", snap.FindContainerTitle(m.deleteContainer), len(snap.FindContainerItems(m.deleteContainer)))
		if !m.deleteItem.IsZero() {
			what = fmt.Sprintf("item %q", snap.FindItemTitle(m.deleteItem))
		}
		lines = append(lines, styleError().Render("Delete "+what+"? (y/n)"))
	default:
		if m.flash != "" {
			st := styleMuted()
			if m.flashErr {
				st = styleError()
			}
			lines = append(lines, st.Render(m.flash))
		}
		lines = append(lines, styleMuted().Render(helpLine(
			m.keys.Pick, m.keys.AddItem, m.keys.AddContainer, m.keys.Edit, m.keys.Delete, m.keys.Quit)))
	}
	out := strings.Split(strings.Join(lines, "\n"), "\n")
	for i := range out {
		out[i] = truncateText(out[i], m.width)
	}
	return strings.Join(out, "\n")
}

func inputLabel(p inputPurpose) string {
	switch p {
	case inputAddItem:
		return "New item:"
	case inputAddContainer:
		return "New column:"
	case inputEditItem:
		return "Edit item:"
	default:
		return "Edit column:"
	}
}

// renderOverlay draws what follows the cursor while dragging: an item's title, or a
// column's title with its first few items.
func renderOverlay(ov dnd.Overlay, width int) string {
	title := strings.TrimSpace(ov.Title)
	if title == "" {
		title = "(untitled)"
	}
	lines := []string{lipgloss.NewStyle().Bold(true).Render("≡ " + title)}
	if ov.Kind == model.KindContainer {
		for i, it := range ov.Items {
			if i == overlayMaxItems {
				lines = append(lines, styleMuted().Render(fmt.Sprintf("  +%d more", len(ov.Items)-overlayMaxItems)))
				break
			}
			lines = append(lines, "  "+truncateText(it.Title, max(width-8, 1)))
		}
		if len(ov.Items) == 0 {
			lines = append(lines, styleMuted().Render("  (empty)"))
		}
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorOverlayEdge).
		Padding(0, 1).
		MaxWidth(max(width, 4))
	return box.Render(strings.Join(lines, "\n"))
}
