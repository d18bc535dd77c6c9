package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kanban-cli/internal/model"
)

const (
	columnGap     = 2
	minColumnW    = 16
	maxColumnW    = 40
	itemSelectAll = -1
)

// selection points at a column and, within it, an item. Item == itemSelectAll selects the
// column (container) itself.
type selection struct {
	Col  int
	Item int
}

func clampSelection(b *model.Board, sel selection) selection {
	if b == nil || len(b.Containers) == 0 {
		return selection{Col: 0, Item: itemSelectAll}
	}
	sel.Col = min(max(sel.Col, 0), len(b.Containers)-1)
	n := len(b.Containers[sel.Col].Items)
	if sel.Item >= n {
		sel.Item = n - 1
	}
	if sel.Item < itemSelectAll {
		sel.Item = itemSelectAll
	}
	return sel
}

// selectionOf finds id on the board: an item id selects the item, a container id its column.
func selectionOf(b *model.Board, id model.ID) (selection, bool) {
	if b == nil || id.IsZero() {
		return selection{}, false
	}
	for ci, c := range b.Containers {
		if c.ID == id {
			return selection{Col: ci, Item: itemSelectAll}, true
		}
		for ii, it := range c.Items {
			if it.ID == id {
				return selection{Col: ci, Item: ii}, true
			}
		}
	}
	return selection{}, false
}

func selectedIDs(b *model.Board, sel selection) (containerID, itemID model.ID) {
	sel = clampSelection(b, sel)
	if b == nil || len(b.Containers) == 0 {
		return model.ID{}, model.ID{}
	}
	c := b.Containers[sel.Col]
	if sel.Item == itemSelectAll {
		return c.ID, model.ID{}
	}
	return c.ID, c.Items[sel.Item].ID
}

// visibleColumns returns the [from, to) window of columns that fit width, keeping focus
// in view.
func visibleColumns(n, focus, width int) (int, int) {
	fit := max((width+columnGap)/(minColumnW+columnGap), 1)
	if n <= fit {
		return 0, n
	}
	from := min(max(focus-fit/2, 0), n-fit)
	return from, from + fit
}

type columnsView struct {
	board *model.Board
	sel   selection
	// active is the id being dragged; zero when idle.
	active model.ID
	// dropCol is the column a dragged container would land on.
	dropCol int
}

func (v columnsView) render(width, height int) string {
	b := v.board
	if b == nil || len(b.Containers) == 0 {
		msg := styleMuted().Render("No containers yet. Press A to add one.")
		return normalizePane(msg, width, height)
	}
	sel := clampSelection(b, v.sel)
	focus := sel.Col
	if v.active.IsContainer() {
		focus = v.dropCol
	}
	from, to := visibleColumns(len(b.Containers), focus, width)
	n := to - from
	colW := min(max((width-columnGap*(n-1))/n, minColumnW), maxColumnW)

	rendered := make([]string, 0, n*2)
	for ci := from; ci < to; ci++ {
		if len(rendered) > 0 {
			rendered = append(rendered, strings.Repeat(" ", columnGap))
		}
		rendered = append(rendered, v.renderColumn(ci, sel, colW, height))
	}
	out := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	if from > 0 || to < len(b.Containers) {
		hint := styleMuted().Render(fmt.Sprintf("columns %d-%d of %d", from+1, to, len(b.Containers)))
		out = normalizePane(out, width, max(height-1, 0)) + "\n" + hint
	}
	return normalizePane(out, width, height)
}

func (v columnsView) renderColumn(ci int, sel selection, colW, height int) string {
	c := v.board.Containers[ci]
	title := strings.TrimSpace(c.Title)
	if title == "" {
		title = "(untitled)"
	}
	head := truncateText(fmt.Sprintf("%s (%d)", title, len(c.Items)), colW)

	hs := styleHeader(ci == sel.Col && sel.Item == itemSelectAll)
	switch {
	case v.active.IsContainer() && ci == v.dropCol:
		hs = styleDropTarget()
	case v.active == c.ID:
		hs = hs.Foreground(colorAccent)
	}
	lines := []string{hs.Width(colW).Render(head)}

	if len(c.Items) == 0 {
		lines = append(lines, styleMuted().Render("(empty)"))
		return normalizePane(strings.Join(lines, "\n"), colW, height)
	}
	lines = append(lines, "")

	itemStyle := lipgloss.NewStyle().Width(colW).Padding(0, 1)
	innerW := max(colW-2, 1)
	for ii, it := range c.Items {
		selected := ci == sel.Col && ii == sel.Item
		dragged := v.active == it.ID

		title := strings.TrimSpace(it.Title)
		if title == "" {
			title = "(untitled)"
		}
		prefix := "  "
		if dragged {
			prefix = "≡ "
		}
		wrapped := wrapWords(title, max(innerW-2, 1))
		for i := range wrapped {
			if i == 0 {
				wrapped[i] = prefix + wrapped[i]
			} else {
				wrapped[i] = "  " + wrapped[i]
			}
		}

		st := itemStyle
		switch {
		case dragged:
			st = st.Bold(true).Foreground(colorAccentFg).Background(colorAccent)
		case selected:
			st = st.Bold(true).Foreground(colorSelectedFg).Background(colorSelectedBg)
		}
		card := st.Render(normalizePane(strings.Join(wrapped, "\n"), innerW, 0))
		lines = append(lines, strings.Split(card, "\n")...)

		if ii < len(c.Items)-1 {
			lines = append(lines, styleMuted().Render(" "+strings.Repeat("─", max(colW-2, 0))+" "))
		}
	}
	return normalizePane(strings.Join(lines, "\n"), colW, height)
}
