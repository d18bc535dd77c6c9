package publish

import (
	"bytes"
	"strings"

	"kanban-cli/internal/model"
)

type RenderOptions struct {
	// Title is the top-level heading; "Board" when empty.
	Title string
	// IncludeIDs appends each id in code spans so the output can be fed back to the CLI.
	IncludeIDs bool
}

// RenderBoardMarkdown renders containers as sections and their items as a bullet list, in
// board order.
func RenderBoardMarkdown(b *model.Board, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = "Board"
	}
	writeLn("# " + title)
	writeLn("")

	if b == nil || len(b.Containers) == 0 {
		writeLn("_No containers._")
		return buf.String()
	}

	for _, c := range b.Containers {
		heading := "## " + displayTitle(c.Title)
		if opt.IncludeIDs {
			heading += " `" + c.ID.String() + "`"
		}
		writeLn(heading)
		writeLn("")
		if len(c.Items) == 0 {
			writeLn("_No items._")
			writeLn("")
			continue
		}
		for _, it := range c.Items {
			line := "- " + displayTitle(it.Title)
			if opt.IncludeIDs {
				line += " `" + it.ID.String() + "`"
			}
			writeLn(line)
		}
		writeLn("")
	}
	return strings.TrimRight(buf.String(), "\n") + "\n"
}

func displayTitle(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(untitled)"
	}
	return strings.ReplaceAll(s, "\n", " ")
}
