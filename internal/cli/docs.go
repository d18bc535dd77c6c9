package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"kanban-cli/internal/docs"
	"kanban-cli/internal/format"
	"kanban-cli/internal/publish"
)

func newDocsCmd(app *App) *cobra.Command {
	var (
		raw    bool
		styled bool
		width  int
	)

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, format.Envelope{Data: map[string]any{"topics": docs.Topics()}})
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `kanban docs` to list topics)", topic))
			}

			switch {
			case styled:
				_, err := io.WriteString(cmd.OutOrStdout(), publish.RenderTerminal(body, width, ""))
				return err
			case raw:
				_, err := io.WriteString(cmd.OutOrStdout(), body)
				return err
			}
			return writeOut(cmd, app, format.Envelope{Data: map[string]any{"topic": topic, "markdown": body}})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no JSON envelope)")
	cmd.Flags().BoolVar(&styled, "styled", false, "Render markdown for the terminal")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width for --styled")
	return cmd
}
