package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"kanban-cli/internal/format"
	"kanban-cli/internal/model"
	"kanban-cli/internal/publish"
	"kanban-cli/internal/store"
)

func boardMeta(b *model.Board) map[string]any {
	return map[string]any{
		"containers": len(b.Containers),
		"items":      b.ItemCount(),
	}
}

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the board directory and an empty board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws := workspace(app)
			kv, err := ws.Open(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer kv.Close()

			_, exists, err := kv.Get(ctx, store.DocumentKey)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !exists {
				if err := store.SaveBoard(ctx, kv, model.NewBoard()); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, format.Envelope{
				Data: map[string]any{
					"dir":     ws.Dir,
					"backend": string(ws.Backend),
					"created": !exists,
				},
			})
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	var (
		markdown   bool
		raw        bool
		includeIDs bool
		width      int
		style      string
		to         string
		overwrite  bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the board",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := workspace(app).Load(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if !markdown && to == "" {
				return writeOut(cmd, app, format.Envelope{Data: b, Meta: boardMeta(b)})
			}

			opt := publish.RenderOptions{IncludeIDs: includeIDs}
			if to != "" {
				res, err := publish.WriteBoard(b, to, opt, overwrite)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, format.Envelope{Data: res})
			}
			md := publish.RenderBoardMarkdown(b, opt)
			if !raw {
				md = publish.RenderTerminal(md, width, style)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), md)
			return err
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "Render as Markdown instead of JSON")
	cmd.Flags().BoolVar(&raw, "raw", false, "With --markdown: print plain Markdown without terminal styling")
	cmd.Flags().BoolVar(&includeIDs, "ids", true, "Include container/item ids in Markdown")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width for terminal rendering")
	cmd.Flags().StringVar(&style, "style", "dark", "Terminal style (dark|light|notty|ascii)")
	cmd.Flags().StringVar(&to, "to", "", "Write Markdown to this file instead of stdout")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing --to file")
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the stored board document (the dnd-containers value)",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := workspace(app).Load(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			data, err := store.EncodeBoard(b)
			if err != nil {
				return writeErr(cmd, err)
			}
			if to == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := os.MkdirAll(filepath.Dir(to), 0o755); err != nil {
				return writeErr(cmd, err)
			}
			if err := os.WriteFile(to, append(data, '\n'), 0o644); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{
				Data: map[string]any{"written": []string{to}},
				Meta: boardMeta(b),
			})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Write the document to this file")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the board with a stored-format document (backs up the old one)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			// Unlike loading, importing refuses malformed input.
			b, err := store.DecodeBoard(data)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("import: %w", err))
			}

			ctx := cmd.Context()
			ws := workspace(app)
			kv, err := ws.Open(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer kv.Close()

			backup := ""
			if ws.Backend != store.BackendMemory {
				if backup, err = ws.Backup(ctx, kv); err != nil {
					return writeErr(cmd, err)
				}
			}
			if err := store.SaveBoard(ctx, kv, b); err != nil {
				return writeErr(cmd, err)
			}

			meta := boardMeta(b)
			if backup != "" {
				meta["backup"] = backup
			}
			return writeOut(cmd, app, format.Envelope{Data: b, Meta: meta})
		},
	}
}

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the stored board (unique ids, id kinds, titles)",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := workspace(app).Doctor(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := writeOut(cmd, app, format.Envelope{
				Data: report,
				Meta: map[string]any{
					"issues":    len(report.Issues),
					"hasErrors": report.HasErrors(),
				},
			}); err != nil {
				return err
			}
			if fail && report.HasErrors() {
				return errDoctorIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if errors are found")
	return cmd
}

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print a line whenever the stored board changes (until interrupted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			ws := workspace(app)
			events, err := ws.Watch(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			for ev := range events {
				b, err := ws.Load(ctx)
				if err != nil {
					if errors.Is(err, context.Canceled) {
						return nil
					}
					return writeErr(cmd, err)
				}
				data := map[string]any{"path": ev.Path}
				if ev.Err != nil {
					data["error"] = strings.TrimSpace(ev.Err.Error())
				}
				if err := writeOut(cmd, app, format.Envelope{Data: data, Meta: boardMeta(b)}); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
