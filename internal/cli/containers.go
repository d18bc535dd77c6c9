package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"kanban-cli/internal/format"
	"kanban-cli/internal/model"
)

func newContainersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "containers",
		Aliases: []string{"container", "columns"},
		Short:   "Board columns",
	}
	cmd.AddCommand(newContainersListCmd(app))
	cmd.AddCommand(newContainersShowCmd(app))
	cmd.AddCommand(newContainersAddCmd(app))
	cmd.AddCommand(newContainersEditCmd(app))
	cmd.AddCommand(newContainersRmCmd(app))
	cmd.AddCommand(newContainersMoveCmd(app))
	return cmd
}

type containerSummary struct {
	ID    model.ID `json:"id"`
	Title string   `json:"title"`
	Items int      `json:"items"`
}

func newContainersListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List containers in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := workspace(app).Load(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			out := make([]containerSummary, 0, len(b.Containers))
			for _, c := range b.Containers {
				out = append(out, containerSummary{ID: c.ID, Title: c.Title, Items: len(c.Items)})
			}
			return writeOut(cmd, app, format.Envelope{Data: out, Meta: boardMeta(b)})
		},
	}
}

func newContainersShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <container-id>",
		Short: "Show a container with its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := workspace(app).Load(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			c, ok := b.FindContainer(argID(args[0]))
			if !ok {
				return writeErr(cmd, errNotFound("container", args[0]))
			}
			return writeOut(cmd, app, format.Envelope{Data: c, Meta: map[string]any{"items": len(c.Items)}})
		},
	}
}

func newContainersAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title>",
		Short: "Append a container (an empty title adds nothing)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openSession(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, changed := s.board.AddContainer(strings.Join(args, " "))
			if err := s.close(ctx); err != nil {
				return writeErr(cmd, err)
			}

			var data any
			if changed {
				c, _ := s.board.Snapshot().FindContainer(id)
				data = c
			}
			return writeOut(cmd, app, format.Envelope{Data: data, Meta: map[string]any{"changed": changed}})
		},
	}
}

func newContainersEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <container-id> <title>",
		Short: "Rename a container (an empty title is stored as given)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openSession(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := argID(args[0])
			if _, ok := s.board.Snapshot().FindContainer(id); !ok {
				_ = s.close(ctx)
				return writeErr(cmd, errNotFound("container", args[0]))
			}
			changed := s.board.EditContainer(id, strings.Join(args[1:], " "))
			if err := s.close(ctx); err != nil {
				return writeErr(cmd, err)
			}
			c, _ := s.board.Snapshot().FindContainer(id)
			return writeOut(cmd, app, format.Envelope{Data: c, Meta: map[string]any{"changed": changed}})
		},
	}
}

func newContainersRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <container-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a container and all of its items",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openSession(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := argID(args[0])
			c, ok := s.board.Snapshot().FindContainer(id)
			if !ok {
				_ = s.close(ctx)
				return writeErr(cmd, errNotFound("container", args[0]))
			}
			removed := *c
			changed := s.board.DeleteContainer(id)
			if err := s.close(ctx); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{
				Data: removed,
				Meta: map[string]any{"changed": changed, "itemsRemoved": len(removed.Items)},
			})
		},
	}
}

func newContainersMoveCmd(app *App) *cobra.Command {
	var over string

	cmd := &cobra.Command{
		Use:   "move <container-id> --over <container-id>",
		Short: "Reorder a container by dropping it over another container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openSession(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			active := argID(args[0])
			if _, ok := s.board.Snapshot().FindContainer(active); !ok {
				_ = s.close(ctx)
				return writeErr(cmd, errNotFound("container", args[0]))
			}
			changed := s.ctrl.Play(active, argID(over))
			if err := s.close(ctx); err != nil {
				return writeErr(cmd, err)
			}
			b := s.board.Snapshot()
			return writeOut(cmd, app, format.Envelope{
				Data: b,
				Meta: map[string]any{"changed": changed, "index": b.ContainerIndex(active)},
			})
		},
	}

	cmd.Flags().StringVar(&over, "over", "", "Container to drop onto (required)")
	_ = cmd.MarkFlagRequired("over")
	return cmd
}
