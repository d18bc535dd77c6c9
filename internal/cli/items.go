package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"kanban-cli/internal/format"
	"kanban-cli/internal/model"
)

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "items",
		Aliases: []string{"item", "cards"},
		Short:   "Cards inside containers",
	}
	cmd.AddCommand(newItemsShowCmd(app))
	cmd.AddCommand(newItemsAddCmd(app))
	cmd.AddCommand(newItemsEditCmd(app))
	cmd.AddCommand(newItemsRmCmd(app))
	cmd.AddCommand(newItemsMoveCmd(app))
	return cmd
}

type itemView struct {
	ID          model.ID `json:"id"`
	Title       string   `json:"title"`
	ContainerID model.ID `json:"containerId"`
	Index       int      `json:"index"`
}

func viewItem(b *model.Board, id model.ID) (itemView, bool) {
	c, ok := b.FindContainerOfItem(id)
	if !ok {
		return itemView{}, false
	}
	idx := b.ItemIndex(c.ID, id)
	return itemView{ID: id, Title: c.Items[idx].Title, ContainerID: c.ID, Index: idx}, true
}

func newItemsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "show <item-id>",
		Aliases: []string{"get"},
		Short:   "Show an item and where it sits",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := workspace(app).Load(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			v, ok := viewItem(b, argID(args[0]))
			if !ok {
				return writeErr(cmd, errNotFound("item", args[0]))
			}
			return writeOut(cmd, app, format.Envelope{Data: v})
		},
	}
}

func newItemsAddCmd(app *App) *cobra.Command {
	var containerID string

	cmd := &cobra.Command{
		Use:   "add --container <container-id> <title>",
		Short: "Append an item to a container (an empty title adds nothing)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openSession(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			cid := argID(containerID)
			if _, ok := s.board.Snapshot().FindContainer(cid); !ok {
				_ = s.close(ctx)
				return writeErr(cmd, errNotFound("container", containerID))
			}
			id, changed := s.board.AddItem(cid, strings.Join(args, " "))
			if err := s.close(ctx); err != nil {
				return writeErr(cmd, err)
			}

			var data any
			if changed {
				data, _ = viewItem(s.board.Snapshot(), id)
			}
			return writeOut(cmd, app, format.Envelope{Data: data, Meta: map[string]any{"changed": changed}})
		},
	}

	cmd.Flags().StringVar(&containerID, "container", "", "Container to append to (required)")
	_ = cmd.MarkFlagRequired("container")
	return cmd
}

func newItemsEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <item-id> <title>",
		Short: "Retitle an item (an empty title is stored as given)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openSession(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := argID(args[0])
			c, ok := s.board.Snapshot().FindContainerOfItem(id)
			if !ok {
				_ = s.close(ctx)
				return writeErr(cmd, errNotFound("item", args[0]))
			}
			changed := s.board.EditItem(c.ID, id, strings.Join(args[1:], " "))
			if err := s.close(ctx); err != nil {
				return writeErr(cmd, err)
			}
			v, _ := viewItem(s.board.Snapshot(), id)
			return writeOut(cmd, app, format.Envelope{Data: v, Meta: map[string]any{"changed": changed}})
		},
	}
}

func newItemsRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <item-id>",
		Aliases: []string{"delete"},
		Short:   "Delete an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openSession(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := argID(args[0])
			removed, ok := viewItem(s.board.Snapshot(), id)
			if !ok {
				_ = s.close(ctx)
				return writeErr(cmd, errNotFound("item", args[0]))
			}
			changed := s.board.DeleteItem(removed.ContainerID, id)
			if err := s.close(ctx); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: removed, Meta: map[string]any{"changed": changed}})
		},
	}
}

func newItemsMoveCmd(app *App) *cobra.Command {
	var over string

	cmd := &cobra.Command{
		Use:   "move <item-id> --over <item-or-container-id>",
		Short: "Move an item as if dragged over another item or a container",
		Long: strings.TrimSpace(`
Plays a whole drag gesture (start, move, drop) for the item.

Dropping over an item inserts the moved item right before it; dropping over a container
appends it to that container.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openSession(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := argID(args[0])
			if _, ok := viewItem(s.board.Snapshot(), id); !ok {
				_ = s.close(ctx)
				return writeErr(cmd, errNotFound("item", args[0]))
			}
			changed := s.ctrl.Play(id, argID(over))
			if err := s.close(ctx); err != nil {
				return writeErr(cmd, err)
			}
			v, _ := viewItem(s.board.Snapshot(), id)
			return writeOut(cmd, app, format.Envelope{Data: v, Meta: map[string]any{"changed": changed}})
		},
	}

	cmd.Flags().StringVar(&over, "over", "", "Item or container to drop onto (required)")
	_ = cmd.MarkFlagRequired("over")
	return cmd
}
