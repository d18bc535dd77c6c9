package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"kanban-cli/internal/board"
	"kanban-cli/internal/format"
	"kanban-cli/internal/observability"
	"kanban-cli/internal/store"
	"kanban-cli/internal/tui"
)

const logFileName = "kanban.log"

type App struct {
	Dir         string
	Backend     string
	Format      string
	PrettyJSON  bool
	Verbose     bool
	MetricsAddr string

	cfg         store.Config
	logFile     io.Closer
	stopMetrics context.CancelFunc
}

func NewRootCmd() *cobra.Command {
	app := &App{}
	cfg, cfgErr := store.LoadConfig()
	if cfgErr == nil {
		app.cfg = cfg
	}

	cmd := &cobra.Command{
		Use:          "kanban",
		Short:        "Local-first kanban board (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive board
  kanban

  # Scriptable commands
  kanban containers add "To Do"
  kanban items add --container container-1 "Write docs"
  kanban items move item-2 --over container-3

  # Direct lookup (shortcut for: kanban items show <item-id>)
  kanban item-2
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cfgErr != nil {
			return writeErr(cmd, fmt.Errorf("config: %w", cfgErr))
		}
		if err := resolveDir(app); err != nil {
			return writeErr(cmd, err)
		}
		if _, err := store.ParseBackend(app.Backend); err != nil {
			return writeErr(cmd, err)
		}
		tuiMode := cmd.Parent() == nil && len(args) == 0
		if err := setupLogging(cmd, app, tuiMode); err != nil {
			return writeErr(cmd, err)
		}
		if app.MetricsAddr != "" {
			ctx, cancel := context.WithCancel(cmd.Context())
			app.stopMetrics = cancel
			go func() {
				if err := observability.Serve(ctx, app.MetricsAddr); err != nil {
					slog.Error("metrics server failed", "addr", app.MetricsAddr, "error", err)
				}
			}()
		}
		return nil
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.stopMetrics != nil {
			app.stopMetrics()
		}
		if app.logFile != nil {
			_ = app.logFile.Close()
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", app.cfg.Dir, "Path to the board directory (default: nearest .kanban, else ./.kanban)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", app.cfg.Backend, "Storage backend (diskv|sqlite|memory)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", app.cfg.Format, "Output format (json|edn)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Debug logging")
	cmd.PersistentFlags().StringVar(&app.MetricsAddr, "metrics-addr", app.cfg.MetricsAddr, "Serve Prometheus metrics on this address (e.g. :9090)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newWatchCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newContainersCmd(app))
	cmd.AddCommand(newItemsCmd(app))

	return cmd
}

func resolveDir(app *App) error {
	if app.Dir != "" {
		return nil
	}
	d, err := store.DefaultDir()
	if err != nil {
		return err
	}
	app.Dir = d
	return nil
}

func workspace(app *App) store.Store {
	// Backend was validated in PersistentPreRunE.
	b, _ := store.ParseBackend(app.Backend)
	return store.Store{Dir: app.Dir, Backend: b}
}

func setupLogging(cmd *cobra.Command, app *App, tuiMode bool) error {
	level := slog.LevelWarn
	if lv := strings.TrimSpace(app.cfg.LogLevel); lv != "" {
		if err := level.UnmarshalText([]byte(lv)); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: unknown log level %q, using warn\n", lv)
			level = slog.LevelWarn
		}
	}
	if app.Verbose {
		level = slog.LevelDebug
	}

	var output io.Writer = cmd.ErrOrStderr()
	if tuiMode && workspace(app).Backend != store.BackendMemory {
		// Logs on stderr would corrupt the TUI.
		logPath := filepath.Join(app.Dir, logFileName)
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
			return fmt.Errorf("create log dir for %s: %w", logPath, err)
		}
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		app.logFile = f
		output = f
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level})))
	return nil
}

func runTUI(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	ws := workspace(app)

	kv, err := ws.Open(ctx)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer kv.Close()

	b, err := store.LoadBoard(ctx, kv)
	if err != nil {
		return writeErr(cmd, err)
	}
	st := board.New(b)
	syncer := store.NewSyncer(kv, store.SyncOptions{DeferDuringDrag: app.cfg.DeferDuringDrag})
	detach := syncer.Attach(st)
	defer detach()

	opts := tui.Options{Workspace: ws, Board: st, Syncer: syncer}
	if ws.Backend != store.BackendMemory {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		events, err := ws.Watch(watchCtx)
		if err != nil {
			slog.Warn("watch disabled", "error", err)
		} else {
			opts.Watch = events
		}
	}

	if err := tui.Run(ctx, opts); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
