package observability

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kanban-cli/internal/model"
)

// Metrics definitions
var (
	MutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kanban_mutations_total",
		Help: "Total number of committed board mutations.",
	}, []string{"op"})

	BoardContainers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kanban_board_containers",
		Help: "Number of containers on the current board snapshot.",
	})

	BoardItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kanban_board_items",
		Help: "Number of items on the current board snapshot.",
	})

	DragGesturesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kanban_drag_gestures_total",
		Help: "Total number of finished drag gestures by outcome.",
	}, []string{"outcome"})

	PersistWritesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kanban_persist_writes_total",
		Help: "Total number of board documents written to the key-value store.",
	})

	PersistWriteErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kanban_persist_write_errors_total",
		Help: "Total number of failed board document writes.",
	})

	PersistWriteSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kanban_persist_write_seconds",
		Help:    "Latency of a whole-document write.",
		Buckets: prometheus.DefBuckets,
	})

	WatchEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kanban_watch_events_total",
		Help: "Total number of storage change notifications received by the watcher.",
	})
)

func ObserveBoard(b *model.Board) {
	if b == nil {
		return
	}
	BoardContainers.Set(float64(len(b.Containers)))
	BoardItems.Set(float64(b.ItemCount()))
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	slog.Info("metrics: listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
