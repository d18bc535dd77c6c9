package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"kanban-cli/internal/observability"
)

const watchThrottle = 100 * time.Millisecond

// WatchEvent reports that the stored document changed on disk.
type WatchEvent struct {
	// Path of the last file touched in the burst.
	Path string
	// Err is set when the watcher itself reported an error; callers should reload anyway.
	Err error
}

// Watch streams change events for the document until ctx is cancelled. Bursts of writes are
// coalesced into a single event. The channel is closed once ctx is done or the watcher stops.
func (s Store) Watch(ctx context.Context) (<-chan WatchEvent, error) {
	names := s.documentFiles()
	if names == nil {
		return nil, errors.New("store: memory backend cannot be watched")
	}
	if err := s.Ensure(); err != nil {
		return nil, fmt.Errorf("store: ensure dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(s.Dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", s.Dir, err)
	}

	events := make(chan WatchEvent, 16)
	go func() {
		defer close(events)
		defer func() {
			if err := watcher.Close(); err != nil {
				slog.Debug("store: watcher close", "err", err)
			}
		}()

		send := func(ev WatchEvent) {
			select {
			case events <- ev:
			default:
				// The consumer will reload the latest document anyway.
			}
		}
		throttle := newEventThrottle(watchThrottle)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("store: watcher error", "err", err)
				throttle.Enqueue(WatchEvent{Err: err}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !names[filepath.Base(evt.Name)] {
					continue
				}
				if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Rename) {
					continue
				}
				observability.WatchEventsTotal.Inc()
				throttle.Enqueue(WatchEvent{Path: evt.Name}, send)
			}
		}
	}()
	return events, nil
}

// eventThrottle coalesces rapid change notifications so a reader reloads once per burst.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending *WatchEvent
	delay   time.Duration
	stopped bool
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{delay: delay}
}

func (t *eventThrottle) Enqueue(ev WatchEvent, send func(WatchEvent)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	if t.pending != nil && t.pending.Err != nil && ev.Err == nil {
		ev.Err = t.pending.Err
	}
	t.pending = &ev
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() { t.flush(send) })
	}
}

// flush sends while holding the lock so nothing is sent after Stop returns; send must not
// block.
func (t *eventThrottle) flush(send func(WatchEvent)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	pending := t.pending
	t.pending = nil
	t.timer = nil
	if pending != nil && !t.stopped {
		send(*pending)
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
