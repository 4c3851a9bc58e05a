package catalog

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/signalsfoundry/satlink-planner/internal/logging"
)

// LoadFunc parses a catalog file into a fresh Snapshot.
type LoadFunc func(path string) (*Snapshot, error)

// Watcher reloads a catalog file whenever it changes on disk and swaps
// the parsed result into the Store. A parse failure keeps the previous
// snapshot in place; the swap is all-or-nothing.
type Watcher struct {
	store *Store
	path  string
	load  LoadFunc
	log   logging.Logger

	fsw  *fsnotify.Watcher
	done chan struct{}
}

// NewWatcher constructs a watcher for one catalog file. Call Start to
// begin watching and Close to stop.
func NewWatcher(store *Store, path string, load LoadFunc, log logging.Logger) (*Watcher, error) {
	if store == nil {
		return nil, fmt.Errorf("catalog.NewWatcher: store is nil")
	}
	if load == nil {
		return nil, fmt.Errorf("catalog.NewWatcher: load func is nil")
	}
	if log == nil {
		log = logging.Noop()
	}
	return &Watcher{
		store: store,
		path:  path,
		load:  load,
		log:   log,
		done:  make(chan struct{}),
	}, nil
}

// Start performs an initial load and then watches the file for writes.
func (w *Watcher) Start() error {
	if err := w.Reload(); err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog watcher: %w", err)
	}
	if err := fsw.Add(w.path); err != nil {
		fsw.Close()
		return fmt.Errorf("catalog watcher: %w", err)
	}
	w.fsw = fsw

	go w.loop()
	return nil
}

// Reload parses the catalog file and swaps the result in.
func (w *Watcher) Reload() error {
	snap, err := w.load(w.path)
	if err != nil {
		return fmt.Errorf("catalog reload %q: %w", w.path, err)
	}
	w.store.Swap(snap)
	w.log.Info(context.Background(), "catalog snapshot swapped",
		logging.String("path", w.path),
		logging.Int("satellites", snap.Size()),
	)
	return nil
}

// Close stops the watch loop. Safe to call when Start was never called
// or failed.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
	default:
		close(w.done)
	}
	if w.fsw != nil {
		return w.fsw.Close()
	}
	return nil
}

func (w *Watcher) loop() {
	ctx := context.Background()
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := w.Reload(); err != nil {
				// Keep serving the previous snapshot.
				w.log.Warn(ctx, "catalog reload failed; keeping previous snapshot",
					logging.String("error", err.Error()))
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn(ctx, "catalog watcher error", logging.String("error", err.Error()))
		case <-w.done:
			return
		}
	}
}
