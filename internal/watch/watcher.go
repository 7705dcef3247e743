// Package watch re-runs a render job whenever the scenario file changes.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const debounceDelay = 200 * time.Millisecond

// Watcher monitors one scenario file and fires onChange after edits
// settle. Events for other files in the same directory are ignored.
// Editors that replace the file on save show up as Create or Rename,
// so those count as changes too.
type Watcher struct {
	path     string
	onChange func(ctx context.Context)
	log      zerolog.Logger

	mu       sync.Mutex
	debounce *time.Timer
}

func New(path string, log zerolog.Logger, onChange func(ctx context.Context)) *Watcher {
	return &Watcher{path: path, onChange: onChange, log: log}
}

// Run blocks until the context is cancelled. The callback runs once at
// startup so the output exists before the first edit.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	w.onChange(ctx)

	base := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			w.stopDebounce()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.log.Debug().Str("event", event.Op.String()).Str("file", event.Name).Msg("scenario file changed")
			w.schedule(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("watch error")
		}
	}
}

func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(debounceDelay, func() {
		if ctx.Err() != nil {
			return
		}
		w.onChange(ctx)
	})
}

func (w *Watcher) stopDebounce() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
}
