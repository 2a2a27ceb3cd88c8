// Package watch re-runs a callback whenever a data file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"chart2svg/internal/logging"
)

// DefaultDebounce collapses bursts of writes, such as an editor saving in
// several steps, into one change.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports changes to one file.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	log      *logging.Logger
}

// New starts watching path. The directory is watched rather than the file
// itself so that editors replacing the file are still noticed.
func New(path string, debounce time.Duration, log *logging.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = logging.NopLogger()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	return &Watcher{watcher: fw, path: path, debounce: debounce, log: log.With("file", path)}, nil
}

// Run calls onChange after each debounced burst of writes to the file
// until ctx is done. Errors from onChange are logged and watching
// continues. Run closes the watcher before returning.
func (w *Watcher) Run(ctx context.Context, onChange func() error) error {
	defer w.watcher.Close()

	target := filepath.Base(w.path)
	timer := time.NewTimer(0)
	<-timer.C

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.log.Debug("file event", "op", event.Op.String())
			timer.Reset(w.debounce)

		case <-timer.C:
			w.log.Debug("file changed")
			if err := onChange(); err != nil {
				w.log.Error("re-render failed", "error", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

// File watches path and runs onChange on every change until ctx is done.
func File(ctx context.Context, path string, debounce time.Duration, onChange func() error, log *logging.Logger) error {
	w, err := New(path, debounce, log)
	if err != nil {
		return err
	}
	return w.Run(ctx, onChange)
}
