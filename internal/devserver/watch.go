package devserver

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jigarkkarangiya/docs/pkg/logging"
)

// watcher reports changes under a directory tree, debounced.
type watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	logger   logging.Logger
}

func newWatcher(root string, debounce time.Duration, logger logging.Logger) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &watcher{fs: fw, debounce: debounce, logger: logger}
	if err := w.addTree(root); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// addTree watches dir and every directory below it. fsnotify is not
// recursive.
func (w *watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.fs.Add(p)
	})
}

// skip reports events that never change the site: permission changes and
// editor scratch files.
func skip(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return true
	}
	name := filepath.Base(ev.Name)
	return strings.HasPrefix(name, ".#") ||
		strings.HasSuffix(name, "~") ||
		strings.HasSuffix(name, ".swp") ||
		strings.HasSuffix(name, ".tmp")
}

// run calls onChange once per burst of events, after the debounce interval
// has passed without a new event. It returns when ctx is done or the watcher
// is closed.
func (w *watcher) run(ctx context.Context, onChange func(ctx context.Context)) {
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if skip(ev) {
				continue
			}
			w.logger.Debug("change detected", logging.Path(ev.Name), logging.String("op", ev.Op.String()))

			if ev.Has(fsnotify.Create) {
				if err := w.addTree(ev.Name); err != nil && !isNotExist(err) {
					w.logger.Warn("watch new directory", logging.Path(ev.Name), logging.Err(err))
				}
			}

			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", logging.Err(err))

		case <-timer.C:
			onChange(ctx)
		}
	}
}

func (w *watcher) close(context.Context) error {
	return w.fs.Close()
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
