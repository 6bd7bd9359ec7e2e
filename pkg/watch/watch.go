// Package watch re-runs a function whenever one of a set of files changes.
//
// Parent directories are watched rather than the files themselves, so
// editors that save by writing a new file and renaming it over the old one
// are picked up, as are files that do not exist yet.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/arthur-debert/symkeeper/pkg/errors"
	"github.com/arthur-debert/symkeeper/pkg/logging"
	"github.com/fsnotify/fsnotify"
)

// Watcher delivers debounced change notifications for a fixed set of files.
type Watcher struct {
	w        *fsnotify.Watcher
	files    map[string]struct{}
	debounce time.Duration
}

// New starts watching the directories of files. Watches are in place when
// New returns.
func New(files []string, debounce time.Duration) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to create file watcher")
	}

	watched := make(map[string]struct{}, len(files))
	dirs := make(map[string]struct{})
	for _, f := range files {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = w.Close()
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid watch path %s", f)
		}
		watched[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, errors.Wrapf(err, errors.ErrInternal, "failed to watch %s", dir).
				WithDetail("path", dir)
		}
	}

	return &Watcher{w: w, files: watched, debounce: debounce}, nil
}

// Run calls fn once per burst of changes until ctx is cancelled. Calls are
// sequential. Errors from fn are logged and watching continues. Run closes
// the watcher when it returns.
func (w *Watcher) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	logger := logging.GetLogger("watch")
	defer w.w.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Debug().Msg("Watcher stopped")
			return nil

		case <-fire:
			fire = nil
			logger.Info().Msg("Change detected, running")
			if err := fn(ctx); err != nil {
				logger.Error().Err(err).Msg("Run after change failed")
			}

		case ev, ok := <-w.w.Events:
			if !ok {
				return nil
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			if _, ok := w.files[filepath.Clean(ev.Name)]; !ok {
				continue
			}
			logger.Debug().Str("path", ev.Name).Str("op", ev.Op.String()).Msg("File changed")
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("Watcher error")
		}
	}
}
