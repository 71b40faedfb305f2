// Package watcher reloads configuration when the config file changes on
// disk. It watches the containing directory rather than the file itself,
// since most editors replace files on save, and debounces bursts of events
// into a single reload.
package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/conneroisu/webnav/internal/logging"
)

// DefaultDebounce groups rapid successive writes into one reload.
const DefaultDebounce = 300 * time.Millisecond

// ReloadFunc is called after the watched file settled.
type ReloadFunc func()

// ConfigWatcher watches a single file for changes.
type ConfigWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onReload ReloadFunc
	logger   logging.Logger
}

// New creates a watcher for path. debounce <= 0 uses DefaultDebounce.
func New(path string, debounce time.Duration, onReload ReloadFunc, logger logging.Logger) (*ConfigWatcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = logging.Discard()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	return &ConfigWatcher{
		watcher:  fsw,
		path:     abs,
		debounce: debounce,
		onReload: onReload,
		logger:   logger.WithComponent("watcher"),
	}, nil
}

// Watch blocks until ctx is cancelled, invoking the reload callback after
// each settled change to the watched file.
func (w *ConfigWatcher) Watch(ctx context.Context) error {
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug(ctx, "config file changed", "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					<-timer.C
				}
				timer.Reset(w.debounce)
			}
		case <-fire:
			timer = nil
			fire = nil
			w.logger.Info(ctx, "reloading configuration", "path", w.path)
			w.onReload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn(ctx, err, "watch error")
		}
	}
}

func (w *ConfigWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}
