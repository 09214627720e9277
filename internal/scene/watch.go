package scene

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/logger"
)

// Watcher reports changes to a scene configuration file. The frame loop
// polls it, so scene rebuilding stays on the loop's goroutine.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	changed chan struct{}
	done    chan struct{}
}

// Watch starts watching path. The parent directory is watched so that
// editors which replace the file on save are still noticed.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	log := logger.Named("watch")
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug("scene file changed", zap.String("file", w.path), zap.Stringer("op", event.Op))
			select {
			case w.changed <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("watch error", zap.Error(err))
		}
	}
}

// Changed returns a channel that receives after the file changes.
// Bursts of events are coalesced into one notification.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changed
}

// Poll reports whether the file changed since the last call. It never blocks.
func (w *Watcher) Poll() bool {
	select {
	case <-w.changed:
		return true
	default:
		return false
	}
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
