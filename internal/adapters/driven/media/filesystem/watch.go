package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/photon-labs/glance/internal/logger"
)

// watchDebounce coalesces bursts of filesystem events (e.g. a
// multi-file import) into one change notification.
const watchDebounce = 500 * time.Millisecond

// Watch emits an event whenever the photo directory or one of its
// album subdirectories changes. The channel is closed when ctx is
// cancelled.
func (m *MediaSource) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(m.root); err != nil {
		watcher.Close()
		return nil, err
	}
	entries, err := os.ReadDir(m.root)
	if err != nil {
		watcher.Close()
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			if err := watcher.Add(filepath.Join(m.root, entry.Name())); err != nil {
				logger.Warn("Watching %s failed: %v", entry.Name(), err)
			}
		}
	}

	events := make(chan struct{}, 1)
	go func() {
		defer close(events)
		defer watcher.Close()

		// The debounce timer is drained and reset here so the send on
		// events always happens before the deferred close.
		var debounce *time.Timer
		var pending <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				if debounce != nil {
					debounce.Stop()
				}
				return
			case <-pending:
				pending = nil
				select {
				case events <- struct{}{}:
				default:
				}
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				// New album directories join the watch set.
				if event.Op.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if err := watcher.Add(event.Name); err != nil {
							logger.Warn("Watching %s failed: %v", event.Name, err)
						}
					}
				}
				if debounce == nil {
					debounce = time.NewTimer(watchDebounce)
				} else {
					if !debounce.Stop() && pending != nil {
						<-debounce.C
					}
					debounce.Reset(watchDebounce)
				}
				pending = debounce.C
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Watch error: %v", err)
			}
		}
	}()

	return events, nil
}
