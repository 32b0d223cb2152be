package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is how long a watched file must stay quiet before a change fires.
const DefaultWatchDebounce = 100 * time.Millisecond

// Watch calls onChange once immediately and then after every burst of writes to the file
// at path, until ctx is done. It watches the parent directory so editors that save by
// renaming a temporary file over path are noticed too. A removed file is logged and picked
// up again when it comes back. It returns ctx.Err() on cancellation.
func Watch(ctx context.Context, path string, debounce time.Duration, logger *slog.Logger, onChange func()) error {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	onChange()

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return ctx.Err()
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			switch {
			case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
				logger.Debug("Change detected", "path", path, "op", event.Op.String())
				timer.Reset(debounce)
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				logger.Info("Watched file removed", "path", path)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return ctx.Err()
			}
			logger.Warn("Watcher error", "path", path, "err", err)

		case <-timer.C:
			onChange()
		}
	}
}
