package history

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/verte-zerg/dictstat/internal/logger"
)

// DefaultDebounce coalesces the burst of events a single save produces.
const DefaultDebounce = 250 * time.Millisecond

// Watch calls onChange after the history file at path is written, created,
// renamed or removed. The parent directory is watched so editors and tools
// that replace the file atomically are seen. Watching stops when ctx is done.
func Watch(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	target := filepath.Clean(path)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	log := logger.Named("history")
	go func() {
		defer func() {
			if cerr := watcher.Close(); cerr != nil {
				log.Warn().Err(cerr).Msg("failed to close watcher")
			}
		}()

		timer := time.NewTimer(debounce)
		if !timer.Stop() {
			<-timer.C
		}
		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				log.Debug().Str("op", event.Op.String()).Msg("history changed")
				timer.Reset(debounce)
			case <-timer.C:
				onChange()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("watcher error")
			}
		}
	}()
	return nil
}
