package preview

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"paperfold-renderer/internal/content"
)

// WatchContent reloads the content file at path every time it is written
// and delivers each text set that parses. Files that fail to load are
// logged and skipped. The watch ends with ctx.
func WatchContent(ctx context.Context, path string, log *zap.Logger) (<-chan content.Set, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("preview: watch: %w", err)
	}
	// Editors often replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("preview: watch %s: %w", path, err)
	}

	target := filepath.Clean(path)
	out := make(chan content.Set, 1)
	go func() {
		defer func() { _ = watcher.Close() }()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				set, err := content.Load(path)
				if err != nil {
					log.Warn("content reload failed", zap.String("path", path), zap.Error(err))
					continue
				}
				select {
				case out <- set:
				case <-ctx.Done():
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("content watch error", zap.Error(err))
			}
		}
	}()
	return out, nil
}
