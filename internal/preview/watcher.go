package preview

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce batches filesystem event bursts (a photo export drops many files
// at once) into a single rebuild.
const debounce = 500 * time.Millisecond

// Watch rebuilds the site whenever something under <root>/projects changes.
// It blocks until ctx is canceled. rebuild failures are logged, not fatal;
// the next change gets another chance.
func Watch(ctx context.Context, root string, rebuild func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	projectsDir := filepath.Join(root, "projects")
	if err := addRecursive(watcher, projectsDir); err != nil {
		return err
	}
	slog.Info("Watching for changes", "dir", projectsDir)

	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New subdirectories (new projects, new phases) must be watched too.
			if event.Op.Has(fsnotify.Create) {
				_ = addRecursive(watcher, event.Name)
			}
			if timer == nil {
				timer = time.AfterFunc(debounce, func() { pending <- struct{}{} })
			} else {
				timer.Reset(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "error", err)
		case <-pending:
			timer = nil
			slog.Info("Change detected, rebuilding")
			if err := rebuild(); err != nil {
				slog.Error("Rebuild failed", "error", err)
			}
		}
	}
}

// addRecursive watches dir and every directory below it. Non-directories and
// vanished paths are ignored.
func addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				slog.Warn("Failed to watch directory", "dir", path, "error", err)
			}
		}
		return nil
	})
}
