// Package watch reports changes to a single file on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Debounce is how long Run waits after the last event before calling
// onChange. Editors often write a file in several steps.
const Debounce = 100 * time.Millisecond

// Target maps a resource path served from root (such as "/data/x.csv") to
// the directory holding the file and its base name. fsnotify does not
// recurse, so nested paths must watch their own directory.
func Target(root, resourcePath string) (dir, file string) {
	clean := path.Clean("/" + resourcePath)
	return filepath.Join(root, filepath.FromSlash(path.Dir(clean))), path.Base(clean)
}

// Run watches dir and calls onChange after file (a base name inside dir) is
// written, created, renamed or removed. It blocks until ctx is cancelled.
//
// The directory is watched rather than the file so that editors that replace
// the file through a rename keep triggering events.
func Run(ctx context.Context, dir, file string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	slog.Info("watching source file", "dir", dir, "file", file)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != file {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(Debounce, func() {
				if ctx.Err() != nil {
					return
				}
				slog.Debug("source file changed", "file", file, "op", event.Op.String())
				onChange()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("file watcher error", "error", err)
		}
	}
}
