// Package watch re-runs a sync when the resource tree changes, used by
// sync --watch. Events are debounced so one editor save burst triggers
// one re-sync.
package watch

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/cursync/cursync/pkg/errors"
	"github.com/cursync/cursync/pkg/logging"
)

// Run watches root recursively and invokes fn after each debounced
// burst of filesystem events. It blocks until ctx is canceled or the
// watcher fails. Directories created while watching are added to the
// watch set.
func Run(ctx context.Context, root string, debounce Debouncer, fn func()) error {
	logger := logging.GetLogger("watch")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrWatchInit, "failed to create filesystem watcher")
	}
	defer func() { _ = watcher.Close() }()

	if err := addRecursive(watcher, root); err != nil {
		return err
	}
	logger.Info().Str("root", root).Msg("watching for changes")

	trigger := debounce.Start(ctx, fn)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			logger.Trace().Str("path", event.Name).Str("op", event.Op.String()).Msg("filesystem event")
			if event.Op.Has(fsnotify.Create) {
				if info, serr := os.Stat(event.Name); serr == nil && info.IsDir() {
					// Ignore failures here; a vanished directory will
					// just not be watched.
					_ = addRecursive(watcher, event.Name)
				}
			}
			trigger()
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(werr).Msg("watcher error")
		}
	}
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrWatchInit, "failed to walk %s", path)
		}
		if !d.IsDir() {
			return nil
		}
		if werr := watcher.Add(path); werr != nil {
			return errors.Wrapf(werr, errors.ErrWatchInit, "failed to watch %s", path)
		}
		return nil
	})
}
