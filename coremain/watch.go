package coremain

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watch re-runs file each time it changes, until ctx is done. The parent
// directory is watched so that editors replacing the file are noticed.
func (d *Dlist) watch(ctx context.Context, file string, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher, %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(file)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s, %w", file, err)
	}
	d.logger.Info("watching script", zap.String("file", file))

	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(e.Name) != target || e.Has(fsnotify.Chmod) && !e.Has(fsnotify.Write) {
				continue
			}
			if e.Has(fsnotify.Remove) || e.Has(fsnotify.Rename) {
				d.logger.Info("script removed, waiting for it to come back", zap.String("file", file))
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			d.logger.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			d.logger.Info("script changed, running it again", zap.String("file", file))
			if err := d.runFile(ctx, file); err != nil {
				d.logger.Error("script failed", zap.String("file", file), zap.Error(err))
			}
		}
	}
}
