package prompt

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch starts an fsnotify watcher on the prompts directory and reloads the
// provider when the singleton documents change on disk, until ctx is
// cancelled. Reloads are debounced so an editor's write-then-rename sequence
// triggers a single reload.
func Watch(ctx context.Context, pr *Provider, dataRoot string, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Join(dataRoot, Dir)
	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Info("prompt watcher: started", slog.String("dir", dir))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(200 * time.Millisecond)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("prompt watcher: stopped")
			return nil

		case <-reloadCh:
			pr.Reload()
			logger.Info("prompt watcher: reloaded")

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, ".json") {
				continue
			}
			// Skip the store's own atomic-write temp files.
			if strings.Contains(filepath.Base(ev.Name), ".apunte-tmp-") {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				scheduleReload()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("prompt watcher: error", slog.String("error", err.Error()))
		}
	}
}
