package server

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/catalog"
)

// reloadDebounce collapses the burst of events an editor or copy produces
// into a single reload.
const reloadDebounce = 300 * time.Millisecond

// LoadFunc reads a catalog file.
type LoadFunc func(path string) (*catalog.Catalog, error)

// WatchCatalog reloads the catalog whenever the file at path is written or
// replaced, until ctx is cancelled. The parent directory is watched so that
// atomic replaces (write to temp, rename) are seen. A failed reload is
// logged and the previous catalog stays in service.
func (s *Server) WatchCatalog(ctx context.Context, path string, load LoadFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create catalog watcher: %w", err)
	}

	target, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return fmt.Errorf("failed to resolve catalog path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	s.log.Info("Watching %s for catalog changes", target)

	go func() {
		defer watcher.Close()

		var timer *time.Timer
		reload := func() {
			cat, err := load(target)
			if err != nil {
				s.log.Warn("Catalog reload failed, keeping current catalog: %v", err)
				return
			}
			s.SetCatalog(cat)
			s.log.Info("Reloaded %d catalog items from %s", cat.Len(), target)
		}

		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				name, _ := filepath.Abs(ev.Name)
				if name != target || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDebounce, reload)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn("Catalog watcher error: %v", err)
			}
		}
	}()

	return nil
}
