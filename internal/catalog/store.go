package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 200 * time.Millisecond

// Store holds the current catalog and swaps it on reload.
type Store struct {
	dir    string
	logger *zap.Logger

	mu  sync.RWMutex
	cat *Catalog
}

// Open loads dir into a new Store.
func Open(dir string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cat, err := Load(dir)
	if err != nil {
		return nil, err
	}
	return &Store{dir: dir, logger: logger, cat: cat}, nil
}

// Current returns the active catalog.
func (s *Store) Current() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cat
}

// Reload re-reads the data files. On failure the previous catalog stays active.
func (s *Store) Reload() error {
	cat, err := Load(s.dir)
	if err != nil {
		s.logger.Error("catalog reload failed", zap.String("dir", s.dir), zap.Error(err))
		return err
	}
	s.mu.Lock()
	s.cat = cat
	s.mu.Unlock()
	s.logger.Info("catalog reloaded", zap.String("dir", s.dir), zap.Int("projects", len(cat.Projects)))
	return nil
}

// Watch reloads the catalog whenever a data file changes. It blocks until ctx
// is done.
func (s *Store) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog: watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(s.dir); err != nil {
		return fmt.Errorf("catalog: watch %s: %w", s.dir, err)
	}
	s.logger.Info("watching catalog", zap.String("dir", s.dir))

	timer := time.NewTimer(reloadDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			// editors write in bursts; reload once they settle
			timer.Reset(reloadDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("catalog watcher error", zap.Error(err))
		case <-timer.C:
			_ = s.Reload()
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	switch filepath.Base(ev.Name) {
	case SiteFile, ProjectsFile:
		return true
	}
	return false
}
