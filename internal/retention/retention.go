package retention

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/courtside/courtside/internal/logger"
)

type implSweeper struct {
	dir           string
	maxAge        time.Duration
	sweepInterval time.Duration
	watcher       *fsnotify.Watcher
	logger        logger.Logger
}

// Start monitors the scratch directory and periodically removes files that
// outlived maxAge. Scratch files are normally renamed away by the inspector;
// anything left behind belongs to an abandoned or rejected upload.
func (s *implSweeper) Start(ctx context.Context) error {
	s.logger.Info(ctx, "Retention sweeper started. Monitoring: %s (max age: %s)", s.dir, s.maxAge)

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Retention sweeper stopped")
			return ctx.Err()

		case event, ok := <-s.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				s.logger.Debug(ctx, "Scratch file created: %s", event.Name)
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			s.logger.Warn(ctx, "Watcher error: %v", err)

		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// Stop closes the underlying filesystem watcher.
func (s *implSweeper) Stop() error {
	return s.watcher.Close()
}

func (s *implSweeper) sweep(ctx context.Context) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Warn(ctx, "Sweep failed to read %s: %v", s.dir, err)
		return
	}

	cutoff := time.Now().Add(-s.maxAge)
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			s.logger.Warn(ctx, "Failed to remove stale file %s: %v", path, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Info(ctx, "Sweep removed %d stale scratch files", removed)
	}
}
