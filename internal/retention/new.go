package retention

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/courtside/courtside/internal/logger"
)

// New creates a Sweeper over the given scratch directory. Files older than
// maxAge are removed on every sweepInterval tick.
func New(dir string, maxAge, sweepInterval time.Duration, log logger.Logger) (Sweeper, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implSweeper{
		dir:           dir,
		maxAge:        maxAge,
		sweepInterval: sweepInterval,
		watcher:       watcher,
		logger:        log,
	}, nil
}
