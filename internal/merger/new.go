package merger

import (
	"github.com/courtside/courtside/internal/config"
	"github.com/courtside/courtside/internal/logger"
	"github.com/courtside/courtside/internal/progress"
	"github.com/courtside/courtside/internal/store"
	"github.com/courtside/courtside/pkg/executor"
)

type implMerger struct {
	cfg      *config.Config
	executor executor.Executor
	store    *store.Store
	broker   *progress.Broker
	logger   logger.Logger
}

// New creates a new Merger instance
func New(cfg *config.Config, exec executor.Executor, st *store.Store, broker *progress.Broker, log logger.Logger) Merger {
	return &implMerger{
		cfg:      cfg,
		executor: exec,
		store:    st,
		broker:   broker,
		logger:   log,
	}
}
