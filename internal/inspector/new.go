package inspector

import (
	"github.com/courtside/courtside/internal/config"
	"github.com/courtside/courtside/internal/logger"
	"github.com/courtside/courtside/internal/store"
	"github.com/courtside/courtside/pkg/executor"
)

type implInspector struct {
	cfg      *config.Config
	executor executor.Executor
	store    *store.Store
	logger   logger.Logger
}

// New creates a new Inspector instance
func New(cfg *config.Config, exec executor.Executor, st *store.Store, log logger.Logger) Inspector {
	return &implInspector{
		cfg:      cfg,
		executor: exec,
		store:    st,
		logger:   log,
	}
}
