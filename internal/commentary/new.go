package commentary

import (
	"github.com/courtside/courtside/internal/config"
	"github.com/courtside/courtside/internal/logger"
	"github.com/courtside/courtside/internal/store"
)

type implGenerator struct {
	cfg    *config.Config
	client TextClient
	store  *store.Store
	logger logger.Logger
}

// New creates a new Generator instance
func New(cfg *config.Config, client TextClient, st *store.Store, log logger.Logger) Generator {
	return &implGenerator{
		cfg:    cfg,
		client: client,
		store:  st,
		logger: log,
	}
}
