package speech

import (
	"github.com/courtside/courtside/internal/config"
	"github.com/courtside/courtside/internal/logger"
	"github.com/courtside/courtside/internal/store"
)

type implSynthesizer struct {
	cfg    *config.Config
	client TTSClient
	store  *store.Store
	logger logger.Logger
}

// New creates a new Synthesizer instance
func New(cfg *config.Config, client TTSClient, st *store.Store, log logger.Logger) Synthesizer {
	return &implSynthesizer{
		cfg:    cfg,
		client: client,
		store:  st,
		logger: log,
	}
}
