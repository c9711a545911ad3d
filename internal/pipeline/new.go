package pipeline

import (
	"time"

	"github.com/courtside/courtside/internal/commentary"
	"github.com/courtside/courtside/internal/logger"
	"github.com/courtside/courtside/internal/merger"
	"github.com/courtside/courtside/internal/progress"
	"github.com/courtside/courtside/internal/speech"
	"github.com/courtside/courtside/internal/store"
)

type implRunner struct {
	store        *store.Store
	generator    commentary.Generator
	synthesizer  speech.Synthesizer
	merger       merger.Merger
	broker       *progress.Broker
	logger       logger.Logger
	stageTimeout time.Duration
}

// New creates a new Runner instance
func New(
	st *store.Store,
	gen commentary.Generator,
	synth speech.Synthesizer,
	mrg merger.Merger,
	broker *progress.Broker,
	log logger.Logger,
	stageTimeout time.Duration,
) Runner {
	return &implRunner{
		store:        st,
		generator:    gen,
		synthesizer:  synth,
		merger:       mrg,
		broker:       broker,
		logger:       log,
		stageTimeout: stageTimeout,
	}
}
