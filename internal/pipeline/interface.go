package pipeline

import (
	"context"

	"github.com/courtside/courtside/internal/store"
)

// Outcome summarizes a completed pipeline run.
type Outcome struct {
	VideoID      string
	CommentaryID string
	AudioID      string
	ResultID     string
	ResultURL    string
	Status       store.RunStatus
}

// Runner drives the generate -> synthesize -> merge sequence for one video
type Runner interface {
	Run(ctx context.Context, videoID, style string, keywords []string, voiceStyle string) (*Outcome, error)
}
