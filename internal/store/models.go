package store

import "time"

// Kind classifies an artifact persisted under an identifier.
type Kind string

const (
	KindVideo      Kind = "video"
	KindCommentary Kind = "commentary"
	KindAudio      Kind = "audio"
	KindResult     Kind = "result"
)

// Artifact maps a generated identifier to the file backing it.
type Artifact struct {
	ID        string
	Kind      Kind
	Path      string
	CreatedAt time.Time
}

// RunStatus represents the lifecycle of a pipeline run.
type RunStatus string

const (
	StatusUploaded      RunStatus = "uploaded"
	StatusStyleSelected RunStatus = "style_selected"
	StatusProcessing    RunStatus = "processing"
	StatusCompleted     RunStatus = "completed"
	StatusFailed        RunStatus = "failed"
)

// validTransitions describes the forward edges of the run state machine.
// Failed is reachable from any non-terminal state.
var validTransitions = map[RunStatus][]RunStatus{
	StatusUploaded:      {StatusStyleSelected, StatusFailed},
	StatusStyleSelected: {StatusProcessing, StatusFailed},
	StatusProcessing:    {StatusCompleted, StatusFailed},
	// A failed run restarts from style selection.
	StatusFailed: {StatusStyleSelected},
}

// ValidTransition reports whether a run may move from one status to another.
func ValidTransition(from, to RunStatus) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Run is the persisted stage marker for one pipeline execution.
type Run struct {
	VideoID      string
	Status       RunStatus
	Style        string
	CommentaryID string
	AudioID      string
	ResultID     string
	Error        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
