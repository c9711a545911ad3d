package merger

import "context"

// Result is a merged commentary video persisted under an identifier.
type Result struct {
	ID   string
	Path string
	URL  string
}

// Merger overlays a synthesized audio track onto an uploaded video
type Merger interface {
	Merge(ctx context.Context, videoID, audioID string) (*Result, error)
}
