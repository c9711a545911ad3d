package inspector

import "context"

// Video describes an accepted upload and its derived artifacts.
type Video struct {
	ID            string
	Path          string
	Duration      float64
	ThumbnailPath string
}

// Inspector validates uploaded clips and extracts their metadata
type Inspector interface {
	Inspect(ctx context.Context, filePath, originalName string) (*Video, error)
	Delete(ctx context.Context, videoID string) error
}
