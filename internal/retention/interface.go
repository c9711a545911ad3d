package retention

import "context"

// Sweeper removes stale files from the upload scratch directory
type Sweeper interface {
	Start(ctx context.Context) error
	Stop() error
}
