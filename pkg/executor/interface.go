package executor

import "context"

// Executor defines the interface for executing external commands
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	ExecuteStream(ctx context.Context, onLine func(string), name string, args ...string) error
}
