package commentary

import "context"

// Commentary is a generated play-by-play text persisted under an identifier.
type Commentary struct {
	ID       string
	Text     string
	Style    string
	Keywords []string
}

// Generator produces commentary text for an uploaded video
type Generator interface {
	Generate(ctx context.Context, videoID, style string, keywords []string) (*Commentary, error)
}

// TextClient is the remote text-generation boundary. Deterministic inputs do
// not guarantee deterministic output; sampling temperature is a tunable.
type TextClient interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}
