package commentary

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/courtside/courtside/internal/errs"
	"github.com/courtside/courtside/internal/store"
)

// Generate builds the prompt, invokes the text-generation service, and
// persists the trimmed response under a fresh commentary identifier.
// No caching: identical inputs produce distinct commentaries.
func (g *implGenerator) Generate(ctx context.Context, videoID, style string, keywords []string) (*Commentary, error) {
	video, err := g.store.GetArtifact(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video.Kind != store.KindVideo {
		return nil, errs.Wrap(errs.ErrNotFound, fmt.Sprintf("video %s", videoID), nil)
	}

	prompt := buildPrompt(style, keywords)
	g.logger.Debug(ctx, "Commentary prompt for %s: %s", videoID, prompt)

	text, err := g.client.GenerateText(ctx, prompt)
	if err != nil {
		return nil, errs.Wrap(errs.ErrUpstream, "generate commentary", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errs.Wrap(errs.ErrUpstream, "generate commentary: empty response", nil)
	}

	commentaryID := uuid.NewString()
	commentaryPath := filepath.Join(g.cfg.Paths.Commentaries, commentaryID+".txt")
	if err := os.WriteFile(commentaryPath, []byte(text), 0644); err != nil {
		return nil, fmt.Errorf("write commentary file: %w", err)
	}

	if err := g.store.PutArtifact(ctx, store.Artifact{
		ID:   commentaryID,
		Kind: store.KindCommentary,
		Path: commentaryPath,
	}); err != nil {
		return nil, fmt.Errorf("index commentary: %w", err)
	}

	g.logger.Info(ctx, "Commentary generated: %s (%d chars, style=%s)", commentaryID, len(text), style)

	return &Commentary{
		ID:       commentaryID,
		Text:     text,
		Style:    style,
		Keywords: keywords,
	}, nil
}
