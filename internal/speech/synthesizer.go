package speech

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/courtside/courtside/internal/errs"
	"github.com/courtside/courtside/internal/store"
)

// Synthesize loads the commentary text by identifier, invokes the TTS
// boundary, and persists the audio artifact under a fresh identifier.
func (s *implSynthesizer) Synthesize(ctx context.Context, commentaryID, voiceStyle string) (*Audio, error) {
	commentary, err := s.store.GetArtifact(ctx, commentaryID)
	if err != nil {
		return nil, err
	}
	if commentary.Kind != store.KindCommentary {
		return nil, errs.Wrap(errs.ErrNotFound, fmt.Sprintf("commentary %s", commentaryID), nil)
	}

	text, err := os.ReadFile(commentary.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrNotFound, fmt.Sprintf("commentary %s", commentaryID), err)
		}
		return nil, fmt.Errorf("read commentary file: %w", err)
	}

	s.logger.Info(ctx, "Synthesizing speech for commentary %s (voice=%s)", commentaryID, voiceStyle)

	audioBytes, duration, err := s.client.Speak(ctx, string(text), voiceStyle)
	if err != nil {
		return nil, errs.Wrap(errs.ErrUpstream, "synthesize speech", err)
	}

	audioID := uuid.NewString()
	audioPath := filepath.Join(s.cfg.Paths.Audio, audioID+".mp3")
	if err := os.WriteFile(audioPath, audioBytes, 0644); err != nil {
		return nil, fmt.Errorf("write audio file: %w", err)
	}

	if err := s.store.PutArtifact(ctx, store.Artifact{
		ID:   audioID,
		Kind: store.KindAudio,
		Path: audioPath,
	}); err != nil {
		return nil, fmt.Errorf("index audio: %w", err)
	}

	s.logger.Info(ctx, "Audio synthesized: %s (%.1fs)", audioID, duration)

	return &Audio{
		ID:       audioID,
		Path:     audioPath,
		URL:      "/audio/" + audioID + ".mp3",
		Duration: duration,
	}, nil
}
