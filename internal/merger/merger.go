package merger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/courtside/courtside/internal/errs"
	"github.com/courtside/courtside/internal/progress"
	"github.com/courtside/courtside/internal/store"
)

// Merge muxes the audio artifact onto the video: video stream copied without
// re-encoding, audio re-encoded to the configured codec, output trimmed to
// the shorter stream. Progress events are informational only.
func (m *implMerger) Merge(ctx context.Context, videoID, audioID string) (*Result, error) {
	video, err := m.store.GetArtifact(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video.Kind != store.KindVideo {
		return nil, errs.Wrap(errs.ErrNotFound, fmt.Sprintf("video %s", videoID), nil)
	}

	audioPath := filepath.Join(m.cfg.Paths.Audio, audioID+".mp3")
	if _, err := os.Stat(audioPath); err != nil {
		return nil, errs.Wrap(errs.ErrNotFound, fmt.Sprintf("audio %s", audioID), nil)
	}

	resultID := uuid.NewString()
	outputPath := filepath.Join(m.cfg.Paths.Results, resultID+".mp4")

	m.logger.Info(ctx, "Merging video %s with audio %s -> %s", videoID, audioID, resultID)

	// Probe the video duration so progress events can carry a percentage.
	// Probe failures only degrade the progress feed, never the merge.
	totalDuration := m.probeDuration(ctx, video.Path)

	args := []string{
		"-y",
		"-i", video.Path,
		"-i", audioPath,
		"-c:v", "copy",
		"-c:a", m.cfg.FFmpeg.AudioCodec,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-shortest",
		"-progress", "pipe:1",
		"-nostats",
		outputPath,
	}

	m.broker.Publish(videoID, progress.Event{Stage: "merge", Message: "merge started"})

	onLine := func(line string) {
		if ev, ok := parseProgressLine(line, totalDuration); ok {
			m.broker.Publish(videoID, ev)
		}
	}

	if err := m.executor.ExecuteStream(ctx, onLine, m.cfg.FFmpeg.Binary, args...); err != nil {
		return nil, errs.Wrap(errs.ErrMediaTool, "merge audio and video", err)
	}

	if err := m.store.PutArtifact(ctx, store.Artifact{
		ID:   resultID,
		Kind: store.KindResult,
		Path: outputPath,
	}); err != nil {
		return nil, fmt.Errorf("index result: %w", err)
	}

	m.broker.Publish(videoID, progress.Event{Stage: "merge", Percent: 100, Message: "merge finished"})
	m.logger.Info(ctx, "Merge completed: %s", resultID)

	return &Result{
		ID:   resultID,
		Path: outputPath,
		URL:  "/results/" + resultID + ".mp4",
	}, nil
}

func (m *implMerger) probeDuration(ctx context.Context, videoPath string) float64 {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		videoPath,
	}

	out, err := m.executor.Execute(ctx, m.cfg.FFmpeg.ProbeBinary, args...)
	if err != nil {
		m.logger.Warn(ctx, "Probe for merge progress failed: %v", err)
		return 0
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0
	}
	return duration
}

// parseProgressLine interprets one line of ffmpeg -progress output.
func parseProgressLine(line string, totalDuration float64) (progress.Event, bool) {
	key, value, found := strings.Cut(strings.TrimSpace(line), "=")
	if !found || key != "out_time_us" {
		return progress.Event{}, false
	}

	us, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return progress.Event{}, false
	}

	elapsed := float64(us) / 1e6
	ev := progress.Event{Stage: "merge", Message: fmt.Sprintf("%.1fs processed", elapsed)}
	if totalDuration > 0 {
		pct := elapsed / totalDuration * 100
		if pct > 100 {
			pct = 100
		}
		ev.Percent = pct
	}
	return ev, true
}
