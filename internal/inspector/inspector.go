package inspector

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/courtside/courtside/internal/errs"
	"github.com/courtside/courtside/internal/store"
)

// Inspect moves an uploaded file into the video store under a fresh
// identifier, extracts a single-frame thumbnail, and probes the container
// duration. The duration ceiling is checked after the thumbnail is written,
// so a rejected clip may still leave its thumbnail behind.
func (i *implInspector) Inspect(ctx context.Context, filePath, originalName string) (*Video, error) {
	videoID := uuid.NewString()

	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".mp4"
	}

	destPath := filepath.Join(i.cfg.Paths.Uploads, videoID+ext)
	if err := os.Rename(filePath, destPath); err != nil {
		return nil, errs.Wrap(errs.ErrMediaTool, "store uploaded video", err)
	}

	i.logger.Info(ctx, "Inspecting uploaded video %s (%s)", videoID, originalName)

	thumbnailPath := filepath.Join(i.cfg.Paths.Thumbnails, videoID+".jpg")
	if err := i.extractThumbnail(ctx, destPath, thumbnailPath); err != nil {
		return nil, err
	}

	duration, err := i.probeDuration(ctx, destPath)
	if err != nil {
		return nil, err
	}

	if duration > i.cfg.Upload.MaxDurationSeconds {
		return nil, errs.Wrap(errs.ErrValidation,
			fmt.Sprintf("video duration %.1fs exceeds the %.0f second limit", duration, i.cfg.Upload.MaxDurationSeconds), nil)
	}

	if err := i.store.PutArtifact(ctx, store.Artifact{
		ID:   videoID,
		Kind: store.KindVideo,
		Path: destPath,
	}); err != nil {
		return nil, fmt.Errorf("index video: %w", err)
	}

	i.logger.Info(ctx, "Video accepted: %s (%.2fs)", videoID, duration)

	return &Video{
		ID:            videoID,
		Path:          destPath,
		Duration:      duration,
		ThumbnailPath: thumbnailPath,
	}, nil
}

// Delete removes a video file, its thumbnail if present, and its index entry.
func (i *implInspector) Delete(ctx context.Context, videoID string) error {
	artifact, err := i.store.GetArtifact(ctx, videoID)
	if err != nil {
		return err
	}
	if artifact.Kind != store.KindVideo {
		return errs.Wrap(errs.ErrNotFound, fmt.Sprintf("video %s", videoID), nil)
	}

	if err := os.Remove(artifact.Path); err != nil && !os.IsNotExist(err) {
		return errs.Wrap(errs.ErrMediaTool, "delete video file", err)
	}

	thumbnailPath := filepath.Join(i.cfg.Paths.Thumbnails, videoID+".jpg")
	if err := os.Remove(thumbnailPath); err != nil && !os.IsNotExist(err) {
		i.logger.Warn(ctx, "Failed to delete thumbnail %s: %v", thumbnailPath, err)
	}

	if err := i.store.DeleteArtifact(ctx, videoID); err != nil {
		return err
	}

	i.logger.Info(ctx, "Video deleted: %s", videoID)
	return nil
}

// extractThumbnail writes exactly one still frame at the configured size.
func (i *implInspector) extractThumbnail(ctx context.Context, videoPath, thumbnailPath string) error {
	args := []string{
		"-y",
		"-i", videoPath,
		"-frames:v", "1",
		"-s", i.cfg.FFmpeg.ThumbnailSize,
		thumbnailPath,
	}

	if _, err := i.executor.Execute(ctx, i.cfg.FFmpeg.Binary, args...); err != nil {
		return errs.Wrap(errs.ErrMediaTool, "extract thumbnail", err)
	}
	return nil
}

// probeDuration reads the container duration in seconds via ffprobe.
func (i *implInspector) probeDuration(ctx context.Context, videoPath string) (float64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		videoPath,
	}

	out, err := i.executor.Execute(ctx, i.cfg.FFmpeg.ProbeBinary, args...)
	if err != nil {
		return 0, errs.Wrap(errs.ErrMediaTool, "probe video metadata", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, errs.Wrap(errs.ErrMediaTool, fmt.Sprintf("parse probed duration %q", strings.TrimSpace(out)), err)
	}
	return duration, nil
}
