package pipeline

import (
	"context"
	"errors"

	"github.com/courtside/courtside/internal/commentary"
	"github.com/courtside/courtside/internal/errs"
	"github.com/courtside/courtside/internal/merger"
	"github.com/courtside/courtside/internal/progress"
	"github.com/courtside/courtside/internal/speech"
	"github.com/courtside/courtside/internal/store"
)

// Run executes the full pipeline for one video: StyleSelected -> Processing,
// then Generate -> Synthesize -> Merge strictly in sequence, each stage's
// identifier feeding the next. Any stage error moves the run to Failed; the
// artifacts of earlier stages stay on disk and the run restarts from
// StyleSelected. No retry, no resume.
func (p *implRunner) Run(ctx context.Context, videoID, style string, keywords []string, voiceStyle string) (*Outcome, error) {
	run, err := p.store.GetRun(ctx, videoID)
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
		run, err = p.store.CreateRun(ctx, videoID)
		if err != nil {
			return nil, err
		}
	}

	run.Style = style
	run.Status = store.StatusStyleSelected
	if err := p.store.UpdateRun(ctx, run); err != nil {
		return nil, err
	}

	run.Status = store.StatusProcessing
	if err := p.store.UpdateRun(ctx, run); err != nil {
		return nil, err
	}

	p.logger.Info(ctx, "Pipeline started for video %s (style=%s)", videoID, style)

	p.broker.Publish(videoID, progress.Event{Stage: "generate", Message: "generating commentary"})
	com, err := p.generate(ctx, videoID, style, keywords)
	if err != nil {
		return nil, p.fail(ctx, run, err)
	}
	run.CommentaryID = com.ID
	if err := p.store.UpdateRun(ctx, run); err != nil {
		return nil, p.fail(ctx, run, err)
	}

	p.broker.Publish(videoID, progress.Event{Stage: "synthesize", Message: "synthesizing speech"})
	audio, err := p.synthesize(ctx, com.ID, voiceStyle)
	if err != nil {
		return nil, p.fail(ctx, run, err)
	}
	run.AudioID = audio.ID
	if err := p.store.UpdateRun(ctx, run); err != nil {
		return nil, p.fail(ctx, run, err)
	}

	p.broker.Publish(videoID, progress.Event{Stage: "merge", Message: "merging audio and video"})
	result, err := p.merge(ctx, videoID, audio.ID)
	if err != nil {
		return nil, p.fail(ctx, run, err)
	}

	run.ResultID = result.ID
	run.Status = store.StatusCompleted
	if err := p.store.UpdateRun(ctx, run); err != nil {
		return nil, p.fail(ctx, run, err)
	}

	p.broker.Publish(videoID, progress.Event{Stage: "pipeline", Percent: 100, Message: "completed", Done: true})
	p.logger.Info(ctx, "Pipeline completed for video %s: result %s", videoID, result.ID)

	return &Outcome{
		VideoID:      videoID,
		CommentaryID: com.ID,
		AudioID:      audio.ID,
		ResultID:     result.ID,
		ResultURL:    result.URL,
		Status:       store.StatusCompleted,
	}, nil
}

func (p *implRunner) generate(ctx context.Context, videoID, style string, keywords []string) (*commentary.Commentary, error) {
	sctx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()
	return p.generator.Generate(sctx, videoID, style, keywords)
}

func (p *implRunner) synthesize(ctx context.Context, commentaryID, voiceStyle string) (*speech.Audio, error) {
	sctx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()
	return p.synthesizer.Synthesize(sctx, commentaryID, voiceStyle)
}

func (p *implRunner) merge(ctx context.Context, videoID, audioID string) (*merger.Result, error) {
	sctx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()
	return p.merger.Merge(sctx, videoID, audioID)
}

// fail records the originating error on the run and surfaces it unchanged.
func (p *implRunner) fail(ctx context.Context, run *store.Run, cause error) error {
	run.Status = store.StatusFailed
	run.Error = cause.Error()
	if err := p.store.UpdateRun(ctx, run); err != nil {
		p.logger.Error(ctx, "Failed to persist failed run %s: %v", run.VideoID, err)
	}

	p.broker.Publish(run.VideoID, progress.Event{Stage: "pipeline", Message: cause.Error(), Done: true})
	p.logger.Error(ctx, "Pipeline failed for video %s: %v", run.VideoID, cause)
	return cause
}
