package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/courtside/courtside/internal/commentary"
	"github.com/courtside/courtside/internal/logger"
	"github.com/courtside/courtside/internal/merger"
	"github.com/courtside/courtside/internal/progress"
	"github.com/courtside/courtside/internal/speech"
	"github.com/courtside/courtside/internal/store"
)

type fakeGenerator struct {
	err   error
	calls int
	hook  func()
}

func (f *fakeGenerator) Generate(ctx context.Context, videoID, style string, keywords []string) (*commentary.Commentary, error) {
	f.calls++
	if f.hook != nil {
		f.hook()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &commentary.Commentary{ID: "com-1", Text: "text", Style: style}, nil
}

type fakeSynthesizer struct {
	err   error
	calls int
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, commentaryID, voiceStyle string) (*speech.Audio, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &speech.Audio{ID: "aud-1", URL: "/audio/aud-1.mp3", Duration: 10}, nil
}

type fakeMerger struct {
	err   error
	calls int
}

func (f *fakeMerger) Merge(ctx context.Context, videoID, audioID string) (*merger.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &merger.Result{ID: "res-1", URL: "/results/res-1.mp4"}, nil
}

type harness struct {
	runner Runner
	store  *store.Store
	broker *progress.Broker
	gen    *fakeGenerator
	synth  *fakeSynthesizer
	merge  *fakeMerger
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	h := &harness{
		store:  st,
		broker: progress.NewBroker(),
		gen:    &fakeGenerator{},
		synth:  &fakeSynthesizer{},
		merge:  &fakeMerger{},
	}
	h.runner = New(st, h.gen, h.synth, h.merge, h.broker, logger.New("error"), 5*time.Second)
	return h
}

func TestRunCompletes(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	outcome, err := h.runner.Run(ctx, "vid-1", "excitable", []string{"dunk"}, "energetic")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if outcome.CommentaryID != "com-1" || outcome.AudioID != "aud-1" || outcome.ResultID != "res-1" {
		t.Errorf("outcome = %+v", outcome)
	}
	if outcome.Status != store.StatusCompleted {
		t.Errorf("Status = %v, want %v", outcome.Status, store.StatusCompleted)
	}

	run, err := h.store.GetRun(ctx, "vid-1")
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if run.Status != store.StatusCompleted {
		t.Errorf("persisted Status = %v, want %v", run.Status, store.StatusCompleted)
	}
	if run.Style != "excitable" {
		t.Errorf("persisted Style = %v", run.Style)
	}
	if run.CommentaryID != "com-1" || run.AudioID != "aud-1" || run.ResultID != "res-1" {
		t.Errorf("persisted stage ids = %+v", run)
	}
}

func TestRunStageOrder(t *testing.T) {
	h := newHarness(t)

	if _, err := h.runner.Run(context.Background(), "vid-1", "analytical", nil, ""); err != nil {
		t.Fatal(err)
	}

	if h.gen.calls != 1 || h.synth.calls != 1 || h.merge.calls != 1 {
		t.Errorf("stage calls = gen %d, synth %d, merge %d, want one each",
			h.gen.calls, h.synth.calls, h.merge.calls)
	}
}

func TestRunGenerateFailure(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.gen.err = errors.New("llm down")

	_, err := h.runner.Run(ctx, "vid-1", "excitable", nil, "")
	if err == nil {
		t.Fatal("Run() should surface the stage error")
	}

	run, err := h.store.GetRun(ctx, "vid-1")
	if err != nil {
		t.Fatal(err)
	}
	if run.Status != store.StatusFailed {
		t.Errorf("Status = %v, want %v", run.Status, store.StatusFailed)
	}
	if !strings.Contains(run.Error, "llm down") {
		t.Errorf("Error = %q, should record the cause", run.Error)
	}

	if h.synth.calls != 0 || h.merge.calls != 0 {
		t.Error("later stages must not run after a failure")
	}
}

func TestRunSynthesizeFailureKeepsCommentary(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.synth.err = errors.New("tts down")

	_, err := h.runner.Run(ctx, "vid-1", "excitable", nil, "")
	if err == nil {
		t.Fatal("Run() should surface the stage error")
	}

	run, err := h.store.GetRun(ctx, "vid-1")
	if err != nil {
		t.Fatal(err)
	}
	if run.Status != store.StatusFailed {
		t.Errorf("Status = %v, want %v", run.Status, store.StatusFailed)
	}
	// The commentary stage already succeeded; its id stays on the run
	if run.CommentaryID != "com-1" {
		t.Errorf("CommentaryID = %q, want com-1", run.CommentaryID)
	}
	if h.merge.calls != 0 {
		t.Error("merge must not run after a synthesize failure")
	}
}

func TestRunRestartsAfterFailure(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	h.merge.err = errors.New("ffmpeg exploded")
	if _, err := h.runner.Run(ctx, "vid-1", "excitable", nil, ""); err == nil {
		t.Fatal("first Run() should fail")
	}

	h.merge.err = nil
	outcome, err := h.runner.Run(ctx, "vid-1", "excitable", nil, "")
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if outcome.Status != store.StatusCompleted {
		t.Errorf("Status = %v, want %v", outcome.Status, store.StatusCompleted)
	}
}

func TestRunPersistFailureLandsInFailed(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	// Diverge the stored row mid-stage so the next persist is rejected.
	h.gen.hook = func() {
		run, err := h.store.GetRun(ctx, "vid-1")
		if err != nil {
			t.Error(err)
			return
		}
		run.Status = store.StatusFailed
		run.Error = "marked by another writer"
		if err := h.store.UpdateRun(ctx, run); err != nil {
			t.Error(err)
		}
	}

	if _, err := h.runner.Run(ctx, "vid-1", "excitable", nil, ""); err == nil {
		t.Fatal("Run() should surface the persist failure")
	}

	// The row must land in Failed, never stay stuck in Processing
	run, err := h.store.GetRun(ctx, "vid-1")
	if err != nil {
		t.Fatal(err)
	}
	if run.Status != store.StatusFailed {
		t.Errorf("Status = %v, want %v", run.Status, store.StatusFailed)
	}

	h.gen.hook = nil
	outcome, err := h.runner.Run(ctx, "vid-1", "excitable", nil, "")
	if err != nil {
		t.Fatalf("Run() after failure error = %v", err)
	}
	if outcome.Status != store.StatusCompleted {
		t.Errorf("Status = %v, want %v", outcome.Status, store.StatusCompleted)
	}
}

func TestRunPublishesDoneEvent(t *testing.T) {
	h := newHarness(t)

	events, cancel := h.broker.Subscribe("vid-1")
	defer cancel()

	if _, err := h.runner.Run(context.Background(), "vid-1", "excitable", nil, ""); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(time.Second)
	for {
		select {
		case ev := <-events:
			if ev.Done {
				if ev.Percent != 100 {
					t.Errorf("done event Percent = %v, want 100", ev.Percent)
				}
				return
			}
		case <-deadline:
			t.Fatal("no Done event published")
		}
	}
}
