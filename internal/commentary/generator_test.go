package commentary

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/courtside/courtside/internal/config"
	"github.com/courtside/courtside/internal/errs"
	"github.com/courtside/courtside/internal/logger"
	"github.com/courtside/courtside/internal/store"
)

type fakeTextClient struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeTextClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newTestGenerator(t *testing.T, client TextClient) (Generator, *store.Store) {
	t.Helper()
	base := t.TempDir()
	cfg := &config.Config{
		Paths: config.PathsConfig{
			Uploads:      filepath.Join(base, "uploads"),
			Commentaries: filepath.Join(base, "commentaries"),
			Results:      filepath.Join(base, "results"),
		},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(cfg.Paths.Commentaries, 0755); err != nil {
		t.Fatal(err)
	}

	st, err := store.Open(filepath.Join(base, "index.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	return New(cfg, client, st, logger.New("error")), st
}

func indexVideo(t *testing.T, st *store.Store, id string) {
	t.Helper()
	err := st.PutArtifact(context.Background(), store.Artifact{
		ID:   id,
		Kind: store.KindVideo,
		Path: "/data/uploads/" + id + ".mp4",
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	client := &fakeTextClient{response: "  He drives to the rim... AND SLAMS IT HOME!  \n"}
	gen, st := newTestGenerator(t, client)
	indexVideo(t, st, "vid-1")

	c, err := gen.Generate(ctx, "vid-1", "excitable", []string{"dunk"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if c.Text != "He drives to the rim... AND SLAMS IT HOME!" {
		t.Errorf("Text = %q, response should be trimmed", c.Text)
	}
	if c.Style != "excitable" {
		t.Errorf("Style = %q, want excitable", c.Style)
	}

	artifact, err := st.GetArtifact(ctx, c.ID)
	if err != nil {
		t.Fatalf("commentary not indexed: %v", err)
	}
	data, err := os.ReadFile(artifact.Path)
	if err != nil {
		t.Fatalf("commentary file not written: %v", err)
	}
	if string(data) != c.Text {
		t.Errorf("persisted text = %q, want %q", data, c.Text)
	}
}

func TestGenerateDistinctIDs(t *testing.T) {
	ctx := context.Background()
	client := &fakeTextClient{response: "same text"}
	gen, st := newTestGenerator(t, client)
	indexVideo(t, st, "vid-1")

	first, err := gen.Generate(ctx, "vid-1", "analytical", nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := gen.Generate(ctx, "vid-1", "analytical", nil)
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == second.ID {
		t.Error("identical inputs must still produce distinct commentary ids")
	}
}

func TestGenerateUnknownVideo(t *testing.T) {
	gen, _ := newTestGenerator(t, &fakeTextClient{response: "text"})

	_, err := gen.Generate(context.Background(), "nope", "excitable", nil)
	if !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("Generate() error = %v, want ErrNotFound", err)
	}
}

func TestGenerateNonVideoArtifact(t *testing.T) {
	ctx := context.Background()
	gen, st := newTestGenerator(t, &fakeTextClient{response: "text"})
	if err := st.PutArtifact(ctx, store.Artifact{ID: "aud-1", Kind: store.KindAudio, Path: "/a.mp3"}); err != nil {
		t.Fatal(err)
	}

	_, err := gen.Generate(ctx, "aud-1", "excitable", nil)
	if !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("Generate() error = %v, want ErrNotFound", err)
	}
}

func TestGenerateUpstreamFailure(t *testing.T) {
	client := &fakeTextClient{err: errors.New("quota exceeded")}
	gen, st := newTestGenerator(t, client)
	indexVideo(t, st, "vid-1")

	_, err := gen.Generate(context.Background(), "vid-1", "excitable", nil)
	if !errors.Is(err, errs.ErrUpstream) {
		t.Errorf("Generate() error = %v, want ErrUpstream", err)
	}
}

func TestGenerateEmptyResponse(t *testing.T) {
	client := &fakeTextClient{response: "   \n\t "}
	gen, st := newTestGenerator(t, client)
	indexVideo(t, st, "vid-1")

	_, err := gen.Generate(context.Background(), "vid-1", "excitable", nil)
	if !errors.Is(err, errs.ErrUpstream) {
		t.Errorf("Generate() error = %v, want ErrUpstream for an empty response", err)
	}
}
