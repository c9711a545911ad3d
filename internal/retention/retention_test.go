package retention

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/courtside/courtside/internal/logger"
)

func newTestSweeper(t *testing.T, maxAge time.Duration) (*implSweeper, string) {
	t.Helper()
	dir := t.TempDir()
	sw, err := New(dir, maxAge, time.Minute, logger.New("error"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { sw.Stop() })
	return sw.(*implSweeper), dir
}

func writeAged(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("scratch"), 0644); err != nil {
		t.Fatal(err)
	}
	stamp := time.Now().Add(-age)
	if err := os.Chtimes(path, stamp, stamp); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSweepRemovesStaleFiles(t *testing.T) {
	sw, dir := newTestSweeper(t, time.Hour)

	old := writeAged(t, dir, "old.mp4", 2*time.Hour)
	fresh := writeAged(t, dir, "fresh.mp4", time.Minute)

	sw.sweep(context.Background())

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("stale file should be removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Errorf("fresh file should survive: %v", err)
	}
}

func TestSweepSkipsDirectories(t *testing.T) {
	sw, dir := newTestSweeper(t, time.Hour)

	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	stamp := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(sub, stamp, stamp); err != nil {
		t.Fatal(err)
	}

	sw.sweep(context.Background())

	if _, err := os.Stat(sub); err != nil {
		t.Errorf("directories should not be swept: %v", err)
	}
}

func TestStartStopsOnContextCancel(t *testing.T) {
	sw, _ := newTestSweeper(t, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sw.Start(ctx) }()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Start() error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Start() did not return after cancel")
	}
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "does-not-exist"), time.Hour, time.Minute, logger.New("error"))
	if err == nil {
		t.Error("New() should fail on a missing directory")
	}
}
