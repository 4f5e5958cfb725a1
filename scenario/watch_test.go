package scenario

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherCloseClosesChannels(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close should be a no-op, got %v", err)
	}

	select {
	case _, ok := <-w.Events:
		if ok {
			t.Fatalf("expected no events after Close")
		}
	case <-time.After(time.Second):
		t.Fatalf("Events channel not closed after Close")
	}
	select {
	case _, ok := <-w.Errors:
		if ok {
			t.Fatalf("expected no errors after Close")
		}
	case <-time.After(time.Second):
		t.Fatalf("Errors channel not closed after Close")
	}
}

func TestWatcherCloseDuringBurst(t *testing.T) {
	// writes keep arriving while nobody drains Events; Close must shut the
	// run loop down without a send landing on a closed channel
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			_ = os.WriteFile(filepath.Join(dir, "burst.yaml"), []byte("name: burst"), 0o644)
		}
	}()

	time.Sleep(10 * time.Millisecond)
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	<-done

	for range w.Events {
		// drain whatever was buffered; the loop ends because run closed it
	}
}

func TestWatcherReportsScenarioChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "world.yaml")
	if err := os.WriteFile(path, []byte("name: world"), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}

	select {
	case name := <-w.Events:
		if filepath.Base(name) != "world.yaml" {
			t.Fatalf("expected event for world.yaml, got %q", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected an event for the new scenario file")
	}
}
