package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestWatcher(t *testing.T) (*Watcher, string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "lab.yaml")
	if err := os.WriteFile(path, []byte("settle:\n  speed: 0.1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w, dir, path
}

func waitForEvent(t *testing.T, w *Watcher) string {
	t.Helper()
	select {
	case got, ok := <-w.Events:
		if !ok {
			t.Fatal("Events closed before an event arrived")
		}
		return got
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for a watch event")
	}
	return ""
}

func TestWatcherDebouncesWriteBurst(t *testing.T) {
	w, _, path := newTestWatcher(t)

	// several saves inside the debounce window collapse to one event
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("settle:\n  speed: 0.2\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if got := waitForEvent(t, w); filepath.Clean(got) != filepath.Clean(path) {
		t.Fatalf("event for %q, want %q", got, path)
	}

	select {
	case got, ok := <-w.Events:
		if ok {
			t.Fatalf("burst produced a second event: %q", got)
		}
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherIgnoresOtherFilesInDir(t *testing.T) {
	w, dir, path := newTestWatcher(t)

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got, ok := <-w.Events:
		if ok {
			t.Fatalf("unwatched file produced event %q", got)
		}
	case <-time.After(300 * time.Millisecond):
	}

	// the watched file still reports after unrelated churn
	if err := os.WriteFile(path, []byte("settle:\n  speed: 0.3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := waitForEvent(t, w); filepath.Clean(got) != filepath.Clean(path) {
		t.Fatalf("event for %q, want %q", got, path)
	}
}

func TestWatcherCloseIdempotent(t *testing.T) {
	w, _, _ := newTestWatcher(t)

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	select {
	case _, ok := <-w.Events:
		if ok {
			t.Fatal("expected Events to close after Close")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Events not closed after Close")
	}
}
