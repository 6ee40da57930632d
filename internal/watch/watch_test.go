package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func startWatcher(t *testing.T, path string) *Watcher {
	t.Helper()
	w, err := New(path, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(w.Stop)
	return w
}

func TestWatcher_DetectsChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte("To be"), 0o644); err != nil {
		t.Fatalf("failed to create input: %v", err)
	}

	w := startWatcher(t, path)

	if err := os.WriteFile(path, []byte("To be or not to be"), 0o644); err != nil {
		t.Fatalf("failed to update input: %v", err)
	}

	select {
	case change := <-w.Changes:
		if change.Path != w.Path {
			t.Errorf("expected path %q, got %q", w.Path, change.Path)
		}
		if change.Removed {
			t.Error("expected Removed=false")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to create input: %v", err)
	}

	w := startWatcher(t, path)

	if err := os.WriteFile(filepath.Join(dir, "output.txt"), []byte("y"), 0o644); err != nil {
		t.Fatalf("failed to create sibling: %v", err)
	}

	select {
	case change := <-w.Changes:
		t.Errorf("unexpected change event: %+v", change)
	case <-time.After(300 * time.Millisecond):
		// Expected: no events for other files.
	}
}

func TestWatcher_DetectsRemoval(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to create input: %v", err)
	}

	w := startWatcher(t, path)

	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove input: %v", err)
	}

	select {
	case change := <-w.Changes:
		if !change.Removed {
			t.Error("expected Removed=true")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for removal event")
	}
}

func TestWatcher_DebouncesBurst(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to create input: %v", err)
	}

	w := startWatcher(t, path)

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("burst"), 0o644); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}

	select {
	case <-w.Changes:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}

	select {
	case change := <-w.Changes:
		t.Errorf("burst should coalesce into one change, got extra %+v", change)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_StopWithUnreadChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to create input: %v", err)
	}

	w, err := New(path, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Nobody reads Changes, so once the buffer is full the next change
	// has nowhere to go.
	for range cap(w.changes) {
		w.changes <- Change{Path: w.Path}
	}
	if err := os.WriteFile(path, []byte("y"), 0o644); err != nil {
		t.Fatalf("failed to update input: %v", err)
	}
	time.Sleep(200 * time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		w.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return with a full Changes buffer")
	}
}
