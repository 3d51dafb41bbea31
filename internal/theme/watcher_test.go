package theme

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chatter/keycast/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New("")
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}
	return l
}

func TestWatcher_SignalsOnThemeWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	if err := os.WriteFile(path, []byte("hold: 2s\n"), 0644); err != nil {
		t.Fatalf("failed to create theme file: %v", err)
	}

	w, err := NewWatcher(path, testLogger(t))
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("hold: 3s\n"), 0644); err != nil {
		t.Fatalf("failed to modify theme file: %v", err)
	}

	select {
	case <-w.Events():
	case <-time.After(500 * time.Millisecond):
		t.Error("expected a change notification for the theme file, got none")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	if err := os.WriteFile(path, []byte("hold: 2s\n"), 0644); err != nil {
		t.Fatalf("failed to create theme file: %v", err)
	}

	w, err := NewWatcher(path, testLogger(t))
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(other, []byte("unrelated"), 0644); err != nil {
		t.Fatalf("failed to create unrelated file: %v", err)
	}

	select {
	case <-w.Events():
		t.Error("unrelated file should not trigger a notification")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_SignalsOnReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	if err := os.WriteFile(path, []byte("hold: 2s\n"), 0644); err != nil {
		t.Fatalf("failed to create theme file: %v", err)
	}

	w, err := NewWatcher(path, testLogger(t))
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	// Editors typically write to a temp file and rename it over the target.
	tmp := filepath.Join(dir, "theme.yaml.tmp")
	if err := os.WriteFile(tmp, []byte("hold: 4s\n"), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("failed to rename over theme file: %v", err)
	}

	select {
	case <-w.Events():
	case <-time.After(500 * time.Millisecond):
		t.Error("expected a change notification after replace, got none")
	}
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	if err := os.WriteFile(path, []byte("hold: 2s\n"), 0644); err != nil {
		t.Fatalf("failed to create theme file: %v", err)
	}

	w, err := NewWatcher(path, testLogger(t))
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	for i := 0; i < 10; i++ {
		if err := os.WriteFile(path, []byte("hold: 2s\n"), 0644); err != nil {
			t.Fatalf("failed to write theme file: %v", err)
		}
	}

	// The channel holds at most one pending notification.
	select {
	case <-w.Events():
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected at least one notification")
	}

	time.Sleep(100 * time.Millisecond)

	pending := 0
	for {
		select {
		case <-w.Events():
			pending++
		default:
			if pending > 1 {
				t.Errorf("expected at most 1 pending notification, got %d", pending)
			}
			return
		}
	}
}

func TestWatcher_Close(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	if err := os.WriteFile(path, []byte("hold: 2s\n"), 0644); err != nil {
		t.Fatalf("failed to create theme file: %v", err)
	}

	w, err := NewWatcher(path, testLogger(t))
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestWatcher_CloseTwice(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	if err := os.WriteFile(path, []byte("hold: 2s\n"), 0644); err != nil {
		t.Fatalf("failed to create theme file: %v", err)
	}

	w, err := NewWatcher(path, testLogger(t))
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("first Close() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() must be a no-op, got: %v", err)
	}
}
