// # internal/core/watcher/watcher_test.go
package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewWatcher_RejectsNilCallback(t *testing.T) {
	w, err := NewWatcher(100*time.Millisecond, nil, nil, nil)
	if err == nil {
		t.Fatal("expected error for nil callback")
	}
	if !errors.Is(err, os.ErrInvalid) {
		t.Fatalf("expected os.ErrInvalid, got %v", err)
	}
	if w != nil {
		t.Fatal("expected nil watcher when callback is invalid")
	}
}

func TestNewWatcher_RejectsBadGlob(t *testing.T) {
	if _, err := NewWatcher(time.Millisecond, nil, []string{"[unterminated"}, func([]string) {}); err == nil {
		t.Fatal("expected error for invalid exclude pattern")
	}
}

func expectChange(t *testing.T, ch <-chan []string, want string) {
	t.Helper()
	select {
	case paths := <-ch:
		for _, p := range paths {
			if p == want {
				return
			}
		}
		t.Errorf("expected %s in changed files %v", want, paths)
	case <-time.After(2 * time.Second):
		t.Errorf("timed out waiting for change to %s", want)
	}
}

func expectQuiet(t *testing.T, ch <-chan []string) {
	t.Helper()
	select {
	case paths := <-ch:
		t.Errorf("unexpected change %v", paths)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcher(t *testing.T) {
	inputs := t.TempDir()
	corpus := t.TempDir()
	contractFile := filepath.Join(inputs, "contract.yaml")
	if err := os.WriteFile(contractFile, []byte("types: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan []string, 4)
	w, err := NewWatcher(100*time.Millisecond, []string{".html"}, []string{"*.tmp.html"}, func(paths []string) {
		changed <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch([]string{contractFile}, []string{corpus}); err != nil {
		t.Fatal(err)
	}

	// The contract file itself counts.
	if err := os.WriteFile(contractFile, []byte("types: [] # edited\n"), 0644); err != nil {
		t.Fatal(err)
	}
	expectChange(t, changed, contractFile)

	// Siblings of the contract file do not.
	if err := os.WriteFile(filepath.Join(inputs, "notes.html"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	expectQuiet(t, changed)

	page := filepath.Join(corpus, "UIKeyboard.html")
	if err := os.WriteFile(page, []byte("<html></html>"), 0644); err != nil {
		t.Fatal(err)
	}
	expectChange(t, changed, page)

	// Filtered by extension and exclude pattern.
	if err := os.WriteFile(filepath.Join(corpus, "index.css"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(corpus, "draft.tmp.html"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	expectQuiet(t, changed)

	// New directories in a tree are watched too.
	sub := filepath.Join(corpus, "UIKit")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	expectChange(t, changed, sub)
	nested := filepath.Join(sub, "UIView.html")
	if err := os.WriteFile(nested, []byte("<html></html>"), 0644); err != nil {
		t.Fatal(err)
	}
	expectChange(t, changed, nested)
}
