package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu      sync.Mutex
	changed []string
	removed []string
}

func (r *recorder) onChange(path string) {
	r.mu.Lock()
	r.changed = append(r.changed, path)
	r.mu.Unlock()
}

func (r *recorder) onRemove(path string) {
	r.mu.Lock()
	r.removed = append(r.removed, path)
	r.mu.Unlock()
}

func (r *recorder) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.changed), len(r.removed)
}

func TestNewWatcher_normalizesFiles(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher([]string{filepath.Join(dir, "a", "..", "records.json"), "", filepath.Join(dir, "records.json")}, nil, nil)
	files := w.Files()
	if len(files) != 1 || files[0] != filepath.Join(dir, "records.json") {
		t.Errorf("Files() = %v, want [%s]", files, filepath.Join(dir, "records.json"))
	}
}

func TestWatcher_StartStop(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher([]string{filepath.Join(dir, "records.json")}, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	// second Start is a no-op
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop()
}

func TestWatcher_Start_missingDirectory(t *testing.T) {
	w := NewWatcher([]string{filepath.Join(t.TempDir(), "nope", "records.json")}, nil, nil)
	if err := w.Start(context.Background()); err == nil {
		w.Stop()
		t.Fatal("expected error for missing directory")
	}
}

func TestWatcher_changeIsDebounced(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.json")
	if err := writeFile(path, "[]"); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	w := NewWatcher([]string{path}, rec.onChange, rec.onRemove, WithDebounce(100*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	for i := 0; i < 3; i++ {
		if err := writeFile(path, `[{"title":"a","url":"b"}]`); err != nil {
			t.Fatal(err)
		}
	}
	time.Sleep(500 * time.Millisecond)

	changed, removed := rec.counts()
	if changed != 1 {
		t.Errorf("expected one change callback, got %d", changed)
	}
	if removed != 0 {
		t.Errorf("expected no remove callback, got %d", removed)
	}
}

func TestWatcher_ignoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	w := NewWatcher([]string{filepath.Join(dir, "records.json")}, rec.onChange, rec.onRemove, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := writeFile(filepath.Join(dir, "other.json"), "[]"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)

	if changed, removed := rec.counts(); changed != 0 || removed != 0 {
		t.Errorf("expected no callbacks, got %d changes and %d removals", changed, removed)
	}
}

func TestWatcher_remove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.csv")
	if err := writeFile(path, "title,url\n"); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	w := NewWatcher([]string{path}, rec.onChange, rec.onRemove, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)

	changed, removed := rec.counts()
	if removed != 1 || changed != 0 {
		t.Errorf("expected one removal and no change, got %d removals and %d changes", removed, changed)
	}
}

func TestWatcher_renameOverIsChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.json")
	if err := writeFile(path, "[]"); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	w := NewWatcher([]string{path}, rec.onChange, rec.onRemove, WithDebounce(100*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	tmp := filepath.Join(dir, ".records.json.tmp")
	if err := writeFile(tmp, `[{"title":"a","url":"b"}]`); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}
	time.Sleep(400 * time.Millisecond)

	changed, removed := rec.counts()
	if changed != 1 || removed != 0 {
		t.Errorf("expected one change and no removal, got %d changes and %d removals", changed, removed)
	}
}

func TestWatcher_contextCancelStops(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher([]string{filepath.Join(dir, "records.json")}, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()
	select {
	case <-w.done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after context cancel")
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0600)
}
