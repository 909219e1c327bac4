package validate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/wetshaving/sotdarc/internal/parser"
)

// goodDocument is a conforming report document for batch tests.
const goodDocument = `# Hardware Report - August 2025

* **Total Shaves:** 500
* **Unique Shavers:** 40

## Observations

The GEM surge continued.

## Razors

| Rank | Razor | Shaves | Unique Users |
|------|-------|--------|--------------|
| 1 | GEM Micromatic Open Comb | 299 | 15 |
| 2 | RazoRock Game Changer | 120 | 22 |
`

// writeDocs writes n copies of doc into dir, returning the paths.
func writeDocs(t *testing.T, dir, doc string, n int) []string {
	t.Helper()
	paths := make([]string, n)
	for i := range paths {
		paths[i] = filepath.Join(dir, "report"+strings.Repeat("x", i)+".md")
		if err := os.WriteFile(paths[i], []byte(doc), 0600); err != nil {
			t.Fatal(err)
		}
	}
	return paths
}

// TestBatchProcessFiles tests concurrent validation of several files.
func TestBatchProcessFiles(t *testing.T) {
	t.Parallel()

	paths := writeDocs(t, t.TempDir(), goodDocument, 5)

	b := NewBatch(parser.New(), NewRunner(), WithConcurrency(3))

	var mu sync.Mutex
	var callbacks int
	results, err := b.ProcessFiles(context.Background(), paths, func(FileResult, int) {
		mu.Lock()
		callbacks++
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != len(paths) {
		t.Fatalf("got %d results, want %d", len(results), len(paths))
	}
	if callbacks != len(paths) {
		t.Errorf("callback ran %d times, want %d", callbacks, len(paths))
	}
	for i, res := range results {
		if res.Path != paths[i] {
			t.Errorf("results out of order: got %q at %d, want %q", res.Path, i, paths[i])
		}
		if res.Report == nil {
			t.Errorf("result %d missing parsed report", i)
		}
		if res.Validation == nil || res.Validation.HasErrors() {
			t.Errorf("result %d unexpectedly dirty: %+v", i, res.Validation)
		}
	}
}

// TestBatchParseFailureIsAResult tests that a broken file does not abort
// the batch.
func TestBatchParseFailureIsAResult(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeDocs(t, dir, goodDocument, 1)
	bad := filepath.Join(dir, "broken.md")
	if err := os.WriteFile(bad, []byte("not a report at all\n"), 0600); err != nil {
		t.Fatal(err)
	}

	b := NewBatch(parser.New(), NewRunner())
	results, err := b.ProcessFiles(context.Background(), []string{good[0], bad}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if results[0].Validation.HasErrors() {
		t.Error("good file should validate cleanly")
	}
	if results[1].Report != nil {
		t.Error("broken file should have no parsed report")
	}
	if results[1].Validation.Error == "" {
		t.Error("broken file should carry the parse error")
	}
}

// TestBatchCancelledContext tests that cancellation stops the batch.
func TestBatchCancelledContext(t *testing.T) {
	t.Parallel()

	paths := writeDocs(t, t.TempDir(), goodDocument, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := NewBatch(parser.New(), NewRunner())
	_, err := b.ProcessFiles(ctx, paths, nil)
	if err == nil {
		t.Error("expected cancellation error")
	}
}
