package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/civiclens/internal/model"
	"github.com/ppiankov/civiclens/internal/pipeline"
)

// mockProcessor implements Processor
type mockProcessor struct {
	failSource string
	calls      atomic.Int32
	delays     atomic.Int32
}

func (m *mockProcessor) ProcessSource(ctx context.Context, source string) (*model.Document, error) {
	m.calls.Add(1)
	time.Sleep(5 * time.Millisecond)
	if source == m.failSource {
		return nil, errors.New("fetch: unexpected status: 404 404 Not Found")
	}
	return &model.Document{Subject: "Subject " + source, SourceURL: source}, nil
}

func (m *mockProcessor) CrawlDelay(ctx context.Context, rawURL string) time.Duration {
	m.delays.Add(1)
	return 0
}

func writeSources(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBatchProcessor_ProcessSources(t *testing.T) {
	processor := &mockProcessor{}
	batch := NewBatchProcessor(processor, 2, 0, 0)

	sources := []string{"https://a.example.com/1", "article.txt", "https://b.example.com/2", "-"}
	results := batch.ProcessSources(context.Background(), sources)

	if len(results) != len(sources) {
		t.Fatalf("expected %d results, got %d", len(sources), len(results))
	}
	for i, res := range results {
		if res.Source != sources[i] || res.Index != i {
			t.Errorf("result %d is for %q (index %d), want input order", i, res.Source, res.Index)
		}
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.Source, res.Error)
		}
		if res.Document == nil {
			t.Errorf("expected document for %s", res.Source)
		}
	}
	if processor.delays.Load() != 0 {
		t.Error("crawl delay must not be consulted without a limiter")
	}
}

func TestBatchProcessor_ProcessSources_Error(t *testing.T) {
	processor := &mockProcessor{failSource: "https://gone.example.com"}
	batch := NewBatchProcessor(processor, 2, 0, 0)

	results := batch.ProcessSources(context.Background(), []string{"https://ok.example.com", "https://gone.example.com"})

	if results[0].Error != nil || results[0].Document == nil {
		t.Errorf("expected first source to succeed, got %v", results[0].Error)
	}
	if results[1].Error == nil {
		t.Error("expected error, got nil")
	}
	if results[1].Document != nil {
		t.Error("expected nil document on error")
	}
}

func TestBatchProcessor_RateLimitedURLs(t *testing.T) {
	processor := &mockProcessor{}
	batch := NewBatchProcessor(processor, 4, 1000, 10)

	sources := []string{"https://a.example.com/1", "https://a.example.com/2", "local.html"}
	results := batch.ProcessSources(context.Background(), sources)

	for _, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.Source, res.Error)
		}
	}
	// Only URL sources consult robots crawl delays
	if got := processor.delays.Load(); got != 2 {
		t.Errorf("expected 2 crawl delay lookups, got %d", got)
	}
}

func TestBatchProcessor_Cancelled(t *testing.T) {
	processor := &mockProcessor{}
	batch := NewBatchProcessor(processor, 1, 0, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := batch.ProcessSources(ctx, []string{"a.txt", "b.txt", "c.txt"})
	if len(results) != 3 {
		t.Fatalf("expected a result per source, got %d", len(results))
	}
	for _, res := range results {
		if res == nil {
			t.Fatal("nil result")
		}
		if res.Error == nil && res.Document == nil {
			t.Errorf("result for %s has neither document nor error", res.Source)
		}
	}
}

func TestBatchProcessor_ProcessSources_Empty(t *testing.T) {
	batch := NewBatchProcessor(&mockProcessor{}, 2, 0, 0)

	results := batch.ProcessSources(context.Background(), []string{})
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestBatchProcessor_WithPipeline(t *testing.T) {
	dir := t.TempDir()
	article := filepath.Join(dir, "hearing.txt")
	text := "The House Energy and Commerce Committee reviewed H.R. 1234 today."
	if err := os.WriteFile(article, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	p := pipeline.New(cfg)

	results := NewBatchProcessor(p, 2, 0, 0).ProcessSources(context.Background(), []string{article})
	if results[0].Error != nil {
		t.Fatalf("unexpected error: %v", results[0].Error)
	}
	if n := len(results[0].Document.Spans); n != 2 {
		t.Errorf("expected 2 spans, got %d", n)
	}
}

func TestReadSourcesFromFile(t *testing.T) {
	path := writeSources(t, `https://www.congress.gov/bill/117th-congress/house-bill/3684
# comment
articles/hearing.html

https://news.example.com/vote
https://www.congress.gov/bill/117th-congress/house-bill/3684`)

	sources, err := ReadSourcesFromFile(path)
	if err != nil {
		t.Fatalf("ReadSourcesFromFile failed: %v", err)
	}

	expected := []string{
		"https://www.congress.gov/bill/117th-congress/house-bill/3684",
		"articles/hearing.html",
		"https://news.example.com/vote",
	}
	if strings.Join(sources, "\n") != strings.Join(expected, "\n") {
		t.Errorf("got %v, want %v", sources, expected)
	}
}

func TestReadSourcesFromFile_NonExistent(t *testing.T) {
	if _, err := ReadSourcesFromFile("non_existent_file.txt"); err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestSourceResult_GetError(t *testing.T) {
	r1 := &SourceResult{Source: "https://example.com"}
	if r1.GetError() != nil {
		t.Errorf("expected nil error, got %v", r1.GetError())
	}

	expected := errors.New("fetch failed")
	r2 := &SourceResult{Source: "https://example.com", Error: expected}
	if r2.GetError() != expected {
		t.Errorf("expected %v, got %v", expected, r2.GetError())
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	path := writeSources(t, "a.txt\nb.txt\n# comment\n\nc.txt\n")

	results, err := NewBatchProcessor(&mockProcessor{}, 2, 0, 0).ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}

	if _, err := NewBatchProcessor(&mockProcessor{}, 2, 0, 0).ProcessFile(context.Background(), "no_such_file.txt"); err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}
