package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/civiclens/internal/model"
	"github.com/ppiankov/civiclens/internal/pipeline"
	"go.uber.org/zap"
)

// Processor turns one source (URL, file path or "-") into a highlighted document
type Processor interface {
	ProcessSource(ctx context.Context, source string) (*model.Document, error)
}

// CrawlDelayer is implemented by processors that know a host's robots.txt crawl delay
type CrawlDelayer interface {
	CrawlDelay(ctx context.Context, rawURL string) time.Duration
}

// SourceJob processes a single source
type SourceJob struct {
	Index     int
	Source    string
	Processor Processor
	Limiter   *Limiter // nil disables throttling
}

// Execute executes the job
func (j *SourceJob) Execute(ctx context.Context) Result {
	start := time.Now()
	result := &SourceResult{Index: j.Index, Source: j.Source}

	if j.Limiter != nil && pipeline.IsURL(j.Source) {
		var delay time.Duration
		if d, ok := j.Processor.(CrawlDelayer); ok {
			delay = d.CrawlDelay(ctx, j.Source)
		}
		if err := j.Limiter.WaitWithDelay(ctx, j.Source, delay); err != nil {
			result.Error = fmt.Errorf("rate limit: %w", err)
			result.Duration = time.Since(start)
			return result
		}
	}

	result.Document, result.Error = j.Processor.ProcessSource(ctx, j.Source)
	result.Duration = time.Since(start)
	return result
}

// SourceResult is the outcome for one source: a document or an error
type SourceResult struct {
	Index    int
	Source   string
	Document *model.Document
	Error    error
	Duration time.Duration
}

// GetError returns the error from the result
func (r *SourceResult) GetError() error {
	return r.Error
}

// BatchProcessor processes many sources concurrently
type BatchProcessor struct {
	processor   Processor
	concurrency int
	limiter     *Limiter
	logger      *zap.Logger
}

// BatchOption configures a BatchProcessor
type BatchOption func(*BatchProcessor)

// WithLogger sets the logger used for per-source diagnostics
func WithLogger(logger *zap.Logger) BatchOption {
	return func(b *BatchProcessor) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBatchProcessor creates a batch processor. URL sources are throttled per host
// at requestsPerSecond; a non-positive rate disables throttling.
func NewBatchProcessor(processor Processor, concurrency int, requestsPerSecond float64, burst int, opts ...BatchOption) *BatchProcessor {
	b := &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
		logger:      zap.NewNop(),
	}
	if requestsPerSecond > 0 {
		b.limiter = NewLimiter(requestsPerSecond, burst)
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ProcessSources processes sources concurrently and returns one result per
// source, in input order
func (b *BatchProcessor) ProcessSources(ctx context.Context, sources []string) []*SourceResult {
	if len(sources) == 0 {
		return []*SourceResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	submitted := 0
	for i, source := range sources {
		job := &SourceJob{
			Index:     i,
			Source:    source,
			Processor: b.processor,
			Limiter:   b.limiter,
		}
		if !pool.Submit(job) {
			break
		}
		submitted++
	}

	results := pool.Wait()

	out := make([]*SourceResult, len(sources))
	for _, r := range results {
		sr := r.(*SourceResult)
		out[sr.Index] = sr
		if sr.Error != nil {
			b.logger.Warn("source failed", zap.String("source", sr.Source), zap.Error(sr.Error))
		} else {
			b.logger.Debug("source processed",
				zap.String("source", sr.Source),
				zap.Int("spans", len(sr.Document.Spans)),
				zap.Duration("duration", sr.Duration))
		}
	}

	// Sources never run because the context ended
	for i, r := range out {
		if r == nil {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			out[i] = &SourceResult{Index: i, Source: sources[i], Error: fmt.Errorf("not processed: %w", err)}
		}
	}

	b.logger.Info("batch complete", zap.Int("sources", len(sources)), zap.Int("submitted", submitted))
	return out
}

// ProcessFile reads sources from a file and processes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*SourceResult, error) {
	sources, err := ReadSourcesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}

	return b.ProcessSources(ctx, sources), nil
}

// ReadSourcesFromFile reads sources from a file, one per line.
// Blank lines and lines starting with # are skipped; duplicates are dropped.
func ReadSourcesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sources []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			sources = append(sources, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return sources, nil
}
