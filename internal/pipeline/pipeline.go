package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/civiclens/internal/cache"
	"github.com/ppiankov/civiclens/internal/extract"
	"github.com/ppiankov/civiclens/internal/llm"
	"github.com/ppiankov/civiclens/internal/model"
	"github.com/ppiankov/civiclens/internal/normalize"
	"github.com/ppiankov/civiclens/internal/patterns"
	"github.com/ppiankov/civiclens/internal/resolve"
	"github.com/ppiankov/civiclens/internal/score"
	"github.com/ppiankov/civiclens/internal/validate"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Remote produces spans for text from an external collaborator.
// Returned spans must already be validated against text.
type Remote interface {
	Name() string
	Highlight(ctx context.Context, text string) ([]model.Span, error)
}

// Pipeline orchestrates highlighting: normalize, extract, score, resolve
type Pipeline struct {
	config    *model.Config
	library   *patterns.Library
	extractor *extract.Extractor
	scorer    *score.Scorer
	remote    Remote // nil when the remote path is disabled
	store     *cache.SpanStore
	fetcher   *Fetcher
	renderer  *Renderer
	logger    *zap.Logger
	stdin     io.Reader
	tuning    string // Digest of scorer settings and rules for cache keys

	remoteSet bool
	cacheSet  bool
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithLogger sets the pipeline logger
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithRemote replaces the configured remote collaborator; nil disables the remote path
func WithRemote(r Remote) Option {
	return func(p *Pipeline) {
		p.remote = r
		p.remoteSet = true
	}
}

// WithCache replaces the configured result cache; nil disables caching
func WithCache(c cache.Cache) Option {
	return func(p *Pipeline) {
		p.store = cache.NewSpanStore(c, 0)
		p.cacheSet = true
	}
}

// WithLibrary replaces the default pattern library
func WithLibrary(lib *patterns.Library) Option {
	return func(p *Pipeline) {
		if lib != nil {
			p.library = lib
		}
	}
}

// WithFetcher replaces the article fetcher
func WithFetcher(f *Fetcher) Option {
	return func(p *Pipeline) {
		if f != nil {
			p.fetcher = f
		}
	}
}

// WithStdin sets the reader used for the "-" source
func WithStdin(r io.Reader) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.stdin = r
		}
	}
}

// New creates a pipeline for cfg. A remote provider that cannot be built is
// logged and the pipeline runs local-only.
func New(cfg *model.Config, opts ...Option) *Pipeline {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	p := &Pipeline{
		config: cfg,
		logger: zap.NewNop(),
		stdin:  os.Stdin,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.library == nil {
		p.library = patterns.Default()
	}
	p.extractor = extract.NewExtractor(p.library)
	p.scorer = score.NewScorer(cfg.Highlight, score.WithLogger(p.logger))
	p.tuning = cache.TuningDigest(cfg.Highlight, ruleSignature(p.library))

	if !p.remoteSet && cfg.LLM.Enabled {
		p.remote = newRemote(cfg, p.logger)
	}
	if !p.cacheSet {
		p.store = cache.NewSpanStore(cache.New(cfg.Cache), 0)
	}
	if p.fetcher == nil {
		p.fetcher = NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes,
			cfg.HTTP.RespectRobots, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy)
	}
	p.renderer = NewRenderer(cfg.Output.IncludeFooter)

	return p
}

func newRemote(cfg *model.Config, logger *zap.Logger) Remote {
	llmConfig := llm.ConfigFromModel(cfg.LLM, cfg.HTTP)
	provider, err := llm.NewProvider(llmConfig)
	if err != nil {
		logger.Warn("remote provider unavailable, using local patterns only",
			zap.String("provider", cfg.LLM.Provider), zap.Error(err))
		return nil
	}
	if provider == nil {
		return nil
	}
	return llm.NewHighlighter(provider, llmConfig, cfg.Highlight.Threshold, llm.WithLogger(logger))
}

// ruleSignature lists the identity of every rule in lib, in order
func ruleSignature(lib *patterns.Library) []string {
	rules := lib.Rules()
	sig := make([]string, 0, len(rules))
	for _, r := range rules {
		sig = append(sig, fmt.Sprintf("%s/%s/%d/%t", r.Name, r.Category, r.BasePriority, r.Abbreviation))
	}
	return sig
}

// Threshold returns the relevance cutoff in effect
func (p *Pipeline) Threshold() float64 {
	return p.scorer.Threshold()
}

// Mode names the span source used for cache keys and diagnostics
func (p *Pipeline) Mode() string {
	if p.remote == nil {
		return string(model.ResultLocal)
	}
	return string(model.ResultRemote) + ":" + p.remote.Name()
}

// Highlight returns the final spans for already-normalized text.
// It never fails: remote errors fall back to the local path and an empty
// list means no confident entities were found.
func (p *Pipeline) Highlight(ctx context.Context, text string) []model.Span {
	spans, _, _ := p.highlight(ctx, text)
	return spans
}

func (p *Pipeline) highlight(ctx context.Context, text string) ([]model.Span, model.ResultSource, []string) {
	if strings.TrimSpace(text) == "" {
		return []model.Span{}, model.ResultLocal, nil
	}

	key := cache.TextKey(text, p.Threshold(), p.Mode(), p.tuning)
	if spans, ok := p.store.Get(key); ok {
		p.logger.Debug("cache hit", zap.String("key", key), zap.Int("spans", len(spans)))
		return spans, model.ResultCache, nil
	}

	var (
		spans    []model.Span
		source   = model.ResultLocal
		warnings []string
		fellBack bool
	)

	if p.remote != nil {
		remoteSpans, err := p.remote.Highlight(ctx, text)
		if err != nil {
			p.logger.Warn("remote highlighting failed, falling back to local patterns",
				zap.String("provider", p.remote.Name()), zap.Error(err))
			warnings = append(warnings, fmt.Sprintf("remote provider %s failed (%v); local patterns used", p.remote.Name(), err))
			fellBack = true
		} else {
			spans = remoteSpans
			source = model.ResultRemote
		}
	}
	if source == model.ResultLocal {
		spans = p.scorer.Apply(p.extractor.Extract(text), text)
	}

	spans = p.resolveSpans(text, spans)

	// A fallback result is stored under the remote key only once the remote answers
	if !fellBack {
		if err := p.store.Put(key, spans); err != nil {
			p.logger.Warn("cache store failed", zap.Error(err))
		}
	}

	return spans, source, warnings
}

// resolveSpans binds generic references and removes overlaps
func (p *Pipeline) resolveSpans(text string, spans []model.Span) []model.Span {
	refs := resolve.ResolveReferences(text, spans)
	if len(refs) > 0 {
		p.logger.Debug("references resolved", zap.Int("count", len(refs)))
	}

	all := make([]model.Span, 0, len(spans)+len(refs))
	all = append(all, spans...)
	all = append(all, refs...)

	final := resolve.Resolve(all)
	if final == nil {
		final = []model.Span{}
	}

	if err := validate.Spans(text, final, p.Threshold()); err != nil {
		p.logger.Error("final spans violate output invariants", zap.Error(err))
	}
	return final
}

// Process normalizes raw text or HTML and highlights the result
func (p *Pipeline) Process(ctx context.Context, raw string) *model.Document {
	text := normalize.Normalize(raw)
	spans, source, warnings := p.highlight(ctx, text)

	return &model.Document{
		ProcessedAt: time.Now().UTC(),
		Text:        text,
		Spans:       spans,
		Source:      source,
		Warnings:    warnings,
	}
}

// ProcessSource loads source and processes it. Source is an http(s) URL,
// a file path, or "-" for standard input.
func (p *Pipeline) ProcessSource(ctx context.Context, source string) (*model.Document, error) {
	switch {
	case source == "-":
		return p.processReader(ctx, p.stdin, "stdin")
	case IsURL(source):
		return p.processURL(ctx, source)
	default:
		return p.processFile(ctx, source)
	}
}

func (p *Pipeline) processReader(ctx context.Context, r io.Reader, subject string) (*model.Document, error) {
	limit := p.config.HTTP.MaxBodyBytes
	if limit <= 0 {
		limit = defaultMaxBodyBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, limit))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", subject, err)
	}
	doc := p.Process(ctx, string(data))
	doc.Subject = subject
	return doc, nil
}

func (p *Pipeline) processURL(ctx context.Context, rawURL string) (*model.Document, error) {
	fetched, err := p.fetcher.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	var warnings []string
	if fetched.Truncated {
		warnings = append(warnings, fmt.Sprintf("body truncated at %d bytes", p.fetcher.MaxBytes()))
	}

	body, title, err := extract.ArticleHTML(fetched.HTML, fetched.FinalURL, fetched.ContentType)
	if err != nil {
		p.logger.Warn("article selection failed, using whole page",
			zap.String("url", fetched.FinalURL), zap.Error(err))
		warnings = append(warnings, "article body not found; whole page used")
		body = fetched.HTML
	}

	doc := p.Process(ctx, body)
	doc.SourceURL = fetched.FinalURL
	doc.Subject = fetched.Subject
	if title != "" {
		doc.Subject = title
	}
	doc.Warnings = append(warnings, doc.Warnings...)
	return doc, nil
}

func (p *Pipeline) processFile(ctx context.Context, path string) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	subject := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	raw := string(data)

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".html" || ext == ".htm" {
		body, title, err := extract.ArticleHTML(raw, "", "text/html")
		if err != nil {
			p.logger.Warn("article selection failed, using whole file",
				zap.String("path", path), zap.Error(err))
		} else {
			raw = body
			if title != "" {
				subject = title
			}
		}
	}

	doc := p.Process(ctx, raw)
	doc.Subject = subject
	return doc, nil
}

// CrawlDelay returns the robots.txt crawl delay for rawURL's host
func (p *Pipeline) CrawlDelay(ctx context.Context, rawURL string) time.Duration {
	return p.fetcher.CrawlDelay(ctx, rawURL)
}

// HighlightAll highlights texts in parallel, bounded by the configured worker count.
// Results are positional. The only error is context cancellation.
func (p *Pipeline) HighlightAll(ctx context.Context, texts []string) ([][]model.Span, error) {
	results := make([][]model.Span, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	workers := p.config.Concurrency.Workers
	if workers <= 0 {
		workers = 1
	}
	g.SetLimit(workers)

	for i, text := range texts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.Highlight(gctx, text)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RenderReport renders the document to the requested outputs and prints a summary to w
func (p *Pipeline) RenderReport(doc *model.Document, jsonPath, mdPath string, verbose bool, w io.Writer) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(doc, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			_, _ = fmt.Fprintf(w, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(doc, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			_, _ = fmt.Fprintf(w, "✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(w, doc)
	return nil
}

// Renderer returns the pipeline's renderer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// IsURL reports whether source should be fetched over HTTP
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
