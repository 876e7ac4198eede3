package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/ppiankov/civiclens/internal/model"
	"github.com/ppiankov/civiclens/internal/validate"
	"go.uber.org/zap"
)

// Highlighter asks a provider for spans and validates them strictly
type Highlighter struct {
	provider  Provider
	config    Config
	threshold float64
	logger    *zap.Logger
}

// HighlighterOption configures a Highlighter
type HighlighterOption func(*Highlighter)

// WithLogger sets the logger used for rejected-entry diagnostics
func WithLogger(logger *zap.Logger) HighlighterOption {
	return func(h *Highlighter) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHighlighter creates a highlighter over provider
func NewHighlighter(provider Provider, config Config, threshold float64, opts ...HighlighterOption) *Highlighter {
	h := &Highlighter{
		provider:  provider,
		config:    config,
		threshold: threshold,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Name returns the underlying provider name
func (h *Highlighter) Name() string {
	if h.provider == nil {
		return "none"
	}
	return h.provider.Name()
}

// Highlight returns the validated remote spans for text.
// Any error means the caller should use the local path instead.
func (h *Highlighter) Highlight(ctx context.Context, text string) ([]model.Span, error) {
	if h.provider == nil {
		return nil, ErrProviderDisabled
	}

	timeout := time.Duration(h.config.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := h.provider.Complete(ctx, CompletionRequest{
		System:    SystemPrompt,
		Prompt:    BuildPrompt(text, h.threshold),
		MaxTokens: h.config.MaxTokens,
		JSON:      true,
	})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("%s: %w", h.provider.Name(), ErrEmptyResponse)
	}

	result, err := validate.RemoteSpans(text, resp.Content, h.threshold)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", h.provider.Name(), err)
	}

	for _, r := range result.Rejected {
		h.logger.Debug("remote entry dropped",
			zap.String("provider", h.provider.Name()),
			zap.Int("index", r.Index),
			zap.String("reason", r.Reason))
	}
	h.logger.Debug("remote highlight complete",
		zap.String("provider", h.provider.Name()),
		zap.String("model", resp.Model),
		zap.Int("tokens", resp.TokensUsed),
		zap.Int("accepted", len(result.Spans)),
		zap.Int("rejected", len(result.Rejected)),
		zap.Int("relocated", result.Relocated))

	return result.Spans, nil
}
