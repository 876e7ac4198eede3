package score

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ppiankov/civiclens/internal/model"
	"go.uber.org/zap"
)

const (
	MinScore = 1.0
	MaxScore = 10.0
)

// Scorer attaches relevance scores to candidate spans.
// Configuration is read-only after construction, so one Scorer may be shared across goroutines.
type Scorer struct {
	cfg      model.HighlightConfig
	keywords map[string]bool
	logger   *zap.Logger
}

// Option configures a Scorer
type Option func(*Scorer)

// WithLogger sets the logger used for filter diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scorer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScorer creates a new scorer
func NewScorer(cfg model.HighlightConfig, opts ...Option) *Scorer {
	keywords := make(map[string]bool, len(cfg.Keywords))
	for _, k := range cfg.Keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			keywords[k] = true
		}
	}
	if cfg.CategoryWeights == nil {
		cfg.CategoryWeights = model.DefaultCategoryWeights()
	}

	s := &Scorer{
		cfg:      cfg,
		keywords: keywords,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Breakdown explains how a score was reached
type Breakdown struct {
	Base        float64
	Boost       float64
	Keywords    []string // Distinct keywords found in the context window
	Penalty     float64
	Occurrences int // Raw occurrences of the matched text in the document
	Score       float64
}

// Formula is the scoring rule in words, as reported in diagnostics
const Formula = "clamp(base + min(keywords * boost, max_boost) - min(max(occurrences - threshold, 0) * penalty, max_penalty), 1, 10)"

// String renders the breakdown for Span.Explanation
func (b Breakdown) String() string {
	context := fmt.Sprintf("context +%.1f", b.Boost)
	if len(b.Keywords) > 0 {
		context += " (" + strings.Join(b.Keywords, ", ") + ")"
	}
	return fmt.Sprintf("base %.1f, %s, frequency -%.1f (%d occurrences) = %.1f",
		b.Base, context, b.Penalty, b.Occurrences, b.Score)
}

// Score returns the clamped relevance score of span within fullText
func (s *Scorer) Score(span model.Span, fullText string, baseWeight float64) float64 {
	return s.Explain(span, fullText, baseWeight).Score
}

// Explain computes the score with its contributing signals
func (s *Scorer) Explain(span model.Span, fullText string, baseWeight float64) Breakdown {
	b := Breakdown{Base: baseWeight}

	b.Keywords = s.contextKeywords(span, fullText)
	b.Boost = float64(len(b.Keywords)) * s.cfg.KeywordBoost
	if b.Boost > s.cfg.MaxBoost {
		b.Boost = s.cfg.MaxBoost
	}

	if span.MatchedText != "" {
		b.Occurrences = strings.Count(fullText, span.MatchedText)
	}
	if excess := b.Occurrences - s.cfg.FrequencyThreshold; excess > 0 {
		b.Penalty = float64(excess) * s.cfg.FrequencyPenalty
		if b.Penalty > s.cfg.MaxPenalty {
			b.Penalty = s.cfg.MaxPenalty
		}
	}

	b.Score = clamp(b.Base + b.Boost - b.Penalty)
	return b
}

// BaseWeight returns the configured weight for a category, falling back to "other"
func (s *Scorer) BaseWeight(c model.Category) float64 {
	if w, ok := s.cfg.CategoryWeights[c]; ok {
		return w
	}
	if w, ok := s.cfg.CategoryWeights[model.CategoryOther]; ok {
		return w
	}
	return MinScore
}

// Threshold returns the minimum score that survives Apply
func (s *Scorer) Threshold() float64 {
	return s.cfg.Threshold
}

// Apply scores every span and drops those below the threshold.
// Surviving spans carry RelevanceScore and an Explanation; input order is kept.
func (s *Scorer) Apply(spans []model.Span, fullText string) []model.Span {
	kept := make([]model.Span, 0, len(spans))
	for _, span := range spans {
		b := s.Explain(span, fullText, s.BaseWeight(span.Category))
		if b.Score < s.cfg.Threshold {
			s.logger.Debug("span below threshold",
				zap.String("text", span.MatchedText),
				zap.String("category", string(span.Category)),
				zap.Float64("score", b.Score),
				zap.Float64("threshold", s.cfg.Threshold))
			continue
		}
		span.RelevanceScore = b.Score
		span.Explanation = b.String()
		kept = append(kept, span)
	}
	return kept
}

// contextKeywords returns the distinct keywords within the window on either side of span,
// excluding the span itself
func (s *Scorer) contextKeywords(span model.Span, text string) []string {
	if len(s.keywords) == 0 || s.cfg.WindowSize <= 0 {
		return nil
	}

	start, end := span.Start, span.End
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if start > end {
		return nil
	}

	left := start - s.cfg.WindowSize
	if left < 0 {
		left = 0
	}
	right := end + s.cfg.WindowSize
	if right > len(text) {
		right = len(text)
	}

	// Window edges may cut a rune; widen to the enclosing boundary
	for left > 0 && !utf8.RuneStart(text[left]) {
		left--
	}
	for right < len(text) && !utf8.RuneStart(text[right]) {
		right++
	}

	found := make(map[string]bool)
	for _, window := range []string{text[left:start], text[end:right]} {
		for _, word := range strings.FieldsFunc(strings.ToLower(window), notWordRune) {
			if s.keywords[word] {
				found[word] = true
			}
		}
	}

	keywords := make([]string, 0, len(found))
	for k := range found {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)
	return keywords
}

func notWordRune(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func clamp(v float64) float64 {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}
