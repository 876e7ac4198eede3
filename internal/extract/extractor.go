package extract

import (
	"sort"

	"github.com/ppiankov/civiclens/internal/model"
	"github.com/ppiankov/civiclens/internal/patterns"
)

// Extractor applies a pattern library to text and returns raw candidate spans
type Extractor struct {
	library *patterns.Library
}

// NewExtractor creates an extractor over lib. A nil lib uses the built-in library.
func NewExtractor(lib *patterns.Library) *Extractor {
	if lib == nil {
		lib = patterns.Default()
	}
	return &Extractor{library: lib}
}

// Extract is shorthand for NewExtractor(lib).Extract(text)
func Extract(text string, lib *patterns.Library) []model.Span {
	return NewExtractor(lib).Extract(text)
}

// Extract runs every rule over the full text.
// Candidates may overlap; they are unscored and sorted by start, longest first.
func (e *Extractor) Extract(text string) []model.Span {
	if text == "" {
		return nil
	}

	var spans []model.Span
	seen := make(map[spanKey]bool)

	for _, rule := range e.library.Rules() {
		for _, m := range rule.Matcher.FindAll(text) {
			if rule.Abbreviation && insideFullName(spans, rule.Category, m) {
				continue
			}

			key := spanKey{m.Start, m.End, rule.Category}
			if seen[key] {
				continue
			}
			seen[key] = true

			spans = append(spans, model.Span{
				Start:         m.Start,
				End:           m.End,
				MatchedText:   m.Text,
				CanonicalTerm: m.Canonical,
				Category:      rule.Category,
				Source:        model.SourcePattern,
				Rule:          rule.Name,
			})
		}
	}

	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].Len() > spans[j].Len()
	})
	return spans
}

type spanKey struct {
	start, end int
	category   model.Category
}

// insideFullName reports whether m falls within a span of the same category
// found by an earlier, non-abbreviation rule
func insideFullName(spans []model.Span, category model.Category, m patterns.Match) bool {
	for _, s := range spans {
		if s.Category == category && s.Start <= m.Start && m.End <= s.End {
			return true
		}
	}
	return false
}
