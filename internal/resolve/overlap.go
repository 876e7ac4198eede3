package resolve

import (
	"sort"

	"github.com/ppiankov/civiclens/internal/model"
)

// Resolve returns a non-overlapping subset of spans sorted by start.
//
// Candidates are walked by start ascending, longest first. A candidate that
// overlaps accepted spans replaces them only if it is strictly longer than every
// one of them, or equally long with a strictly higher score; otherwise it is
// discarded. This keeps "House Energy and Commerce Committee" over an embedded
// "Commerce Committee" rather than maximizing the number of spans.
func Resolve(spans []model.Span) []model.Span {
	if len(spans) == 0 {
		return nil
	}

	sorted := make([]model.Span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.Len() != b.Len() {
			return a.Len() > b.Len()
		}
		return a.RelevanceScore > b.RelevanceScore
	})

	// accepted stays sorted by start and non-overlapping, hence also sorted by end
	accepted := make([]model.Span, 0, len(sorted))
	for _, cand := range sorted {
		first := len(accepted)
		for first > 0 && accepted[first-1].End > cand.Start {
			first--
		}

		wins := true
		for _, acc := range accepted[first:] {
			if !beats(cand, acc) {
				wins = false
				break
			}
		}
		if !wins {
			continue
		}

		accepted = append(accepted[:first], cand)
	}

	return accepted
}

// beats reports whether cand should replace an overlapping accepted span
func beats(cand, acc model.Span) bool {
	if cand.Len() != acc.Len() {
		return cand.Len() > acc.Len()
	}
	return cand.RelevanceScore > acc.RelevanceScore
}
