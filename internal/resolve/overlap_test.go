package resolve

import (
	"strings"
	"testing"

	"github.com/ppiankov/civiclens/internal/model"
)

func span(text, phrase string, category model.Category, score float64) model.Span {
	start := strings.Index(text, phrase)
	if start < 0 {
		panic("phrase not in text: " + phrase)
	}
	return model.Span{
		Start:          start,
		End:            start + len(phrase),
		MatchedText:    phrase,
		CanonicalTerm:  phrase,
		Category:       category,
		RelevanceScore: score,
		Source:         model.SourcePattern,
	}
}

func assertNonOverlapping(t *testing.T, spans []model.Span) {
	t.Helper()
	for i := 1; i < len(spans); i++ {
		if spans[i-1].Start > spans[i].Start {
			t.Errorf("spans out of order: %v before %v", spans[i-1], spans[i])
		}
		if spans[i-1].Overlaps(spans[i]) {
			t.Errorf("spans overlap: %v and %v", spans[i-1], spans[i])
		}
	}
}

func TestResolve_LongestWins(t *testing.T) {
	text := "The House Energy and Commerce Committee held a hearing."
	long := span(text, "House Energy and Commerce Committee", model.CategoryCongressionalCommittee, 9)
	short := span(text, "Commerce Committee", model.CategoryCongressionalCommittee, 9)
	house := span(text, "House", model.CategoryPoliticalInstitution, 8)

	orders := [][]model.Span{
		{long, short, house},
		{short, house, long},
		{house, short, long},
	}
	for _, in := range orders {
		got := Resolve(in)
		if len(got) != 1 {
			t.Fatalf("expected one span, got %v", got)
		}
		if got[0].MatchedText != "House Energy and Commerce Committee" {
			t.Errorf("expected the full committee name, got %v", got[0])
		}
	}
}

func TestResolve_ChainedOverlapReplacedByLongerSpan(t *testing.T) {
	text := "abcdefghijklmnop"
	a := model.Span{Start: 0, End: 4, MatchedText: "abcd", RelevanceScore: 9}
	b := model.Span{Start: 5, End: 9, MatchedText: "fghi", RelevanceScore: 9}
	wide := model.Span{Start: 2, End: 12, MatchedText: text[2:12], RelevanceScore: 7}

	got := Resolve([]model.Span{a, b, wide})
	if len(got) != 1 || got[0].Start != 2 || got[0].End != 12 {
		t.Errorf("expected the wide span to replace both, got %v", got)
	}
}

func TestResolve_ShorterCandidateDiscarded(t *testing.T) {
	a := model.Span{Start: 0, End: 10, MatchedText: "0123456789", RelevanceScore: 7}
	b := model.Span{Start: 8, End: 12, MatchedText: "89ab", RelevanceScore: 10}

	got := Resolve([]model.Span{b, a})
	if len(got) != 1 || got[0].Start != 0 {
		t.Errorf("expected the longer span to survive, got %v", got)
	}
}

func TestResolve_EqualLengthTieBreak(t *testing.T) {
	tests := []struct {
		name      string
		first     model.Span
		second    model.Span
		wantStart int
	}{
		{
			name:      "higher score wins",
			first:     model.Span{Start: 0, End: 6, RelevanceScore: 7},
			second:    model.Span{Start: 3, End: 9, RelevanceScore: 9},
			wantStart: 3,
		},
		{
			name:      "equal score keeps earlier span",
			first:     model.Span{Start: 0, End: 6, RelevanceScore: 8},
			second:    model.Span{Start: 3, End: 9, RelevanceScore: 8},
			wantStart: 0,
		},
		{
			name:      "same range keeps higher score",
			first:     model.Span{Start: 0, End: 6, RelevanceScore: 7, Category: model.CategoryMovement},
			second:    model.Span{Start: 0, End: 6, RelevanceScore: 9, Category: model.CategoryGovernmentAgency},
			wantStart: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve([]model.Span{tt.first, tt.second})
			if len(got) != 1 {
				t.Fatalf("expected one span, got %v", got)
			}
			if got[0].Start != tt.wantStart {
				t.Errorf("expected span at %d, got %v", tt.wantStart, got[0])
			}
		})
	}

	got := Resolve([]model.Span{
		{Start: 0, End: 6, RelevanceScore: 7, Category: model.CategoryMovement},
		{Start: 0, End: 6, RelevanceScore: 9, Category: model.CategoryGovernmentAgency},
	})
	if got[0].Category != model.CategoryGovernmentAgency {
		t.Errorf("expected the higher scored category, got %v", got[0])
	}
}

func TestResolve_DisjointSpansKept(t *testing.T) {
	text := "The EPA and the Department of Energy briefed the Senate Finance Committee."
	in := []model.Span{
		span(text, "Senate Finance Committee", model.CategoryCongressionalCommittee, 9),
		span(text, "EPA", model.CategoryGovernmentAgency, 8),
		span(text, "Department of Energy", model.CategoryGovernmentAgency, 8),
		span(text, "Senate", model.CategoryPoliticalInstitution, 7),
		span(text, "Energy", model.CategoryPolicyPhrase, 7),
	}

	got := Resolve(in)
	assertNonOverlapping(t, got)
	want := []string{"EPA", "Department of Energy", "Senate Finance Committee"}
	if len(got) != len(want) {
		t.Fatalf("expected %d spans, got %v", len(want), got)
	}
	for i, w := range want {
		if got[i].MatchedText != w {
			t.Errorf("span %d = %q, want %q", i, got[i].MatchedText, w)
		}
	}
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	in := []model.Span{
		{Start: 5, End: 8, RelevanceScore: 8},
		{Start: 0, End: 3, RelevanceScore: 8},
	}
	Resolve(in)
	if in[0].Start != 5 || in[1].Start != 0 {
		t.Errorf("input reordered: %v", in)
	}
}

func TestResolve_Empty(t *testing.T) {
	if got := Resolve(nil); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}
