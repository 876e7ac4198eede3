package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/civiclens/internal/model"
)

func TestSpans_Valid(t *testing.T) {
	spans := []model.Span{
		{Start: 4, End: 39, MatchedText: "House Energy and Commerce Committee", Category: model.CategoryCongressionalCommittee, RelevanceScore: 9},
		{Start: 49, End: 58, MatchedText: "H.R. 1234", Category: model.CategoryBillIdentifier, RelevanceScore: 8},
	}
	if err := Spans(sample, spans, 7); err != nil {
		t.Errorf("expected valid spans, got %v", err)
	}
	if err := Spans(sample, nil, 7); err != nil {
		t.Errorf("expected empty list to be valid, got %v", err)
	}
}

func TestSpans_Violations(t *testing.T) {
	tests := []struct {
		name  string
		spans []model.Span
		want  string
	}{
		{
			name:  "out of range",
			spans: []model.Span{{Start: 60, End: 90, MatchedText: "x", Category: model.CategoryOther, RelevanceScore: 8}},
			want:  "outside text",
		},
		{
			name:  "text mismatch",
			spans: []model.Span{{Start: 49, End: 58, MatchedText: "H.R. 9999", Category: model.CategoryBillIdentifier, RelevanceScore: 8}},
			want:  "differs from source",
		},
		{
			name:  "below threshold",
			spans: []model.Span{{Start: 49, End: 58, MatchedText: "H.R. 1234", Category: model.CategoryBillIdentifier, RelevanceScore: 5}},
			want:  "below threshold",
		},
		{
			name: "overlap",
			spans: []model.Span{
				{Start: 4, End: 39, MatchedText: "House Energy and Commerce Committee", Category: model.CategoryCongressionalCommittee, RelevanceScore: 9},
				{Start: 21, End: 39, MatchedText: "Commerce Committee", Category: model.CategoryCongressionalCommittee, RelevanceScore: 9},
			},
			want: "overlaps",
		},
		{
			name: "disorder",
			spans: []model.Span{
				{Start: 49, End: 58, MatchedText: "H.R. 1234", Category: model.CategoryBillIdentifier, RelevanceScore: 8},
				{Start: 4, End: 9, MatchedText: "House", Category: model.CategoryPoliticalInstitution, RelevanceScore: 8},
			},
			want: "starts before",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Spans(sample, tt.spans, 7)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestSpans_UnknownCategory(t *testing.T) {
	spans := []model.Span{{Start: 49, End: 58, MatchedText: "H.R. 1234", Category: "celebrity", RelevanceScore: 8}}
	if err := Spans(sample, spans, 0); !errors.Is(err, model.ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
}
