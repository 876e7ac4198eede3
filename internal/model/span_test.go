package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		want    Category
		wantErr bool
	}{
		{"bill_identifier", CategoryBillIdentifier, false},
		{"Government_Agency", CategoryGovernmentAgency, false},
		{"  movement ", CategoryMovement, false},
		{"other", CategoryOther, false},
		{"person", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategory(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownCategory) {
					t.Fatalf("expected ErrUnknownCategory, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseCategory(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestCategory_Valid(t *testing.T) {
	for _, c := range Categories() {
		if !c.Valid() {
			t.Errorf("expected %q to be valid", c)
		}
	}
	if Category("Movement").Valid() {
		t.Error("expected mixed-case category to be invalid")
	}
	if Category("person").Valid() {
		t.Error("expected unknown category to be invalid")
	}
}

func TestSpan_Overlaps(t *testing.T) {
	tests := []struct {
		a, b Span
		want bool
	}{
		{Span{Start: 0, End: 5}, Span{Start: 5, End: 9}, false},
		{Span{Start: 0, End: 5}, Span{Start: 4, End: 9}, true},
		{Span{Start: 2, End: 4}, Span{Start: 0, End: 10}, true},
		{Span{Start: 10, End: 12}, Span{Start: 0, End: 10}, false},
	}

	for _, tt := range tests {
		if got := tt.a.Overlaps(tt.b); got != tt.want {
			t.Errorf("%v overlaps %v = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if got := tt.b.Overlaps(tt.a); got != tt.want {
			t.Errorf("overlap not symmetric for %v and %v", tt.a, tt.b)
		}
	}
}

func TestSpan_Valid(t *testing.T) {
	if !(Span{Start: 0, End: 3}).Valid(3) {
		t.Error("expected span ending at text length to be valid")
	}
	if (Span{Start: 3, End: 3}).Valid(10) {
		t.Error("expected empty span to be invalid")
	}
	if (Span{Start: -1, End: 2}).Valid(10) {
		t.Error("expected negative start to be invalid")
	}
	if (Span{Start: 5, End: 11}).Valid(10) {
		t.Error("expected end past text to be invalid")
	}
}

func TestSpan_JSONShape(t *testing.T) {
	span := Span{
		Start:          4,
		End:            13,
		MatchedText:    "this bill",
		CanonicalTerm:  "Infrastructure Investment and Jobs Act",
		Category:       CategoryFormalLegislation,
		RelevanceScore: 8,
		Source:         SourceReference,
		Rule:           "generic_reference",
	}

	data, err := json.Marshal(span)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(data)

	for _, key := range []string{`"term":`, `"fullPhrase":"this bill"`, `"startIndex":4`, `"endIndex":13`, `"category":"formal_legislation"`, `"relevanceScore":8`} {
		if !strings.Contains(out, key) {
			t.Errorf("expected %s in %s", key, out)
		}
	}
	for _, hidden := range []string{"Source", "Rule", "generic_reference", `"explanation"`} {
		if strings.Contains(out, hidden) {
			t.Errorf("did not expect %s in %s", hidden, out)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Highlight.Threshold != 7 {
		t.Errorf("expected threshold 7, got %v", cfg.Highlight.Threshold)
	}
	if cfg.LLM.Enabled {
		t.Error("expected remote path disabled by default")
	}
	for _, c := range Categories() {
		if _, ok := cfg.Highlight.CategoryWeights[c]; !ok {
			t.Errorf("missing base weight for %s", c)
		}
	}
	if cfg.Highlight.CategoryWeights[CategoryPolicyPhrase] >= cfg.Highlight.CategoryWeights[CategoryBillIdentifier] {
		t.Error("expected procedural phrases to weigh less than bill identifiers")
	}
}
