package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a category name is outside the fixed set
var ErrUnknownCategory = errors.New("unknown category")

// Category classifies a highlighted political entity
type Category string

const (
	CategoryBillIdentifier         Category = "bill_identifier"         // H.R. 1234, S. 47, Public Law 117-58
	CategoryFormalLegislation      Category = "formal_legislation"      // Inflation Reduction Act
	CategoryGovernmentAgency       Category = "government_agency"       // Department of Energy, EPA
	CategoryCongressionalCommittee Category = "congressional_committee" // Senate Finance Committee
	CategoryPoliticalInstitution   Category = "political_institution"   // Supreme Court, Federal Reserve
	CategoryEntitlementProgram     Category = "entitlement_program"     // Medicare, SNAP
	CategoryMovement               Category = "movement"                // Tea Party, MAGA
	CategoryPolicyPhrase           Category = "policy_phrase"           // budget reconciliation, filibuster
	CategoryOther                  Category = "other"
)

var categories = []Category{
	CategoryBillIdentifier,
	CategoryFormalLegislation,
	CategoryGovernmentAgency,
	CategoryCongressionalCommittee,
	CategoryPoliticalInstitution,
	CategoryEntitlementProgram,
	CategoryMovement,
	CategoryPolicyPhrase,
	CategoryOther,
}

// Categories returns every valid category in declaration order
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory converts a name into a Category.
// Names outside the fixed set are rejected with ErrUnknownCategory.
func ParseCategory(name string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, c := range categories {
		if string(c) == normalized {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// Valid reports whether c belongs to the fixed set
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// SpanSource records which stage produced a span
type SpanSource string

const (
	SourcePattern   SpanSource = "pattern"   // Local pattern library match
	SourceReference SpanSource = "reference" // Generic reference bound to a specific entity
	SourceRemote    SpanSource = "remote"    // Validated entry from the LLM collaborator
)

// Span is a half-open byte range [Start, End) of the source text annotated
// with the entity it names
type Span struct {
	Start          int      `json:"startIndex"`
	End            int      `json:"endIndex"`
	CanonicalTerm  string   `json:"term"`
	MatchedText    string   `json:"fullPhrase"`
	Category       Category `json:"category"`
	RelevanceScore float64  `json:"relevanceScore,omitempty"`
	Explanation    string   `json:"explanation,omitempty"`

	Source SpanSource `json:"-"`
	Rule   string     `json:"-"` // Recognizer name for pattern spans
}

// Len returns the span length in bytes
func (s Span) Len() int {
	return s.End - s.Start
}

// Overlaps reports whether two spans share at least one byte
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Valid checks the positional invariant 0 <= Start < End <= textLen
func (s Span) Valid(textLen int) bool {
	return s.Start >= 0 && s.Start < s.End && s.End <= textLen
}

func (s Span) String() string {
	if s.CanonicalTerm != "" && s.CanonicalTerm != s.MatchedText {
		return fmt.Sprintf("%s[%d:%d] %q -> %q", s.Category, s.Start, s.End, s.MatchedText, s.CanonicalTerm)
	}
	return fmt.Sprintf("%s[%d:%d] %q", s.Category, s.Start, s.End, s.MatchedText)
}
