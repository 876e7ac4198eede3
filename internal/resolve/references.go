package resolve

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ppiankov/civiclens/internal/model"
)

// ReferenceRule maps a family of generic phrases to the categories they may refer to
type ReferenceRule struct {
	Name       string
	Pattern    *regexp.Regexp
	Categories []model.Category
}

// DefaultReferenceRules are the generic phrase families resolved by ResolveReferences
var DefaultReferenceRules = []ReferenceRule{
	{
		Name:       "legislation_reference",
		Pattern:    regexp.MustCompile(`(?i)\b(?:this|the|that|such)\s+(?:bill|act|legislation|proposal|measure)\b`),
		Categories: []model.Category{model.CategoryBillIdentifier, model.CategoryFormalLegislation},
	},
	{
		Name:       "agency_reference",
		Pattern:    regexp.MustCompile(`(?i)\b(?:this|the)\s+(?:department|agency|bureau)\b`),
		Categories: []model.Category{model.CategoryGovernmentAgency},
	},
	{
		Name:       "program_reference",
		Pattern:    regexp.MustCompile(`(?i)\b(?:this|the)\s+(?:program|policy|initiative)\b`),
		Categories: []model.Category{model.CategoryEntitlementProgram},
	},
	{
		Name:       "committee_reference",
		Pattern:    regexp.MustCompile(`(?i)\b(?:this|the)\s+(?:committee|panel|subcommittee)\b`),
		Categories: []model.Category{model.CategoryCongressionalCommittee},
	},
}

// Context records the most recent specific entity per category.
// ResolveReferences feeds it in textual order, so a lookup always returns the
// nearest specific mention preceding the reference.
type Context struct {
	latest map[model.Category]model.Span
}

// NewContext creates an empty resolution context
func NewContext() *Context {
	return &Context{latest: make(map[model.Category]model.Span)}
}

// Observe records span as the latest entity of its category
func (c *Context) Observe(span model.Span) {
	c.latest[span.Category] = span
}

// Lookup returns the nearest recorded entity among categories
func (c *Context) Lookup(categories ...model.Category) (model.Span, bool) {
	var best model.Span
	found := false
	for _, cat := range categories {
		s, ok := c.latest[cat]
		if !ok {
			continue
		}
		if !found || s.Start > best.Start {
			best = s
			found = true
		}
	}
	return best, found
}

type genericMatch struct {
	start, end int
	rule       *ReferenceRule
}

// ResolveReferences emits a span for every generic reference ("this bill") that
// follows a specific mention of a matching category. Unresolvable references
// produce nothing. Returned spans are sorted by start.
func ResolveReferences(text string, specific []model.Span) []model.Span {
	return ResolveReferencesWith(text, specific, DefaultReferenceRules)
}

// ResolveReferencesWith is ResolveReferences with a custom rule set
func ResolveReferencesWith(text string, specific []model.Span, rules []ReferenceRule) []model.Span {
	if text == "" || len(specific) == 0 {
		return nil
	}

	entities := make([]model.Span, 0, len(specific))
	for _, s := range specific {
		if s.Source != model.SourceReference {
			entities = append(entities, s)
		}
	}
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Start < entities[j].Start
	})

	var generics []genericMatch
	for i := range rules {
		rule := &rules[i]
		for _, loc := range rule.Pattern.FindAllStringIndex(text, -1) {
			if strings.HasPrefix(text[loc[1]:], " of ") {
				// "the act of voting" names no legislation
				continue
			}
			if overlapsAny(entities, loc[0], loc[1]) {
				continue
			}
			generics = append(generics, genericMatch{start: loc[0], end: loc[1], rule: rule})
		}
	}
	sort.SliceStable(generics, func(i, j int) bool {
		return generics[i].start < generics[j].start
	})

	ctx := NewContext()
	var resolved []model.Span
	next := 0
	for _, g := range generics {
		for next < len(entities) && entities[next].End <= g.start {
			ctx.Observe(entities[next])
			next++
		}

		bound, ok := ctx.Lookup(g.rule.Categories...)
		if !ok {
			continue
		}

		canonical := bound.CanonicalTerm
		if canonical == "" {
			canonical = bound.MatchedText
		}
		resolved = append(resolved, model.Span{
			Start:          g.start,
			End:            g.end,
			MatchedText:    text[g.start:g.end],
			CanonicalTerm:  canonical,
			Category:       bound.Category,
			RelevanceScore: bound.RelevanceScore,
			Explanation:    "refers to " + canonical,
			Source:         model.SourceReference,
			Rule:           g.rule.Name,
		})
	}
	return resolved
}

func overlapsAny(spans []model.Span, start, end int) bool {
	for _, s := range spans {
		if s.Start < end && start < s.End {
			return true
		}
	}
	return false
}
