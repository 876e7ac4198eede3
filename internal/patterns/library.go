package patterns

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ppiankov/civiclens/internal/model"
)

// Rule is one recognizer in the library
type Rule struct {
	Name         string
	Category     model.Category
	BasePriority int // Higher runs first
	Matcher      Matcher

	// Abbreviation rules are suppressed inside full-name spans of the same category
	// found by earlier rules
	Abbreviation bool
}

// Library is an immutable ordered set of rules
type Library struct {
	rules []Rule
}

// NewLibrary orders rules by BasePriority descending.
// Rules with equal priority keep their declaration order.
func NewLibrary(rules ...Rule) (*Library, error) {
	seen := make(map[string]bool, len(rules))
	for _, r := range rules {
		if r.Name == "" {
			return nil, fmt.Errorf("rule without name")
		}
		if seen[r.Name] {
			return nil, fmt.Errorf("duplicate rule %q", r.Name)
		}
		seen[r.Name] = true
		if !r.Category.Valid() {
			return nil, fmt.Errorf("rule %q: %w: %q", r.Name, model.ErrUnknownCategory, r.Category)
		}
		if r.Matcher == nil {
			return nil, fmt.Errorf("rule %q has no matcher", r.Name)
		}
	}

	ordered := make([]Rule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].BasePriority > ordered[j].BasePriority
	})

	return &Library{rules: ordered}, nil
}

// Rules returns the rules in execution order
func (l *Library) Rules() []Rule {
	out := make([]Rule, len(l.rules))
	copy(out, l.rules)
	return out
}

// Len returns the number of rules
func (l *Library) Len() int {
	return len(l.rules)
}

var (
	defaultOnce    sync.Once
	defaultLibrary *Library
)

// Default returns the built-in library for U.S. political text.
// Patterns are compiled once and shared; the library is safe for concurrent use.
func Default() *Library {
	defaultOnce.Do(func() {
		lib, err := NewLibrary(defaultRules()...)
		if err != nil {
			panic(fmt.Sprintf("patterns: invalid built-in library: %v", err))
		}
		defaultLibrary = lib
	})
	return defaultLibrary
}

func defaultRules() []Rule {
	return []Rule{
		{Name: "bill_identifier", Category: model.CategoryBillIdentifier, BasePriority: 100, Matcher: billIdentifierMatcher},
		{Name: "public_law", Category: model.CategoryBillIdentifier, BasePriority: 100, Matcher: publicLawMatcher},

		{Name: "chamber_committee", Category: model.CategoryCongressionalCommittee, BasePriority: 90, Matcher: chamberCommitteeMatcher},
		{Name: "named_committee", Category: model.CategoryCongressionalCommittee, BasePriority: 90, Matcher: namedCommitteeMatcher},

		{Name: "formal_legislation", Category: model.CategoryFormalLegislation, BasePriority: 80, Matcher: formalLegislationMatcher},
		{Name: "eu_instrument", Category: model.CategoryFormalLegislation, BasePriority: 80, Matcher: euInstrumentMatcher},

		{Name: "department", Category: model.CategoryGovernmentAgency, BasePriority: 70, Matcher: departmentMatcher},
		{Name: "agency_suffix", Category: model.CategoryGovernmentAgency, BasePriority: 70, Matcher: agencySuffixMatcher},
		{Name: "agency_office_of", Category: model.CategoryGovernmentAgency, BasePriority: 70, Matcher: agencyOfMatcher},
		{Name: "officeholder_administration", Category: model.CategoryGovernmentAgency, BasePriority: 70, Matcher: officeholderAdministrationMatcher},
		{Name: "agency_alias", Category: model.CategoryGovernmentAgency, BasePriority: 70, Matcher: NewListMatcher(agencyAliases, false)},

		{Name: "entitlement_program", Category: model.CategoryEntitlementProgram, BasePriority: 60, Matcher: NewListMatcher(entitlementPrograms, false)},
		{Name: "political_institution", Category: model.CategoryPoliticalInstitution, BasePriority: 50, Matcher: NewListMatcher(politicalInstitutions, false)},
		{Name: "movement", Category: model.CategoryMovement, BasePriority: 40, Matcher: NewListMatcher(movements, false)},
		{Name: "policy_phrase", Category: model.CategoryPolicyPhrase, BasePriority: 30, Matcher: NewListMatcher(policyPhrases, true)},

		{Name: "agency_acronym", Category: model.CategoryGovernmentAgency, BasePriority: 20, Matcher: NewListMatcher(agencyAcronyms, false), Abbreviation: true},
		{Name: "program_acronym", Category: model.CategoryEntitlementProgram, BasePriority: 20, Matcher: NewListMatcher(programAcronyms, false), Abbreviation: true},
	}
}
