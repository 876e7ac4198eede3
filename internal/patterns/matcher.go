package patterns

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Match is a raw recognizer hit before scoring
type Match struct {
	Start     int
	End       int
	Text      string
	Canonical string
}

// Matcher finds every non-overlapping occurrence of one entity shape in text.
// Offsets are UTF-8 byte offsets into text.
type Matcher interface {
	FindAll(text string) []Match
}

// RefineFunc adjusts or rejects a candidate [start, end) found by a regex.
// Returning ok=false drops the candidate.
type RefineFunc func(text string, start, end int) (newStart, newEnd int, ok bool)

// CanonicalFunc derives the canonical term from the matched text
type CanonicalFunc func(matched string) string

// RegexMatcher wraps a precompiled pattern.
// Go regexp is RE2 based, so matching is linear in the input size.
type RegexMatcher struct {
	re        *regexp.Regexp
	refine    RefineFunc
	canonical CanonicalFunc
}

// NewRegexMatcher creates a matcher from a pattern. Panics on an invalid pattern,
// like regexp.MustCompile, since patterns are compiled once at package init.
func NewRegexMatcher(pattern string, refine RefineFunc, canonical CanonicalFunc) *RegexMatcher {
	return &RegexMatcher{
		re:        regexp.MustCompile(pattern),
		refine:    refine,
		canonical: canonical,
	}
}

// FindAll implements Matcher
func (m *RegexMatcher) FindAll(text string) []Match {
	locs := m.re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if m.refine != nil {
			var ok bool
			start, end, ok = m.refine(text, start, end)
			if !ok {
				continue
			}
		}
		if start >= end || !isWordBoundary(text, start, end) {
			continue
		}

		matched := text[start:end]
		canonical := matched
		if m.canonical != nil {
			canonical = m.canonical(matched)
		}
		matches = append(matches, Match{Start: start, End: end, Text: matched, Canonical: canonical})
	}
	return matches
}

// ListEntry is one closed-list term with an optional canonical form
type ListEntry struct {
	Term      string
	Canonical string
}

// ListMatcher scans for a closed list of terms.
// Terms are tried longest first so "Medicare Advantage" wins over "Medicare".
type ListMatcher struct {
	re         *regexp.Regexp
	terms      []string // longest first
	canonical  map[string]string
	ignoreCase bool
}

// NewListMatcher compiles a closed list into a single alternation
func NewListMatcher(entries []ListEntry, ignoreCase bool) *ListMatcher {
	sorted := make([]ListEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Term) > len(sorted[j].Term)
	})

	alternatives := make([]string, 0, len(sorted))
	terms := make([]string, 0, len(sorted))
	canonical := make(map[string]string, len(sorted))
	for _, e := range sorted {
		alternatives = append(alternatives, regexp.QuoteMeta(e.Term))
		terms = append(terms, e.Term)
		key := e.Term
		if ignoreCase {
			key = strings.ToLower(key)
		}
		if e.Canonical != "" {
			canonical[key] = e.Canonical
		} else {
			canonical[key] = e.Term
		}
	}

	pattern := "(?:" + strings.Join(alternatives, "|") + ")"
	if ignoreCase {
		pattern = "(?i)" + pattern
	}

	return &ListMatcher{
		re:         regexp.MustCompile(pattern),
		terms:      terms,
		canonical:  canonical,
		ignoreCase: ignoreCase,
	}
}

// FindAll implements Matcher
func (m *ListMatcher) FindAll(text string) []Match {
	var matches []Match
	offset := 0

	for offset < len(text) {
		loc := m.re.FindStringIndex(text[offset:])
		if loc == nil {
			break
		}
		start, end := offset+loc[0], offset+loc[1]
		if start == end {
			break
		}

		// "Medicare Advantages" rejects the longest term but "Medicare" may still fit
		if !isWordBoundary(text, start, end) {
			end = m.shorterAt(text, start, end)
			if end < 0 {
				_, size := utf8.DecodeRuneInString(text[start:])
				offset = start + size
				continue
			}
		}

		matched := text[start:end]
		key := matched
		if m.ignoreCase {
			key = strings.ToLower(key)
		}
		canonical, ok := m.canonical[key]
		if !ok {
			canonical = matched
		}
		matches = append(matches, Match{Start: start, End: end, Text: matched, Canonical: canonical})
		offset = end
	}
	return matches
}

// shorterAt returns the end of the longest term shorter than [start, maxEnd)
// that matches at start on word boundaries, or -1
func (m *ListMatcher) shorterAt(text string, start, maxEnd int) int {
	rest := text[start:]
	for _, term := range m.terms {
		if len(term) >= maxEnd-start || len(term) > len(rest) {
			continue
		}
		candidate := rest[:len(term)]
		if m.ignoreCase {
			if !strings.EqualFold(candidate, term) {
				continue
			}
		} else if candidate != term {
			continue
		}
		if isWordBoundary(text, start, start+len(term)) {
			return start + len(term)
		}
	}
	return -1
}

// isWordBoundary requires that the runes just outside [start, end) are not letters or digits
// whenever the span itself begins or ends with one
func isWordBoundary(text string, start, end int) bool {
	if start > 0 {
		first, _ := utf8.DecodeRuneInString(text[start:])
		prev, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(first) && isWordRune(prev) {
			return false
		}
	}
	if end < len(text) {
		last, _ := utf8.DecodeLastRuneInString(text[:end])
		next, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(last) && isWordRune(next) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
