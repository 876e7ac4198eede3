package patterns

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Building blocks shared by the capitalized-phrase recognizers.
// A word is Capitalized or a dotted initialism such as "U.S.".
const (
	capWord   = `(?:[A-Z]\.(?:[A-Z]\.)+|[A-Z][A-Za-z0-9'\-]*)`
	connector = `(?:of|and|for|on|the|to|in|&)`
)

var (
	billIdentifierMatcher = NewRegexMatcher(
		`\b(?:H\.\s?J\.\s?Res\.|H\.\s?Con\.\s?Res\.|H\.\s?Res\.|H\.\s?R\.|H\.\s?B\.|S\.\s?J\.\s?Res\.|S\.\s?Con\.\s?Res\.|S\.\s?Res\.|S\.\s?B\.|A\.\s?B\.|S\.|HJRES|HCONRES|HRES|HR|HB|SJRES|SCONRES|SRES|SB|AB)\s?\d{1,5}\b`,
		refineNotAfterDot,
		canonicalBillIdentifier,
	)

	publicLawMatcher = NewRegexMatcher(
		`\b(?:Public\s+Law|Pub\.\s?L\.|P\.\s?L\.)\s?(?:No\.\s?)?\d{2,3}[-–]\d{1,3}\b`,
		refineNotAfterDot,
		canonicalPublicLaw,
	)

	formalLegislationMatcher = NewRegexMatcher(
		capWord+`(?:\s+(?:`+connector+`\s+)*`+capWord+`){0,10}\s+(?:Act|Bill|Law|Code|Reform|Regulation|Directive)\b(?:\s+of\s+\d{4}\b)?`,
		refineFormalLegislation,
		nil,
	)

	euInstrumentMatcher = NewRegexMatcher(
		`\b(?:Regulation|Directive|Decision)\s+\((?:EU|EC|EEC)\)\s+(?:No\s+)?\d{2,4}/\d{1,4}(?:/E[CU])?`,
		nil,
		nil,
	)

	chamberCommitteeMatcher = NewRegexMatcher(
		`\b(?:House|Senate|Joint)\s+(?:(?:Permanent\s+)?Select\s+|Special\s+)?(?:Committee|Subcommittee)\s+on\s+(?:the\s+)?`+capWord+`(?:\s+(?:`+connector+`\s+)*`+capWord+`){0,6}`,
		refineTrailing,
		nil,
	)

	namedCommitteeMatcher = NewRegexMatcher(
		capWord+`(?:\s+(?:`+connector+`\s+)*`+capWord+`){0,6}\s+(?:Committee|Subcommittee)\b`,
		refineNamedCommittee,
		nil,
	)

	departmentMatcher = NewRegexMatcher(
		`\b(?:U\.S\.\s+)?Department\s+of\s+(?:the\s+)?`+capWord+`(?:\s+(?:(?:and|&)\s+)?`+capWord+`){0,4}`,
		refineTrailing,
		nil,
	)

	agencySuffixMatcher = NewRegexMatcher(
		capWord+`(?:\s+(?:`+connector+`\s+)*`+capWord+`){0,6}\s+(?:Agency|Administration|Commission|Bureau|Office|Service)\b`,
		refineAgencySuffix,
		nil,
	)

	agencyOfMatcher = NewRegexMatcher(
		`(?:`+capWord+`\s+){0,3}\b(?:Bureau|Office|Administration|Commission|Agency)\s+(?:of|for|on)\s+(?:the\s+)?`+capWord+`(?:\s+(?:`+connector+`\s+)*`+capWord+`){0,5}`,
		func(text string, start, end int) (int, int, bool) {
			start = trimLeadingWords(text, start, end)
			return refineTrailing(text, start, end)
		},
		nil,
	)

	officeholderAdministrationMatcher = NewRegexMatcher(
		`\b(?:`+strings.Join(officeholderSurnames, "|")+`)\s+[Aa]dministration\b`,
		nil,
		func(matched string) string {
			return strings.Fields(matched)[0] + " Administration"
		},
	)
)

var (
	keywordTailPattern = regexp.MustCompile(`\s(?:Act|Bill|Law|Code|Reform|Regulation|Directive)\b(?:\s+of\s+\d{4})?$`)
	joinPattern        = regexp.MustCompile(`\s(?:and|of|on|to|in)\s+the\s+`)
)

// refineNotAfterDot rejects "S. 500" inside "U.S. 500"
func refineNotAfterDot(text string, start, end int) (int, int, bool) {
	if start > 0 {
		prev, _ := utf8.DecodeLastRuneInString(text[:start])
		if prev == '.' || unicode.IsLetter(prev) {
			return start, end, false
		}
	}
	return start, end, true
}

func refineFormalLegislation(text string, start, end int) (int, int, bool) {
	start = trimLeadingWords(text, start, end)
	start = cutAfterJoin(text, start, end)

	tail := keywordTailPattern.FindStringIndex(text[start:end])
	if tail == nil || tail[0] == 0 {
		return start, end, false
	}

	// "President Bill Clinton" is a person, not a bill
	phrase := text[start:end]
	if strings.HasSuffix(phrase, " Bill") || strings.HasSuffix(phrase, " Law") {
		rest := text[end:]
		if len(rest) > 1 && rest[0] == ' ' && unicode.IsUpper(rune(rest[1])) {
			return start, end, false
		}
	}

	return start, end, true
}

func refineNamedCommittee(text string, start, end int) (int, int, bool) {
	start = trimLeadingWords(text, start, end)
	start = cutAfterJoin(text, start, end)
	phrase := text[start:end]
	if !strings.Contains(phrase, " ") {
		return start, end, false
	}
	for _, deny := range nonCongressionalCommittees {
		if strings.Contains(phrase, deny) {
			return start, end, false
		}
	}
	return start, end, true
}

func refineAgencySuffix(text string, start, end int) (int, int, bool) {
	start = trimLeadingWords(text, start, end)
	start = cutAfterJoin(text, start, end)
	phrase := text[start:end]
	for _, deny := range nonAgencyPhrases {
		if phrase == deny {
			return start, end, false
		}
	}

	words := strings.Fields(phrase)
	if len(words) < 2 {
		return start, end, false
	}

	if words[len(words)-1] == "Administration" {
		before := words[len(words)-2]
		if isOfficeholderSurname(before) {
			head := strings.LastIndex(phrase, "Administration")
			return start + strings.LastIndex(phrase[:head], before), end, true
		}
		if len(words) == 2 {
			return start, end, false
		}
	}
	return start, end, true
}

// refineTrailing cuts a phrase at the first title or time word after its head
// ("Department of Energy Secretary" becomes "Department of Energy")
func refineTrailing(text string, start, end int) (int, int, bool) {
	phrase := text[start:end]
	words := strings.Fields(phrase)
	if len(words) < 3 {
		return start, end, true
	}

	offset := 0
	cut := -1
	for i, w := range words {
		idx := strings.Index(phrase[offset:], w) + offset
		if i >= 3 && trailingStopWords[w] {
			cut = idx
			break
		}
		offset = idx + len(w)
	}
	if cut < 0 {
		return start, end, true
	}

	trimmed := strings.TrimRight(phrase[:cut], " ")
	for {
		i := strings.LastIndex(trimmed, " ")
		if i < 0 || !isConnector(trimmed[i+1:]) {
			break
		}
		trimmed = trimmed[:i]
	}
	return start, start + len(trimmed), true
}

// trimLeadingWords skips sentence openers and possessives at the front of a phrase.
// Returns the new start, which never passes end.
func trimLeadingWords(text string, start, end int) int {
	for start < end {
		sp := strings.IndexByte(text[start:end], ' ')
		if sp < 0 {
			return start
		}
		word := text[start : start+sp]
		if !leadingStopWords[word] && !isConnector(word) && !strings.HasSuffix(word, "'s") {
			return start
		}
		start += sp + 1
		for start < end && text[start] == ' ' {
			start++
		}
	}
	return start
}

// cutAfterJoin starts the phrase after its last "and the" style join, which links two
// separate entities ("Senate and the Inflation Reduction Act")
func cutAfterJoin(text string, start, end int) int {
	locs := joinPattern.FindAllStringIndex(text[start:end], -1)
	if len(locs) == 0 {
		return start
	}
	return start + locs[len(locs)-1][1]
}

func isConnector(w string) bool {
	switch w {
	case "of", "and", "for", "on", "the", "to", "in", "&":
		return true
	}
	return false
}

func isOfficeholderSurname(w string) bool {
	for _, s := range officeholderSurnames {
		if s == w {
			return true
		}
	}
	return false
}

var billPrefixes = map[string]string{
	"HJRES":   "H.J.Res.",
	"HCONRES": "H.Con.Res.",
	"HRES":    "H.Res.",
	"HR":      "H.R.",
	"HB":      "H.B.",
	"SJRES":   "S.J.Res.",
	"SCONRES": "S.Con.Res.",
	"SRES":    "S.Res.",
	"SB":      "S.B.",
	"AB":      "A.B.",
	"S":       "S.",
}

var compactReplacer = strings.NewReplacer(".", "", " ", "")

// canonicalBillIdentifier rewrites "HR1234" or "H. R. 1234" as "H.R. 1234"
func canonicalBillIdentifier(matched string) string {
	i := strings.IndexFunc(matched, unicode.IsDigit)
	if i <= 0 {
		return matched
	}
	prefix := strings.ToUpper(compactReplacer.Replace(matched[:i]))
	if canonical, ok := billPrefixes[prefix]; ok {
		return canonical + " " + matched[i:]
	}
	return matched
}

var publicLawNumber = regexp.MustCompile(`(\d{2,3})[-–](\d{1,3})`)

func canonicalPublicLaw(matched string) string {
	m := publicLawNumber.FindStringSubmatch(matched)
	if m == nil {
		return matched
	}
	return "Public Law " + m[1] + "-" + m[2]
}
