package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/civiclens/internal/model"
)

// ErrUnparseable is returned when a remote payload contains no span array at all
var ErrUnparseable = errors.New("remote response is not parseable")

// wrapperKeys are the object fields a model may wrap the span array in
var wrapperKeys = []string{"highlights", "spans", "entities", "results"}

// remoteEntry is the typed record every remote array element must decode into.
// Pointer fields distinguish "absent" from zero.
type remoteEntry struct {
	Term           string   `json:"term"`
	FullPhrase     string   `json:"fullPhrase"`
	StartIndex     *int     `json:"startIndex"`
	EndIndex       *int     `json:"endIndex"`
	Category       string   `json:"category"`
	RelevanceScore *float64 `json:"relevanceScore"`
	Explanation    string   `json:"explanation"`
}

// Rejection records why one remote entry was dropped
type Rejection struct {
	Index  int
	Reason string
}

func (r Rejection) String() string {
	return fmt.Sprintf("entry %d: %s", r.Index, r.Reason)
}

// RemoteResult is the outcome of validating a remote payload
type RemoteResult struct {
	Spans     []model.Span
	Rejected  []Rejection
	Relocated int // Entries whose indices were corrected to match the phrase
}

// RemoteSpans decodes a remote completion into spans over text.
//
// Each array element is decoded on its own. Elements with wrong field types,
// an unknown category, a score outside [threshold, 10], or a phrase that does not
// occur in text are dropped individually. Indices that do not address the phrase
// are corrected to the nearest exact occurrence. ErrUnparseable is returned only
// when the payload holds no JSON array.
func RemoteSpans(text, payload string, threshold float64) (*RemoteResult, error) {
	elements, err := decodeArray(payload)
	if err != nil {
		return nil, err
	}

	result := &RemoteResult{Spans: make([]model.Span, 0, len(elements))}
	for i, raw := range elements {
		span, relocated, reason := decodeEntry(text, raw, threshold)
		if reason != "" {
			result.Rejected = append(result.Rejected, Rejection{Index: i, Reason: reason})
			continue
		}
		if relocated {
			result.Relocated++
		}
		result.Spans = append(result.Spans, span)
	}
	return result, nil
}

// decodeArray extracts the raw array elements from a bare array, a fenced
// block, or an object wrapping the array
func decodeArray(payload string) ([]json.RawMessage, error) {
	body := stripFences(payload)
	if body == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrUnparseable)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(body), &elements); err == nil {
		return elements, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &wrapper); err == nil {
		for _, key := range wrapperKeys {
			inner, ok := wrapper[key]
			if !ok {
				continue
			}
			if err := json.Unmarshal(inner, &elements); err == nil {
				return elements, nil
			}
		}
		return nil, fmt.Errorf("%w: object without a span array", ErrUnparseable)
	}

	// Prose around the array
	start := strings.IndexByte(body, '[')
	end := strings.LastIndexByte(body, ']')
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(body[start:end+1]), &elements); err == nil {
			return elements, nil
		}
	}

	return nil, fmt.Errorf("%w: no JSON array found", ErrUnparseable)
}

func stripFences(payload string) string {
	s := strings.TrimSpace(payload)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	// Drop the opening fence line, including any language tag
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func decodeEntry(text string, raw json.RawMessage, threshold float64) (model.Span, bool, string) {
	var entry remoteEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return model.Span{}, false, "malformed entry: " + err.Error()
	}

	phrase := entry.FullPhrase
	if phrase == "" {
		phrase = entry.Term
	}
	if strings.TrimSpace(phrase) == "" {
		return model.Span{}, false, "missing fullPhrase"
	}

	category, err := model.ParseCategory(entry.Category)
	if err != nil {
		return model.Span{}, false, err.Error()
	}

	if entry.RelevanceScore == nil {
		return model.Span{}, false, "missing relevanceScore"
	}
	score := *entry.RelevanceScore
	if score < 1 || score > 10 {
		return model.Span{}, false, fmt.Sprintf("relevanceScore %v outside 1-10", score)
	}
	if score < threshold {
		return model.Span{}, false, fmt.Sprintf("relevanceScore %v below threshold %v", score, threshold)
	}

	start, end, relocated, ok := locate(text, phrase, entry.StartIndex, entry.EndIndex)
	if !ok {
		return model.Span{}, false, fmt.Sprintf("phrase %q not found in text", phrase)
	}

	term := strings.TrimSpace(entry.Term)
	if term == "" {
		term = phrase
	}

	return model.Span{
		Start:          start,
		End:            end,
		MatchedText:    text[start:end],
		CanonicalTerm:  term,
		Category:       category,
		RelevanceScore: score,
		Explanation:    strings.TrimSpace(entry.Explanation),
		Source:         model.SourceRemote,
		Rule:           "remote",
	}, relocated, ""
}

// locate returns the byte range of phrase in text, trusting the reported
// indices only when they address the phrase exactly
func locate(text, phrase string, startIdx, endIdx *int) (int, int, bool, bool) {
	if startIdx != nil && endIdx != nil {
		s, e := *startIdx, *endIdx
		if addresses(text, phrase, s, e) {
			return s, e, false, true
		}
		// Models often count characters rather than bytes
		if bs, be, ok := runeRangeToBytes(text, s, e); ok && addresses(text, phrase, bs, be) {
			return bs, be, true, true
		}
	}

	hint := 0
	if startIdx != nil {
		hint = *startIdx
	}
	s := nearestOccurrence(text, phrase, hint)
	if s < 0 {
		return 0, 0, false, false
	}
	return s, s + len(phrase), startIdx != nil, true
}

func addresses(text, phrase string, start, end int) bool {
	return start >= 0 && start < end && end <= len(text) && text[start:end] == phrase
}

func runeRangeToBytes(text string, start, end int) (int, int, bool) {
	if start < 0 || end <= start {
		return 0, 0, false
	}
	bs, be := -1, -1
	r := 0
	for i := range text {
		if r == start {
			bs = i
		}
		if r == end {
			be = i
			break
		}
		r++
	}
	if be < 0 && r == end {
		be = len(text)
	}
	if bs < 0 || be < 0 {
		return 0, 0, false
	}
	return bs, be, true
}

// nearestOccurrence returns the byte offset of the occurrence of phrase closest
// to hint, or -1
func nearestOccurrence(text, phrase string, hint int) int {
	best, bestDist := -1, 0
	from := 0
	for from <= len(text) {
		i := strings.Index(text[from:], phrase)
		if i < 0 {
			break
		}
		pos := from + i
		dist := pos - hint
		if dist < 0 {
			dist = -dist
		}
		if best < 0 || dist < bestDist {
			best, bestDist = pos, dist
		}
		_, size := utf8.DecodeRuneInString(text[pos:])
		from = pos + size
	}
	return best
}
