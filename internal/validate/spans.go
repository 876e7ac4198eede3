package validate

import (
	"errors"
	"fmt"

	"github.com/ppiankov/civiclens/internal/model"
)

// Spans checks a final span list against text. It reports every violation:
// out-of-range offsets, matched text that differs from the source, unknown
// categories, scores below threshold (when threshold > 0), disorder and overlap.
func Spans(text string, spans []model.Span, threshold float64) error {
	var errs []error
	for i, s := range spans {
		if !s.Valid(len(text)) {
			errs = append(errs, fmt.Errorf("span %d: range [%d:%d] outside text of %d bytes", i, s.Start, s.End, len(text)))
			continue
		}
		if text[s.Start:s.End] != s.MatchedText {
			errs = append(errs, fmt.Errorf("span %d: matched text %q differs from source %q", i, s.MatchedText, text[s.Start:s.End]))
		}
		if !s.Category.Valid() {
			errs = append(errs, fmt.Errorf("span %d: %w: %q", i, model.ErrUnknownCategory, s.Category))
		}
		if threshold > 0 && s.RelevanceScore < threshold {
			errs = append(errs, fmt.Errorf("span %d: score %v below threshold %v", i, s.RelevanceScore, threshold))
		}
		if i == 0 {
			continue
		}
		prev := spans[i-1]
		if prev.Start > s.Start {
			errs = append(errs, fmt.Errorf("span %d: starts before span %d", i, i-1))
		}
		if prev.Overlaps(s) {
			errs = append(errs, fmt.Errorf("span %d overlaps span %d", i, i-1))
		}
	}
	return errors.Join(errs...)
}
