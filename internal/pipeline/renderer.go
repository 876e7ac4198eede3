package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/civiclens/internal/model"
	"github.com/ppiankov/civiclens/internal/score"
)

// Renderer writes highlighted documents as JSON or Markdown
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes doc as indented JSON to path
func (r *Renderer) RenderJSON(doc *model.Document, path string) error {
	return writeFile(path, func(w io.Writer) error {
		return r.WriteJSON(w, doc)
	})
}

// WriteJSON writes doc as indented JSON to w
func (r *Renderer) WriteJSON(w io.Writer, doc *model.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}

// RenderMarkdown writes doc as Markdown to path
func (r *Renderer) RenderMarkdown(doc *model.Document, path string) error {
	return writeFile(path, func(w io.Writer) error {
		return r.WriteMarkdown(w, doc)
	})
}

// WriteMarkdown writes the text with spans in bold, followed by a span table
func (r *Renderer) WriteMarkdown(w io.Writer, doc *model.Document) error {
	var b strings.Builder

	title := doc.Subject
	if title == "" {
		title = "Highlighted article"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if doc.SourceURL != "" {
		fmt.Fprintf(&b, "**Source:** %s  \n", doc.SourceURL)
	}
	fmt.Fprintf(&b, "**Processed:** %s  \n", doc.ProcessedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "**Spans:** %d (%s)\n\n", len(doc.Spans), doc.Source)

	for _, warning := range doc.Warnings {
		fmt.Fprintf(&b, "> ⚠ %s\n", warning)
	}
	if len(doc.Warnings) > 0 {
		b.WriteString("\n")
	}

	b.WriteString("## Text\n\n")
	b.WriteString(HighlightMarkdown(doc.Text, doc.Spans))
	b.WriteString("\n\n")

	if len(doc.Spans) > 0 {
		b.WriteString("## Entities\n\n")
		b.WriteString("| # | Phrase | Term | Category | Score | Explanation |\n")
		b.WriteString("|---|--------|------|----------|-------|-------------|\n")
		for i, s := range doc.Spans {
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %.1f | %s |\n",
				i+1, cell(s.MatchedText), cell(s.CanonicalTerm), s.Category, s.RelevanceScore, cell(s.Explanation))
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString("_Generated by civiclens. Entities are pattern matches, not judgments._  \n")
		fmt.Fprintf(&b, "_Score: `%s`_\n", score.Formula)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// HighlightMarkdown wraps each span of text in bold markers.
// Spans must be ordered and non-overlapping.
func HighlightMarkdown(text string, spans []model.Span) string {
	var b strings.Builder
	b.Grow(len(text) + 4*len(spans))

	pos := 0
	for _, s := range spans {
		if s.Start < pos || !s.Valid(len(text)) {
			continue
		}
		b.WriteString(text[pos:s.Start])
		b.WriteString("**")
		b.WriteString(text[s.Start:s.End])
		b.WriteString("**")
		pos = s.End
	}
	b.WriteString(text[pos:])
	return b.String()
}

// RenderSummary prints span counts per category to w
func (r *Renderer) RenderSummary(w io.Writer, doc *model.Document) {
	subject := doc.Subject
	if subject == "" {
		subject = "input"
	}
	_, _ = fmt.Fprintf(w, "%s: %d spans (%s)\n", subject, len(doc.Spans), doc.Source)

	counts := doc.CountByCategory()
	categories := make([]model.Category, 0, len(counts))
	for c := range counts {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		if counts[categories[i]] != counts[categories[j]] {
			return counts[categories[i]] > counts[categories[j]]
		}
		return categories[i] < categories[j]
	})
	for _, c := range categories {
		_, _ = fmt.Fprintf(w, "  %-26s %d\n", c, counts[c])
	}
	for _, warning := range doc.Warnings {
		_, _ = fmt.Fprintf(w, "  warning: %s\n", warning)
	}
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()
	return write(f)
}
