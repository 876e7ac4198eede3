package pipeline

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/civiclens/internal/model"
	"github.com/ppiankov/civiclens/internal/score"
)

func sampleDocument() *model.Document {
	return &model.Document{
		Subject:     "Hearing",
		SourceURL:   "https://news.example.com/hearing",
		ProcessedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Text:        committeeText,
		Spans: []model.Span{
			remoteSpan(committeeText, "House Energy and Commerce Committee", model.CategoryCongressionalCommittee, 9),
			remoteSpan(committeeText, "H.R. 1234", model.CategoryBillIdentifier, 8.5),
		},
		Source:   model.ResultLocal,
		Warnings: []string{"body truncated at 10 bytes"},
	}
}

func TestHighlightMarkdown(t *testing.T) {
	doc := sampleDocument()
	got := HighlightMarkdown(doc.Text, doc.Spans)
	want := "The **House Energy and Commerce Committee** reviewed **H.R. 1234** today."
	if got != want {
		t.Errorf("HighlightMarkdown() = %q, want %q", got, want)
	}

	if got := HighlightMarkdown("plain", nil); got != "plain" {
		t.Errorf("expected text unchanged without spans, got %q", got)
	}
}

func TestRenderer_WriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(true).WriteJSON(&buf, sampleDocument()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded struct {
		Spans []map[string]any `json:"spans"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded.Spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(decoded.Spans))
	}
	for _, field := range []string{"term", "fullPhrase", "startIndex", "endIndex", "category", "relevanceScore"} {
		if _, ok := decoded.Spans[0][field]; !ok {
			t.Errorf("span JSON missing %q", field)
		}
	}
	if _, ok := decoded.Spans[0]["Source"]; ok {
		t.Error("internal provenance must not be serialized")
	}
}

func TestRenderer_WriteMarkdown(t *testing.T) {
	tests := []struct {
		name       string
		footer     bool
		wantFooter bool
	}{
		{"with footer", true, true},
		{"without footer", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewRenderer(tt.footer).WriteMarkdown(&buf, sampleDocument()); err != nil {
				t.Fatalf("WriteMarkdown: %v", err)
			}
			md := buf.String()

			for _, want := range []string{
				"# Hearing",
				"https://news.example.com/hearing",
				"**H.R. 1234**",
				"| 2 | H.R. 1234 | H.R. 1234 | bill_identifier | 8.5 |",
				"body truncated",
			} {
				if !strings.Contains(md, want) {
					t.Errorf("markdown missing %q", want)
				}
			}
			if got := strings.Contains(md, score.Formula); got != tt.wantFooter {
				t.Errorf("footer present = %v, want %v", got, tt.wantFooter)
			}
		})
	}
}

func TestRenderer_RenderSummary(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(true).RenderSummary(&buf, sampleDocument())

	out := buf.String()
	for _, want := range []string{"Hearing: 2 spans (local)", "bill_identifier", "congressional_committee", "warning: body truncated"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestPipeline_RenderReport(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "out.json")
	mdPath := filepath.Join(dir, "out.md")

	var out bytes.Buffer
	p := New(testConfig())
	if err := p.RenderReport(sampleDocument(), jsonPath, mdPath, true, &out); err != nil {
		t.Fatalf("RenderReport: %v", err)
	}

	for _, path := range []string{jsonPath, mdPath} {
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("expected non-empty %s, got %v", path, err)
		}
	}
	if !strings.Contains(out.String(), "Wrote JSON") {
		t.Errorf("expected verbose progress, got %q", out.String())
	}

	if err := p.RenderReport(sampleDocument(), filepath.Join(dir, "missing", "out.json"), "", false, &out); err == nil {
		t.Error("expected error for unwritable path")
	}
}
