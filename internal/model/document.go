package model

import "time"

// Document is the result of highlighting one article
type Document struct {
	Subject     string    `json:"subject,omitempty"`    // Human-readable name of the input (file name, URL slug)
	SourceURL   string    `json:"source_url,omitempty"` // Set when the article was fetched
	ProcessedAt time.Time `json:"processed_at"`

	Text  string `json:"text"`  // Normalized text the span offsets index into
	Spans []Span `json:"spans"` // Final, non-overlapping, ordered by Start

	Source   ResultSource `json:"source"`             // Which path produced Spans
	Warnings []string     `json:"warnings,omitempty"` // Non-fatal notes (fallbacks, fetch issues)
}

// ResultSource records how a span list was produced
type ResultSource string

const (
	ResultLocal  ResultSource = "local"  // Pattern library, scorer, resolvers
	ResultRemote ResultSource = "remote" // LLM collaborator, then resolvers
	ResultCache  ResultSource = "cache"  // Served from the result cache
)

// CountByCategory tallies final spans per category
func (d *Document) CountByCategory() map[Category]int {
	counts := make(map[Category]int)
	for _, s := range d.Spans {
		counts[s.Category]++
	}
	return counts
}
