package adapters

import (
	"strings"

	"golang.org/x/net/html"
)

// LegislativeAdapter extracts bill text and summaries from legislature sites
type LegislativeAdapter struct {
	BaseAdapter
	legislativeDomains map[string]bool
	contentIDs         []string
	contentClasses     []string
}

// NewLegislativeAdapter creates a new legislature site adapter
func NewLegislativeAdapter() *LegislativeAdapter {
	return &LegislativeAdapter{
		legislativeDomains: map[string]bool{
			"congress.gov":        true,
			"govinfo.gov":         true,
			"govtrack.us":         true,
			"senate.gov":          true,
			"house.gov":           true,
			"federalregister.gov": true,
		},
		contentIDs: []string{
			"bill-summary", "billTextContainer", "main-content", "content",
		},
		contentClasses: []string{
			"generated-html-container", "bill-summary", "main-wrapper",
		},
	}
}

// Name returns the adapter name
func (a *LegislativeAdapter) Name() string {
	return "legislative"
}

// CanHandle checks if this is a legislature URL
func (a *LegislativeAdapter) CanHandle(rawURL string, contentType string) bool {
	lowerURL := strings.ToLower(rawURL)

	for domain := range a.legislativeDomains {
		if strings.Contains(lowerURL, domain) {
			return true
		}
	}

	return strings.Contains(lowerURL, "/bill/") ||
		strings.Contains(lowerURL, "/legislation/")
}

// ExtractArticle prefers the bill summary or text container, then falls back to main content
func (a *LegislativeAdapter) ExtractArticle(doc *html.Node, rawURL string) (*Article, error) {
	content := a.FindFirst(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		id := a.GetAttribute(n, "id")
		for _, want := range a.contentIDs {
			if id == want {
				return true
			}
		}
		for _, class := range a.contentClasses {
			if a.HasClass(n, class) {
				return true
			}
		}
		return false
	})

	if content == nil {
		content = a.MainContent(doc)
	}
	a.StripChrome(content)

	return &Article{
		Title:   a.Title(doc),
		Content: content,
		Adapter: a.Name(),
	}, nil
}
