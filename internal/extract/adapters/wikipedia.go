package adapters

import (
	"strings"

	"golang.org/x/net/html"
)

// WikipediaAdapter extracts article prose from Wikipedia pages
type WikipediaAdapter struct {
	BaseAdapter
	skipSections []string
}

// NewWikipediaAdapter creates a new Wikipedia adapter
func NewWikipediaAdapter() *WikipediaAdapter {
	return &WikipediaAdapter{
		skipSections: []string{
			"references", "notes", "external links", "further reading", "see also", "bibliography",
		},
	}
}

// Name returns the adapter name
func (a *WikipediaAdapter) Name() string {
	return "wikipedia"
}

// CanHandle checks if this is a Wikipedia URL
func (a *WikipediaAdapter) CanHandle(rawURL string, contentType string) bool {
	return strings.Contains(rawURL, "wikipedia.org")
}

// ExtractArticle keeps the parser output and drops infoboxes, navboxes,
// citation markers and the trailing reference sections
func (a *WikipediaAdapter) ExtractArticle(doc *html.Node, rawURL string) (*Article, error) {
	content := a.FindFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "div" &&
			(a.HasClass(n, "mw-parser-output") || a.GetAttribute(n, "id") == "mw-content-text")
	})
	if content == nil {
		content = a.MainContent(doc)
	}

	a.RemoveNodes(content, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		switch {
		case n.Data == "table" && (a.HasClass(n, "infobox") || a.HasClass(n, "navbox") || a.HasClass(n, "sidebar")):
			return true
		case n.Data == "sup" && a.HasClass(n, "reference"):
			return true
		case a.HasClass(n, "mw-editsection") || a.HasClass(n, "reflist") || a.HasClass(n, "navbox"):
			return true
		}
		return false
	})
	a.dropTrailingSections(content)
	a.StripChrome(content)

	return &Article{
		Title:   strings.TrimSuffix(a.Title(doc), " - Wikipedia"),
		Content: content,
		Adapter: a.Name(),
	}, nil
}

// dropTrailingSections removes everything from the first reference-style h2 onward
func (a *WikipediaAdapter) dropTrailingSections(content *html.Node) {
	header := a.FindFirst(content, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.Data != "h2" {
			return false
		}
		text := strings.ToLower(a.ExtractText(n))
		for _, skip := range a.skipSections {
			if strings.Contains(text, skip) {
				return true
			}
		}
		return false
	})
	if header == nil {
		return
	}

	// Newer skins wrap headings in <div class="mw-heading">
	start := header
	if p := header.Parent; p != nil && p != content && a.HasClass(p, "mw-heading") {
		start = p
	}

	parent := start.Parent
	for n := start; n != nil; {
		next := n.NextSibling
		parent.RemoveChild(n)
		n = next
	}
}
