package adapters

import (
	"golang.org/x/net/html"
)

// GenericAdapter is the fallback adapter for news sites
type GenericAdapter struct {
	BaseAdapter
}

// NewGenericAdapter creates a new generic adapter
func NewGenericAdapter() *GenericAdapter {
	return &GenericAdapter{}
}

// Name returns the adapter name
func (a *GenericAdapter) Name() string {
	return "generic"
}

// CanHandle always returns true (fallback adapter)
func (a *GenericAdapter) CanHandle(url string, contentType string) bool {
	return true
}

// ExtractArticle picks the main content root and strips page chrome from it
func (a *GenericAdapter) ExtractArticle(doc *html.Node, url string) (*Article, error) {
	content := a.MainContent(doc)
	a.StripChrome(content)

	return &Article{
		Title:   a.Title(doc),
		Content: content,
		Adapter: a.Name(),
	}, nil
}
