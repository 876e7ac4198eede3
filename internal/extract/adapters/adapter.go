package adapters

import (
	"strings"

	"golang.org/x/net/html"
)

// Article is the content root selected from a fetched page
type Article struct {
	Title   string
	Content *html.Node
	Adapter string
}

// Adapter selects the article body for a family of sites
type Adapter interface {
	// Name returns the adapter name
	Name() string

	// CanHandle checks if this adapter can handle the given URL/content
	CanHandle(url string, contentType string) bool

	// ExtractArticle locates the prose root and removes page chrome from it
	ExtractArticle(doc *html.Node, url string) (*Article, error)
}

// Registry manages site adapters
type Registry struct {
	adapters []Adapter
	generic  Adapter
}

// NewRegistry creates a registry with the built-in adapters
func NewRegistry() *Registry {
	registry := &Registry{
		adapters: make([]Adapter, 0),
	}

	registry.Register(NewWikipediaAdapter())
	registry.Register(NewLegislativeAdapter())

	// Generic adapter is the fallback
	registry.generic = NewGenericAdapter()

	return registry
}

// Register registers a new adapter
func (r *Registry) Register(adapter Adapter) {
	r.adapters = append(r.adapters, adapter)
}

// FindAdapter finds the best adapter for the given URL and content type
func (r *Registry) FindAdapter(url string, contentType string) Adapter {
	for _, adapter := range r.adapters {
		if adapter.CanHandle(url, contentType) {
			return adapter
		}
	}
	return r.generic
}

// BaseAdapter provides DOM helpers shared by adapters
type BaseAdapter struct{}

// chromeElements never carry article prose
var chromeElements = map[string]bool{
	"nav":    true,
	"header": true,
	"footer": true,
	"aside":  true,
	"form":   true,
	"button": true,
	"figure": true,
}

// Title returns the document <title> text
func (b *BaseAdapter) Title(doc *html.Node) string {
	title := b.FindFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "title"
	})
	if title == nil {
		return ""
	}
	return b.ExtractText(title)
}

// ExtractText extracts text content from a node
func (b *BaseAdapter) ExtractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}

	var buf strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		buf.WriteString(b.ExtractText(c))
		buf.WriteString(" ")
	}
	return strings.Join(strings.Fields(buf.String()), " ")
}

// HasClass checks if a node has a specific CSS class
func (b *BaseAdapter) HasClass(n *html.Node, className string) bool {
	if n.Type != html.ElementNode {
		return false
	}

	for _, attr := range n.Attr {
		if attr.Key == "class" {
			for _, class := range strings.Fields(attr.Val) {
				if class == className {
					return true
				}
			}
		}
	}
	return false
}

// GetAttribute gets an attribute value from a node
func (b *BaseAdapter) GetAttribute(n *html.Node, attrKey string) string {
	for _, attr := range n.Attr {
		if attr.Key == attrKey {
			return attr.Val
		}
	}
	return ""
}

// FindAll finds all nodes matching a predicate
func (b *BaseAdapter) FindAll(n *html.Node, predicate func(*html.Node) bool) []*html.Node {
	var results []*html.Node

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if predicate(node) {
			results = append(results, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return results
}

// FindFirst finds the first node matching a predicate
func (b *BaseAdapter) FindFirst(n *html.Node, predicate func(*html.Node) bool) *html.Node {
	var result *html.Node

	var walk func(*html.Node) bool
	walk = func(node *html.Node) bool {
		if predicate(node) {
			result = node
			return true
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}

	walk(n)
	return result
}

// MainContent returns the first <article>, <main> or role=main element, else <body>, else doc
func (b *BaseAdapter) MainContent(doc *html.Node) *html.Node {
	for _, match := range []func(*html.Node) bool{
		func(n *html.Node) bool { return n.Type == html.ElementNode && n.Data == "article" },
		func(n *html.Node) bool { return n.Type == html.ElementNode && n.Data == "main" },
		func(n *html.Node) bool { return n.Type == html.ElementNode && b.GetAttribute(n, "role") == "main" },
		func(n *html.Node) bool { return n.Type == html.ElementNode && n.Data == "body" },
	} {
		if node := b.FindFirst(doc, match); node != nil {
			return node
		}
	}
	return doc
}

// RemoveNodes detaches every descendant of root matching predicate.
// Matches are collected first so the walk never sees a mutated tree.
func (b *BaseAdapter) RemoveNodes(root *html.Node, predicate func(*html.Node) bool) int {
	var doomed []*html.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		doomed = append(doomed, b.FindAll(c, predicate)...)
	}

	removed := 0
	for _, n := range doomed {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
			removed++
		}
	}
	return removed
}

// StripChrome removes navigation, headers, footers and similar page furniture
func (b *BaseAdapter) StripChrome(root *html.Node) {
	b.RemoveNodes(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && chromeElements[n.Data]
	})
}
