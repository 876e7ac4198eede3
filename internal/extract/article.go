package extract

import (
	"fmt"
	"strings"

	"github.com/ppiankov/civiclens/internal/extract/adapters"
	"golang.org/x/net/html"
)

var defaultRegistry = adapters.NewRegistry()

// ArticleHTML selects the article body from a fetched page and returns it
// re-rendered as HTML, ready for normalization, along with the page title
func ArticleHTML(htmlContent, sourceURL, contentType string) (body string, title string, err error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	adapter := defaultRegistry.FindAdapter(sourceURL, contentType)
	article, err := adapter.ExtractArticle(doc, sourceURL)
	if err != nil {
		return "", "", fmt.Errorf("%s adapter: %w", adapter.Name(), err)
	}

	var buf strings.Builder
	if err := html.Render(&buf, article.Content); err != nil {
		return "", "", fmt.Errorf("failed to render article body: %w", err)
	}
	return buf.String(), article.Title, nil
}
