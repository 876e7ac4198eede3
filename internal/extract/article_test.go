package extract

import (
	"strings"
	"testing"

	"github.com/ppiankov/civiclens/internal/normalize"
)

func TestArticleHTML_GenericPicksArticle(t *testing.T) {
	page := `<html><head><title>Budget deal</title></head><body>
<nav><a href="/">Home</a> Politics</nav>
<article><h1>Budget deal</h1><p>The Senate passed the continuing resolution.</p>
<aside>Related: sports scores</aside><footer>Copyright</footer></article>
<div class="sidebar">Trending now</div>
</body></html>`

	body, title, err := ArticleHTML(page, "https://news.example.com/story", "text/html")
	if err != nil {
		t.Fatalf("ArticleHTML: %v", err)
	}
	if title != "Budget deal" {
		t.Errorf("title = %q", title)
	}

	text := normalize.Normalize(body)
	if !strings.Contains(text, "The Senate passed the continuing resolution.") {
		t.Errorf("expected article prose, got %q", text)
	}
	for _, chrome := range []string{"Home", "sports scores", "Copyright", "Trending"} {
		if strings.Contains(text, chrome) {
			t.Errorf("expected %q to be stripped, got %q", chrome, text)
		}
	}
}

func TestArticleHTML_WikipediaDropsReferences(t *testing.T) {
	page := `<html><head><title>Inflation Reduction Act - Wikipedia</title></head><body>
<div id="mw-content-text"><div class="mw-parser-output">
<table class="infobox"><tr><td>Enacted by the 117th Congress</td></tr></table>
<p>The Inflation Reduction Act<sup class="reference">[1]</sup> is a law.</p>
<h2>History</h2><p>It passed in 2022.</p>
<h2>References</h2><ol><li>Cited source</li></ol>
</div></div></body></html>`

	body, title, err := ArticleHTML(page, "https://en.wikipedia.org/wiki/Inflation_Reduction_Act", "text/html")
	if err != nil {
		t.Fatalf("ArticleHTML: %v", err)
	}
	if title != "Inflation Reduction Act" {
		t.Errorf("title = %q", title)
	}

	text := normalize.Normalize(body)
	if !strings.Contains(text, "The Inflation Reduction Act is a law.") {
		t.Errorf("expected lead prose without citation marker, got %q", text)
	}
	if !strings.Contains(text, "It passed in 2022.") {
		t.Errorf("expected History section, got %q", text)
	}
	for _, gone := range []string{"[1]", "Cited source", "117th Congress"} {
		if strings.Contains(text, gone) {
			t.Errorf("expected %q to be removed, got %q", gone, text)
		}
	}
}

func TestArticleHTML_LegislativeSummary(t *testing.T) {
	page := `<html><body><header>Congress.gov</header>
<div id="bill-summary"><p>This bill amends the Internal Revenue Code.</p></div>
<div>Other listings</div></body></html>`

	body, _, err := ArticleHTML(page, "https://www.congress.gov/bill/117th-congress/house-bill/5376", "text/html")
	if err != nil {
		t.Fatalf("ArticleHTML: %v", err)
	}
	text := normalize.Normalize(body)
	if text != "This bill amends the Internal Revenue Code." {
		t.Errorf("unexpected summary text %q", text)
	}
}
