package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// skipElements have their content dropped entirely
var skipElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
	"template": true,
	"svg":      true,
	"head":     true,
}

// inlineElements disappear without leaving a gap so "<b>Medi</b>care" stays one word
var inlineElements = map[string]bool{
	"a": true, "abbr": true, "b": true, "bdi": true, "bdo": true, "cite": true,
	"code": true, "em": true, "font": true, "i": true, "kbd": true, "mark": true,
	"q": true, "s": true, "samp": true, "small": true, "span": true, "strong": true,
	"sub": true, "sup": true, "time": true, "u": true, "var": true, "wbr": true,
}

// eventNames are the DOM events matched by leaked on<event>= handler text
var eventNames = []string{
	"abort", "animation[a-z]*", "auxclick", "beforeunload", "blur", "canplay[a-z]*",
	"change", "click", "contextmenu", "copy", "cut", "dblclick", "drag[a-z]*", "drop",
	"ended", "error", "focus", "focusin", "focusout", "hashchange", "input", "invalid",
	"key(?:down|press|up)", "load", "loadeddata", "loadedmetadata", "loadstart",
	"message", "mouse[a-z]*", "offline", "online", "pagehide", "pageshow", "paste",
	"pause", "play", "playing", "pointer[a-z]*", "popstate", "readystatechange",
	"reset", "resize", "scroll", "select", "storage", "submit", "toggle",
	"touch[a-z]*", "transition[a-z]*", "unload", "visibilitychange", "wheel",
}

var (
	eventHandlerPattern  = regexp.MustCompile(`(?i)\bon(?:` + strings.Join(eventNames, "|") + `)\s*=\s*(?:"[^"]*"|'[^']*')`)
	varDeclPattern       = regexp.MustCompile(`\b(?:var|let|const)\s+[A-Za-z_$][\w$]*\s*=\s*[^;\n]{0,200};`)
	windowAssignPattern  = regexp.MustCompile(`\bwindow\.[\w$.]+\s*=\s*[^;\n]{0,200};`)
	functionPattern      = regexp.MustCompile(`\bfunction\s*[\w$]*\s*\([^)]{0,200}\)\s*\{[^{}]{0,500}\}`)
	urlPattern           = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s<>"']+`)
	trackingCallPattern  = regexp.MustCompile(`\b(?:gtag|fbq|_gaq\.push|ga|dataLayer\.push|_paq\.push|twq|ttq\.track)\s*\([^)]{0,300}\)\s*;?`)
	trackingIDPattern    = regexp.MustCompile(`\b(?:UA-\d{4,10}-\d{1,4}|GTM-[A-Z0-9]{4,10}|G-[A-Z0-9]{8,12})\b`)
	trackingParamPattern = regexp.MustCompile(`\b(?:utm_[a-z]+|fbclid|gclid|mc_eid|mc_cid)=[^\s&]*`)

	whitespacePattern       = regexp.MustCompile(`\s+`)
	spaceBeforePunctPattern = regexp.MustCompile(`\s+([.,!?;:])`)
	missingSpacePattern     = regexp.MustCompile(`([a-z][.!?])([A-Z][a-z])`)
)

// Normalize turns raw article text or HTML into clean prose.
// Decoding runs first, then markup and script artifacts are stripped and
// whitespace is collapsed. The result is idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	if raw == "" {
		return raw
	}

	text := DecodeEntities(raw)
	text = StripMarkup(text)
	text = removeArtifacts(text)
	text = residualEntityPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = spaceBeforePunctPattern.ReplaceAllString(text, "$1")
	text = missingSpacePattern.ReplaceAllString(text, "${1} ${2}")

	return strings.TrimSpace(text)
}

// StripMarkup removes tags and the content of non-prose elements.
// Block-level tags leave a space behind, inline tags leave nothing.
func StripMarkup(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}

	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	b.Grow(len(s))
	skipDepth := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or a tokenizer error; either way the text seen so far is all we get
			return b.String()

		case html.TextToken:
			if skipDepth == 0 {
				b.Write(z.Raw())
			}

		case html.StartTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if skipElements[tag] {
				skipDepth++
				continue
			}
			writeTagGap(&b, tag)

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if skipElements[tag] {
				if skipDepth > 0 {
					skipDepth--
				}
				continue
			}
			writeTagGap(&b, tag)

		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			writeTagGap(&b, string(name))

		case html.CommentToken, html.DoctypeToken:
			b.WriteByte(' ')
		}
	}
}

func writeTagGap(b *strings.Builder, tag string) {
	if inlineElements[tag] {
		return
	}
	b.WriteByte(' ')
}

// removeArtifacts deletes script residue that survived markup stripping:
// inline handlers, JS declarations, URLs and analytics tokens
func removeArtifacts(s string) string {
	for _, re := range []*regexp.Regexp{
		eventHandlerPattern,
		functionPattern,
		varDeclPattern,
		windowAssignPattern,
		trackingCallPattern,
		urlPattern,
		trackingParamPattern,
		trackingIDPattern,
	} {
		s = re.ReplaceAllString(s, " ")
	}
	return s
}
