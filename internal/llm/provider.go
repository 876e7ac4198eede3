package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/civiclens/internal/model"
)

var (
	// ErrEmptyResponse is returned when a provider answers without content
	ErrEmptyResponse = errors.New("empty response from LLM provider")

	// ErrProviderDisabled is returned when the remote path is used without a provider
	ErrProviderDisabled = errors.New("LLM provider disabled")
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends one prompt and returns the raw completion text
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for one completion
type CompletionRequest struct {
	// System is the system instruction
	System string

	// Prompt is the user message
	Prompt string

	// Model overrides the configured model (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// JSON asks the provider for a JSON-only response where supported
	JSON bool
}

// CompletionResponse contains the provider's raw output
type CompletionResponse struct {
	// Content is the completion text, expected to hold JSON
	Content string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", "gemini", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic/Gemini
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for the whole remote call
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   20,
		MaxTokens: 2000,
	}
}

// SystemPrompt frames the model as an extractor, not a commentator
const SystemPrompt = "You identify political entities in news text and answer with JSON only. " +
	"You never invent text that is not present in the input."

// BuildPrompt constructs the highlighting prompt for text
func BuildPrompt(text string, threshold float64) string {
	var b strings.Builder

	b.WriteString(`Identify the political entities in the article below.

Categories (use exactly these names):
`)
	for _, c := range model.Categories() {
		fmt.Fprintf(&b, "- %s\n", c)
	}

	fmt.Fprintf(&b, `
RULES:
1. Return only specific, named entities: bill numbers, named acts, agencies, committees, institutions, programs, movements, well-known policy terms.
2. "fullPhrase" must be copied character for character from the article.
3. "startIndex" and "endIndex" are byte offsets of fullPhrase in the article (end exclusive).
4. "term" is the canonical name of the entity (expand acronyms, resolve phrases like "this bill" to the bill they refer to).
5. "relevanceScore" is a number from 1 to 10. Omit anything scoring below %.1f.
6. Prefer the longest complete name; never return overlapping phrases.

Respond with a JSON object of this shape and nothing else:
{"highlights": [{"term": "...", "fullPhrase": "...", "startIndex": 0, "endIndex": 0, "category": "...", "relevanceScore": 0, "explanation": "..."}]}

ARTICLE:
`, threshold)
	b.WriteString(text)

	return b.String()
}
