package model

import "time"

// Config is the complete civiclens configuration.
// Loaded from defaults, then ~/.civiclens/config.yaml, then CIVICLENS_* env vars, then CLI flags.
type Config struct {
	Highlight    HighlightConfig    `yaml:"highlight" mapstructure:"highlight"`
	LLM          LLMConfig          `yaml:"llm" mapstructure:"llm"`
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
}

// HighlightConfig tunes the local relevance scorer.
// All weights are on the 1-10 scale.
type HighlightConfig struct {
	Threshold          float64              `yaml:"threshold" mapstructure:"threshold"`                     // Minimum score that survives to output
	WindowSize         int                  `yaml:"window_size" mapstructure:"window_size"`                 // Context bytes examined on each side of a span
	KeywordBoost       float64              `yaml:"keyword_boost" mapstructure:"keyword_boost"`             // Added per distinct keyword in the window
	MaxBoost           float64              `yaml:"max_boost" mapstructure:"max_boost"`                     // Cap on total keyword boost
	FrequencyThreshold int                  `yaml:"frequency_threshold" mapstructure:"frequency_threshold"` // Occurrences allowed before penalty
	FrequencyPenalty   float64              `yaml:"frequency_penalty" mapstructure:"frequency_penalty"`     // Subtracted per occurrence above threshold
	MaxPenalty         float64              `yaml:"max_penalty" mapstructure:"max_penalty"`                 // Cap on total frequency penalty
	Keywords           []string             `yaml:"keywords" mapstructure:"keywords"`                       // Political discourse keywords
	CategoryWeights    map[Category]float64 `yaml:"category_weights" mapstructure:"category_weights"`       // Base weight per category
}

// LLMConfig configures the optional remote highlighting path
type LLMConfig struct {
	Enabled   bool   `yaml:"enabled" mapstructure:"enabled"`
	Provider  string `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama, gemini
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"api_key"` // Never written to config files
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// HTTPConfig configures article fetching
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS   bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CacheConfig configures the highlight result cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"` // Empty = memory only
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig configures parallel article processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig configures per-domain fetch throttling
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// OutputConfig configures rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json, console
}

// DefaultKeywords is the curated political discourse vocabulary used for context boosts
var DefaultKeywords = []string{
	"vote", "voted", "votes", "legislation", "congress", "congressional", "committee",
	"hearing", "amendment", "senator", "senators", "representative", "lawmakers",
	"bill", "law", "passed", "signed", "veto", "bipartisan", "republican", "republicans",
	"democrat", "democrats", "democratic", "federal", "policy", "regulation",
	"administration", "agency", "testimony", "oversight", "appropriations", "budget",
	"floor", "caucus", "chamber", "ballot", "governor", "president", "statute",
}

// DefaultCategoryWeights ranks explicit citations and well-known agencies highest
// and generic procedural phrases lowest
func DefaultCategoryWeights() map[Category]float64 {
	return map[Category]float64{
		CategoryBillIdentifier:         8,
		CategoryFormalLegislation:      8,
		CategoryCongressionalCommittee: 8,
		CategoryGovernmentAgency:       7,
		CategoryEntitlementProgram:     7,
		CategoryPoliticalInstitution:   6,
		CategoryMovement:               6,
		CategoryPolicyPhrase:           5,
		CategoryOther:                  4,
	}
}

// DefaultHighlightConfig returns the scorer defaults
func DefaultHighlightConfig() HighlightConfig {
	keywords := make([]string, len(DefaultKeywords))
	copy(keywords, DefaultKeywords)

	return HighlightConfig{
		Threshold:          7,
		WindowSize:         100,
		KeywordBoost:       0.5,
		MaxBoost:           2,
		FrequencyThreshold: 5,
		FrequencyPenalty:   1,
		MaxPenalty:         3,
		Keywords:           keywords,
		CategoryWeights:    DefaultCategoryWeights(),
	}
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Highlight: DefaultHighlightConfig(),
		LLM: LLMConfig{
			Enabled:   false, // Remote path is opt-in
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			Timeout:   20,
			MaxTokens: 2000,
		},
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "CivicLens/0.1 (+https://github.com/ppiankov/civiclens)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         4,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}
