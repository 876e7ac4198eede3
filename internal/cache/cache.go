package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/ppiankov/civiclens/internal/model"
)

// Cache defines the interface for caching.
// Implementations must be safe for concurrent use.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// TextKey derives the cache key for highlighting text.
// Threshold, mode and tuning are part of the key so differently configured
// pipelines never read each other's results.
func TextKey(text string, threshold float64, mode, tuning string) string {
	h := sha256.New()
	h.Write([]byte(mode))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatFloat(threshold, 'f', -1, 64)))
	h.Write([]byte{0})
	h.Write([]byte(tuning))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return "civiclens:v1:" + hex.EncodeToString(h.Sum(nil))
}

// TuningDigest summarizes the scorer settings and the rule set behind cached
// spans. Retuning weights or keywords, or changing the rules, changes the digest.
func TuningDigest(cfg model.HighlightConfig, rules []string) string {
	h := sha256.New()
	// fmt prints map keys sorted, so equal configs print identically
	_, _ = fmt.Fprintf(h, "%+v", cfg)
	for _, r := range rules {
		h.Write([]byte{0})
		h.Write([]byte(r))
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// New builds the cache described by cfg: memory only when Dir is empty,
// memory over disk otherwise. It returns nil when caching is disabled.
func New(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Dir == "" {
		return NewMemoryCache(cfg.MemoryTTL, 10*time.Minute)
	}
	return NewLayeredCache(cfg.MemoryTTL, cfg.Dir, cfg.DiskTTL)
}

// SpanStore stores span lists in a Cache as JSON
type SpanStore struct {
	cache Cache
	ttl   time.Duration
}

// NewSpanStore wraps c; a nil c yields a store that never hits
func NewSpanStore(c Cache, ttl time.Duration) *SpanStore {
	return &SpanStore{cache: c, ttl: ttl}
}

// Get returns the cached spans for key
func (s *SpanStore) Get(key string) ([]model.Span, bool) {
	if s == nil || s.cache == nil {
		return nil, false
	}
	data, ok := s.cache.Get(key)
	if !ok {
		return nil, false
	}
	var spans []model.Span
	if err := json.Unmarshal(data, &spans); err != nil {
		_ = s.cache.Delete(key)
		return nil, false
	}
	return spans, true
}

// Put stores spans under key
func (s *SpanStore) Put(key string, spans []model.Span) error {
	if s == nil || s.cache == nil {
		return nil
	}
	if spans == nil {
		spans = []model.Span{}
	}
	data, err := json.Marshal(spans)
	if err != nil {
		return fmt.Errorf("marshal spans: %w", err)
	}
	return s.cache.Set(key, data, s.ttl)
}
