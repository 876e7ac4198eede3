package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/ppiankov/civiclens/internal/util"
)

const fetchMaxAttempts = 3

// defaultMaxBodyBytes caps article bodies when no limit is configured
const defaultMaxBodyBytes int64 = 2_000_000

// fetchSleepFunc is the sleep function used between retries (injectable for tests)
var fetchSleepFunc = time.Sleep

// ErrDisallowed is returned when robots.txt forbids fetching a URL
var ErrDisallowed = errors.New("disallowed by robots.txt")

// StatusError reports a non-2xx response
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", e.StatusCode, e.Status)
}

// Fetcher fetches article HTML from URLs
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker // nil when robots.txt is ignored
}

// NewFetcher creates a new Fetcher with the given configuration
func NewFetcher(timeout time.Duration, userAgent string, maxBytes int64, respectRobots bool, httpProxy, httpsProxy, noProxy string) *Fetcher {
	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(httpProxy, httpsProxy, noProxy),
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return fmt.Errorf("stopped after 5 redirects")
			}
			return nil
		},
	}

	if maxBytes <= 0 {
		maxBytes = defaultMaxBodyBytes
	}

	f := &Fetcher{
		httpClient: client,
		userAgent:  userAgent,
		maxBytes:   maxBytes,
	}
	if respectRobots {
		f.robots = util.NewRobotsChecker(userAgent, timeout, client)
	}
	return f
}

// MaxBytes returns the body size limit
func (f *Fetcher) MaxBytes() int64 {
	return f.maxBytes
}

// CrawlDelay returns the robots.txt crawl delay for the URL's host, or 0
func (f *Fetcher) CrawlDelay(ctx context.Context, rawURL string) time.Duration {
	if f.robots == nil {
		return 0
	}
	_, delay, err := f.robots.CanFetch(ctx, rawURL)
	if err != nil {
		return 0
	}
	return delay
}

// FetchResult contains the fetched HTML and metadata
type FetchResult struct {
	HTML        string
	ContentType string
	StatusCode  int
	Subject     string
	FinalURL    string
	Truncated   bool // Body exceeded the size limit
}

// FetchWithRetry fetches rawURL, retrying server errors, 429 and connection failures
// with exponential backoff
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error) {
	var lastErr error
	for attempt := 0; attempt < fetchMaxAttempts; attempt++ {
		if attempt > 0 {
			fetchSleepFunc(time.Duration(1<<(attempt-1)) * time.Second)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := f.Fetch(ctx, rawURL)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !isRetryableFetchError(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("after %d attempts: %w", fetchMaxAttempts, lastErr)
}

// Fetch retrieves HTML content from the given URL
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	if f.robots != nil {
		allowed, _, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("check robots.txt: %w", err)
		}
		if !allowed {
			return nil, fmt.Errorf("%s: %w", rawURL, ErrDisallowed)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !isTextual(contentType) {
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}

	// One extra byte detects truncation
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	truncated := int64(len(body)) > f.maxBytes
	if truncated {
		body = body[:f.maxBytes]
	}

	finalURL := resp.Request.URL.String()

	return &FetchResult{
		HTML:        string(body),
		ContentType: contentType,
		StatusCode:  resp.StatusCode,
		Subject:     extractSubject(finalURL),
		FinalURL:    finalURL,
		Truncated:   truncated,
	}, nil
}

func isTextual(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.HasPrefix(ct, "text/") ||
		strings.Contains(ct, "html") ||
		strings.Contains(ct, "xml")
}

// isRetryableFetchError reports whether a fetch failure is worth another attempt
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500
	}

	if errors.Is(err, ErrDisallowed) || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	// Errors that lost their type on the way up
	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "unexpected status: "):
		code := strings.Fields(strings.TrimPrefix(msg, "unexpected status: "))
		return len(code) > 0 && (code[0] == "429" || strings.HasPrefix(code[0], "5"))
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "EOF") && strings.HasPrefix(msg, "fetch:"):
		return true
	}
	return false
}

// extractSubject extracts a human-readable subject from the URL
func extractSubject(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return parsed.Host
	}

	segments := strings.Split(path, "/")
	last := segments[len(segments)-1]

	// De-slugify: replace underscores and hyphens with spaces
	last = strings.ReplaceAll(last, "_", " ")
	last = strings.ReplaceAll(last, "-", " ")

	if idx := strings.LastIndex(last, "."); idx > 0 {
		last = last[:idx]
	}

	return last
}
