package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"syscall"
	"testing"
	"time"
)

const articleHTML = "<html><body><article>The Senate passed H.R. 1234.</article></body></html>"

// noSleep disables retry backoff for the duration of the test
func noSleep(t *testing.T) {
	t.Helper()
	orig := fetchSleepFunc
	fetchSleepFunc = func(time.Duration) {}
	t.Cleanup(func() { fetchSleepFunc = orig })
}

func newTestFetcher(maxBytes int64, respectRobots bool) *Fetcher {
	return NewFetcher(5*time.Second, "CivicLens/0.1 (+https://github.com/ppiankov/civiclens)", maxBytes, respectRobots, "", "", "")
}

func TestFetchWithRetry_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "CivicLens/") {
			t.Errorf("unexpected User-Agent %q", ua)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprint(w, articleHTML)
	}))
	defer server.Close()

	result, err := newTestFetcher(1<<20, false).FetchWithRetry(context.Background(), server.URL+"/politics/senate-vote")
	if err != nil {
		t.Fatalf("FetchWithRetry: %v", err)
	}
	if result.HTML != articleHTML {
		t.Errorf("unexpected HTML: %s", result.HTML)
	}
	if result.Truncated {
		t.Error("small body must not be truncated")
	}
	if result.Subject != "senate vote" || result.StatusCode != http.StatusOK {
		t.Errorf("unexpected metadata: subject=%q status=%d", result.Subject, result.StatusCode)
	}
}

func TestFetchWithRetry_RetryPolicy(t *testing.T) {
	tests := []struct {
		name         string
		failures     int32 // responses answered with failStatus before success
		failStatus   int
		wantErr      bool
		wantAttempts int32
	}{
		{"503 then success", 2, http.StatusServiceUnavailable, false, 3},
		{"429 retried", 1, http.StatusTooManyRequests, false, 2},
		{"503 exhausts attempts", 10, http.StatusServiceUnavailable, true, 3},
		{"404 not retried", 10, http.StatusNotFound, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noSleep(t)
			var attempts atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if attempts.Add(1) <= tt.failures {
					w.WriteHeader(tt.failStatus)
					return
				}
				w.Header().Set("Content-Type", "text/html")
				_, _ = fmt.Fprint(w, articleHTML)
			}))
			defer server.Close()

			_, err := newTestFetcher(1<<20, false).FetchWithRetry(context.Background(), server.URL)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got := attempts.Load(); got != tt.wantAttempts {
				t.Errorf("expected %d attempts, got %d", tt.wantAttempts, got)
			}
			if err == nil {
				return
			}

			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected *StatusError in chain, got %T: %v", err, err)
			}
			if statusErr.StatusCode != tt.failStatus {
				t.Errorf("StatusCode = %d, want %d", statusErr.StatusCode, tt.failStatus)
			}
		})
	}
}

func TestFetch_StatusErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestFetcher(1<<20, false).Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if got := err.Error(); got != "unexpected status: 404 404 Not Found" {
		t.Errorf("unexpected error: %s", got)
	}
}

func TestFetchWithRetry_RobotsDisallowed(t *testing.T) {
	noSleep(t)
	var articleHits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /private/\nCrawl-delay: 3\n")
			return
		}
		articleHits.Add(1)
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, articleHTML)
	}))
	defer server.Close()

	fetcher := newTestFetcher(1<<20, true)

	_, err := fetcher.FetchWithRetry(context.Background(), server.URL+"/private/draft")
	if !errors.Is(err, ErrDisallowed) {
		t.Fatalf("expected ErrDisallowed, got %v", err)
	}
	if isRetryableFetchError(err) {
		t.Error("robots.txt refusal must not be retried")
	}
	if got := articleHits.Load(); got != 0 {
		t.Errorf("disallowed article was requested %d times", got)
	}

	if _, err := fetcher.FetchWithRetry(context.Background(), server.URL+"/politics/story"); err != nil {
		t.Fatalf("allowed path failed: %v", err)
	}
	if got := fetcher.CrawlDelay(context.Background(), server.URL+"/politics/story"); got != 3*time.Second {
		t.Errorf("CrawlDelay = %v, want 3s", got)
	}
}

func TestFetch_IgnoresRobotsWhenDisabled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /\n")
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, articleHTML)
	}))
	defer server.Close()

	fetcher := newTestFetcher(1<<20, false)
	if _, err := fetcher.Fetch(context.Background(), server.URL+"/story"); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := fetcher.CrawlDelay(context.Background(), server.URL+"/story"); got != 0 {
		t.Errorf("CrawlDelay = %v, want 0 when robots.txt is ignored", got)
	}
}

func TestFetch_RobotsLookupError(t *testing.T) {
	_, err := newTestFetcher(1<<20, true).Fetch(context.Background(), "ftp://example.com/bill.txt")
	if err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
	if !strings.HasPrefix(err.Error(), "check robots.txt: ") {
		t.Errorf("unexpected error label: %v", err)
	}
}

func TestFetch_Truncation(t *testing.T) {
	body := strings.Repeat("a", 25)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = fmt.Fprint(w, body)
	}))
	defer server.Close()

	tests := []struct {
		name          string
		maxBytes      int64
		wantLen       int
		wantTruncated bool
	}{
		{"over limit", 10, 10, true},
		{"exactly at limit", 25, 25, false},
		{"under limit", 100, 25, false},
		{"unset limit uses default", 0, 25, false},
		{"negative limit uses default", -1, 25, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := newTestFetcher(tt.maxBytes, false).Fetch(context.Background(), server.URL)
			if err != nil {
				t.Fatalf("Fetch: %v", err)
			}
			if len(result.HTML) != tt.wantLen {
				t.Errorf("body length = %d, want %d", len(result.HTML), tt.wantLen)
			}
			if result.Truncated != tt.wantTruncated {
				t.Errorf("Truncated = %v, want %v", result.Truncated, tt.wantTruncated)
			}
		})
	}
}

func TestFetch_ContentType(t *testing.T) {
	tests := []struct {
		contentType string
		wantErr     bool
	}{
		{"text/html; charset=utf-8", false},
		{"text/plain", false},
		{"application/xhtml+xml", false},
		{"", false},
		{"application/pdf", true},
		{"image/png", true},
		{"application/octet-stream", true},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			noSleep(t)
			var attempts atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				attempts.Add(1)
				// An explicit empty value stops net/http from sniffing one
				w.Header()["Content-Type"] = []string{tt.contentType}
				_, _ = fmt.Fprint(w, articleHTML)
			}))
			defer server.Close()

			_, err := newTestFetcher(1<<20, false).FetchWithRetry(context.Background(), server.URL)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), "unsupported content type") {
				t.Errorf("unexpected error: %v", err)
			}
			if got := attempts.Load(); got != 1 {
				t.Errorf("expected a single attempt, got %d", got)
			}
		})
	}
}

func TestIsRetryableFetchError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil", nil, false},
		{"typed 503", &StatusError{StatusCode: 503, Status: "503 Service Unavailable"}, true},
		{"typed 429", &StatusError{StatusCode: 429, Status: "429 Too Many Requests"}, true},
		{"typed 404", &StatusError{StatusCode: 404, Status: "404 Not Found"}, false},
		{"wrapped typed 502", fmt.Errorf("after 3 attempts: %w", &StatusError{StatusCode: 502}), true},
		{"robots refusal", fmt.Errorf("https://example.com/x: %w", ErrDisallowed), false},
		{"canceled", fmt.Errorf("fetch: %w", context.Canceled), false},
		{"refused", fmt.Errorf("fetch: %w", syscall.ECONNREFUSED), true},
		{"reset", fmt.Errorf("fetch: %w", syscall.ECONNRESET), true},
		{"untyped 500", errors.New("unexpected status: 500 Internal Server Error"), true},
		{"untyped 403", errors.New("unexpected status: 403 Forbidden"), false},
		{"untyped refused", errors.New("fetch: connection refused"), true},
		{"fetch EOF", errors.New("fetch: unexpected EOF"), true},
		{"bad request", errors.New("create request: invalid URL"), false},
		{"read body EOF", errors.New("read body: unexpected EOF"), false},
		{"content type", errors.New(`unsupported content type "image/png"`), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableFetchError(tt.err); got != tt.retryable {
				t.Errorf("isRetryableFetchError(%v) = %v, want %v", tt.err, got, tt.retryable)
			}
		})
	}
}
