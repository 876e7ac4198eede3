package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "https://www.congress.gov/bill/117th-congress/house-bill/3684"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// Different host has its own bucket
	if err := limiter.Wait(ctx, "https://www.senate.gov/legislative"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	if err := limiter.Wait(ctx, "article.txt"); err == nil {
		t.Error("expected error for a source without a host")
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	start := time.Now()
	if err := limiter.WaitWithDelay(ctx, "https://news.example.com", 50*time.Millisecond); err != nil {
		t.Fatalf("WaitWithDelay failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("expected delay >= 50ms, got %v", elapsed)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := limiter.WaitWithDelay(cancelled, "https://other.example.com", time.Minute); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestLimiter_RateLimit(t *testing.T) {
	limiter := NewLimiter(1, 1)
	ctx := context.Background()
	url := "https://news.example.com/politics"

	if err := limiter.Wait(ctx, url); err != nil {
		t.Errorf("first wait failed: %v", err)
	}

	// Burst of one is spent
	if limiter.Allow(url) {
		t.Error("expected allow to fail (exhausted tokens)")
	}
	// Hosts are case-insensitive
	if limiter.Allow("https://NEWS.example.com/other") {
		t.Error("expected the same bucket for an upper-case host")
	}

	if !limiter.Allow("https://other.example.com") {
		t.Error("expected allow for other domain")
	}
}

func TestLimiter_Unlimited(t *testing.T) {
	limiter := NewLimiter(0, 1)
	for i := 0; i < 100; i++ {
		if !limiter.Allow("https://news.example.com") {
			t.Fatalf("request %d throttled by an unlimited limiter", i)
		}
	}
}

func TestLimiter_SetDomainRate(t *testing.T) {
	limiter := NewLimiter(10, 10)
	domain := "slow.example.com"

	limiter.SetDomainRate(domain, 0.1, 1)

	if !limiter.Allow("https://" + domain) {
		t.Error("first request should pass")
	}
	if limiter.Allow("https://" + domain) {
		t.Error("second request should fail")
	}
	if !limiter.Allow("https://fast.example.com") {
		t.Error("other domain should pass")
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"http://example.com/foo", "example.com", false},
		{"https://WWW.Congress.GOV/bill", "www.congress.gov", false},
		{"::invalid", "", true},
		{"/tmp/article.html", "", true},
	}

	for _, tt := range tests {
		got, err := extractDomain(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("extractDomain(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("extractDomain(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
