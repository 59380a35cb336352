package util

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRobotsChecker_CanFetch(t *testing.T) {
	var fetches atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			w.WriteHeader(http.StatusOK)
			return
		}
		fetches.Add(1)
		_, _ = fmt.Fprint(w, "User-agent: claimcheck\nDisallow: /private\nCrawl-delay: 2\n")
	}))
	defer server.Close()

	checker := NewRobotsChecker(server.Client(), "claimcheck/0.1 (+https://example.com)")
	ctx := context.Background()

	allowed, delay, err := checker.CanFetch(ctx, server.URL+"/html/?q=x")
	if err != nil {
		t.Fatalf("CanFetch: %v", err)
	}
	if !allowed {
		t.Error("expected /html/ to be allowed")
	}
	if delay != 2*time.Second {
		t.Errorf("expected crawl delay 2s, got %v", delay)
	}

	allowed, _, _ = checker.CanFetch(ctx, server.URL+"/private/page")
	if allowed {
		t.Error("expected /private to be disallowed")
	}

	if fetches.Load() != 1 {
		t.Errorf("expected robots.txt fetched once, got %d", fetches.Load())
	}

	checker.Clear()
	_, _, _ = checker.CanFetch(ctx, server.URL+"/")
	if fetches.Load() != 2 {
		t.Errorf("expected refetch after Clear, got %d", fetches.Load())
	}
}

func TestRobotsChecker_MissingRobotsAllows(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	checker := NewRobotsChecker(server.Client(), "claimcheck")
	if allowed, _, _ := checker.CanFetch(context.Background(), server.URL+"/anything"); !allowed {
		t.Error("missing robots.txt should allow everything")
	}
}

func TestRobotsChecker_UnreachableAllows(t *testing.T) {
	checker := NewRobotsChecker(&http.Client{Timeout: time.Second}, "claimcheck")
	if allowed, _, _ := checker.CanFetch(context.Background(), "http://127.0.0.1:1/page"); !allowed {
		t.Error("unreachable robots.txt should allow by default")
	}
}

func TestNormalizeUserAgent(t *testing.T) {
	tests := map[string]string{
		"claimcheck/0.1 (+https://github.com/ppiankov/claimcheck)": "claimcheck",
		"Mozilla/5.0 (X11)": "Mozilla",
		"":                  "",
	}
	for in, want := range tests {
		if got := NormalizeUserAgent(in); got != want {
			t.Errorf("NormalizeUserAgent(%q) = %q, want %q", in, got, want)
		}
	}
}
