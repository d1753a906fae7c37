package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/pressbrief/internal/cache"
)

func newTestFetcher() *Fetcher {
	f := NewFetcher(5*time.Second, "test-agent/1.0", 1_000_000)
	// Tests hit one local host many times; don't let politeness slow them.
	f.limiter = NewLimiter(1000, 1000)
	return f
}

func TestFetch_Basic(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nAllow: /\n"))
			return
		}
		if r.Header.Get("User-Agent") != "test-agent/1.0" {
			t.Errorf("Unexpected User-Agent: %q", r.Header.Get("User-Agent"))
		}
		_, _ = w.Write([]byte("<rss>feed body</rss>"))
	}))
	defer server.Close()

	body, err := newTestFetcher().Fetch(context.Background(), server.URL+"/feed")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(body) != "<rss>feed body</rss>" {
		t.Errorf("Unexpected body: %q", body)
	}
}

func TestFetch_MaxBytesTruncates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 5000)))
	}))
	defer server.Close()

	f := NewFetcher(5*time.Second, "test-agent/1.0", 100)
	f.limiter = NewLimiter(1000, 1000)

	body, err := f.Fetch(context.Background(), server.URL+"/feed")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(body) != 100 {
		t.Errorf("Expected 100 bytes, got %d", len(body))
	}
}

func TestFetch_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nAllow: /\n"))
			return
		}
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	if _, err := newTestFetcher().Fetch(context.Background(), server.URL+"/feed"); err == nil {
		t.Error("Expected error for 410 response")
	}
}

func TestFetch_RobotsDisallow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /feed\n"))
			return
		}
		_, _ = w.Write([]byte("should not be reached"))
	}))
	defer server.Close()

	if _, err := newTestFetcher().Fetch(context.Background(), server.URL+"/feed"); err == nil {
		t.Error("Expected error when robots.txt disallows the path")
	}
}

func TestFetch_RobotsUnavailableAllows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("feed body"))
	}))
	defer server.Close()

	body, err := newTestFetcher().Fetch(context.Background(), server.URL+"/feed")
	if err != nil {
		t.Fatalf("Expected fetch to proceed, got %v", err)
	}
	if string(body) != "feed body" {
		t.Errorf("Unexpected body: %q", body)
	}
}

func TestFetch_CacheHitSkipsNetwork(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nAllow: /\n"))
			return
		}
		hits++
		_, _ = w.Write([]byte("feed body"))
	}))
	defer server.Close()

	f := newTestFetcher().WithCache(cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	for i := 0; i < 3; i++ {
		if _, err := f.Fetch(context.Background(), server.URL+"/feed"); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}
	if hits != 1 {
		t.Errorf("Expected 1 network hit, got %d", hits)
	}
}

func TestLimiter_PerHost(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow("https://a.example.com/feed") {
		t.Error("Expected first request to a.example.com to pass")
	}
	if l.Allow("https://a.example.com/other") {
		t.Error("Expected second request to a.example.com to be limited")
	}
	// A different host has its own budget.
	if !l.Allow("https://b.example.com/feed") {
		t.Error("Expected first request to b.example.com to pass")
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	l := NewLimiter(0.001, 1)
	_ = l.Allow("https://a.example.com/feed") // drain the burst

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, "https://a.example.com/feed"); err == nil {
		t.Error("Expected context deadline error")
	}
}
