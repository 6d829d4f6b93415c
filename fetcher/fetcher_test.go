package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchHTTP(t *testing.T) {
	body := "<html><body><article><h1>Hi</h1>" +
		strings.Repeat("<p>Plenty of static words in this paragraph right here.</p>", 30) +
		"<h2>More</h2><main></main></body></html>"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer server.Close()

	s := NewSelector("", 5*time.Second)
	result := s.Fetch(context.Background(), server.URL)

	if result.Failed() {
		t.Fatalf("Unexpected fetch error: %s", result.Error)
	}
	if result.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", result.StatusCode)
	}
	if result.Strategy != "http" {
		t.Errorf("Expected http strategy, got %s", result.Strategy)
	}
	if result.HTML != body {
		t.Error("Body mismatch")
	}
	if result.Performance.TTFBMs < 0 {
		t.Error("Expected non-negative TTFB")
	}
}

func TestFetchErrorResult(t *testing.T) {
	s := NewSelector("", 2*time.Second)
	s.maxRetries = 1 // Skip backoff in tests

	// Nothing listens on this port
	result := s.Fetch(context.Background(), "http://127.0.0.1:1/page")

	if !result.Failed() {
		t.Fatal("Expected a failed result")
	}
	if result.Error == "" {
		t.Error("Expected error string in result")
	}
	if result.URL != "http://127.0.0.1:1/page" {
		t.Errorf("Result should carry the requested URL, got %s", result.URL)
	}
}

func TestFetchLowQualityWithoutRenderer(t *testing.T) {
	// A JS shell with no render service configured still returns the HTTP
	// result rather than failing.
	shell := `<html><body><div id="root"></div><div id="app"></div><noscript>You need to enable JavaScript. Please enable JavaScript.</noscript></body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(shell))
	}))
	defer server.Close()

	s := NewSelector("", 5*time.Second)
	result := s.Fetch(context.Background(), server.URL)

	if result.Failed() {
		t.Fatalf("Expected HTTP fallback result, got error: %s", result.Error)
	}
	if result.Strategy != "http" {
		t.Errorf("Expected http strategy, got %s", result.Strategy)
	}
}

func TestRequiresJavaScript(t *testing.T) {
	s := NewSelector("", time.Second)

	tests := []struct {
		url  string
		want bool
	}{
		{"https://medium.com/@user/some-post", true},
		{"https://www.medium.com/post", true},
		{"https://blog.medium.com/post", true},
		{"https://someone.github.io/project/", true},
		{"https://example.com/article", false},
		{"https://docs.example.org/", false},
	}

	for _, tt := range tests {
		if got := s.requiresJavaScript(tt.url); got != tt.want {
			t.Errorf("requiresJavaScript(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestRendererNotConfigured(t *testing.T) {
	r := NewRenderer("", time.Second)
	result := r.Fetch(context.Background(), "https://example.com/")

	if !result.Failed() {
		t.Fatal("Expected failure without an endpoint")
	}
	if result.Strategy != "render" {
		t.Errorf("Expected render strategy, got %s", result.Strategy)
	}
}

func TestRendererFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/render" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("url") == "" {
			http.Error(w, "missing url", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"html": "<html><body><p>rendered</p></body></html>", "status_code": 200, "ttfb_ms": 120, "page_load_ms": 900}`))
	}))
	defer server.Close()

	r := NewRenderer(server.URL, 5*time.Second)
	result := r.Fetch(context.Background(), "https://example.com/spa")

	if result.Failed() {
		t.Fatalf("Render fetch failed: %s", result.Error)
	}
	if !strings.Contains(result.HTML, "rendered") {
		t.Error("Expected rendered HTML body")
	}
	if result.Performance.TTFBMs != 120 {
		t.Errorf("Expected TTFB 120, got %f", result.Performance.TTFBMs)
	}
	if result.Strategy != "render" {
		t.Errorf("Expected render strategy, got %s", result.Strategy)
	}
}
