package audit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aeo-audit/backend/fetcher"
	"github.com/aeo-audit/backend/scoring"
)

const testPageHTML = `<!DOCTYPE html>
<html><head>
<title>What Is Answer Engine Optimization?</title>
<meta name="description" content="A practical guide to making pages citable by answer engines.">
<meta name="viewport" content="width=device-width, initial-scale=1">
<script type="application/ld+json">{"@context":"https://schema.org","@type":"Article","author":{"@type":"Person","name":"Jane Smith"},"datePublished":"2026-01-15"}</script>
</head><body>
<main>
<h1>What Is Answer Engine Optimization?</h1>
<p>Answer engine optimization is the practice of structuring content so AI assistants can cite it directly.</p>
<h2>Why does it matter?</h2>
<p>Assistants answer questions without sending a visit, so being the cited source is the new ranking.</p>
<h2>How do you start?</h2>
<p>Begin with direct answers under each question heading and add structured data.</p>
<p>` + "Keep paragraphs short and factual. " + `</p>
<p>Structured data helps machines read the page.</p>
<p>Question headings map to real user queries.</p>
<p>Fresh dates signal maintained content.</p>
<p>Authorship builds trust with answer engines.</p>
<p>Citations to primary sources raise credibility.</p>
<p>Tables make comparisons easy to lift.</p>
<p>Lists break processes into steps.</p>
</main>
</body></html>`

func testPipeline(t *testing.T) *Pipeline {
	t.Helper()
	profiles, err := scoring.LoadProfiles("")
	if err != nil {
		t.Fatalf("LoadProfiles failed: %v", err)
	}
	selector := fetcher.NewSelector("", 0)
	return NewPipeline(selector, scoring.NewCalculator(profiles))
}

func TestAuditPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(testPageHTML))
	}))
	defer server.Close()

	result := testPipeline(t).AuditPage(context.Background(), server.URL, scoring.Options{})

	if !result.Success {
		t.Fatalf("Expected successful audit, got error %q", result.Error)
	}
	if result.FetchStrategy != "http" {
		t.Errorf("Expected http strategy, got %s", result.FetchStrategy)
	}
	if result.Page == nil {
		t.Fatal("Successful audit should carry the page representation")
	}
	if result.Page.URL != server.URL {
		t.Errorf("Page URL mismatch: %s", result.Page.URL)
	}
	if result.Page.Title != "What Is Answer Engine Optimization?" {
		t.Errorf("Unexpected title: %s", result.Page.Title)
	}
	if result.Score.OverallScore <= 0 {
		t.Error("A real content page should score above zero")
	}
	if result.Score.Grade == "" {
		t.Error("Score should carry a grade")
	}
	if result.Classification.Type == "" {
		t.Error("Audit should classify the page")
	}
	if len(result.Recommendations) == 0 {
		t.Error("An imperfect page should yield recommendations")
	}
	if result.AuditedAt == "" {
		t.Error("AuditedAt should be set")
	}
}

func TestAuditPageFetchFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := testPipeline(t).AuditPage(ctx, "http://127.0.0.1:1/unreachable", scoring.Options{})

	if result.Success {
		t.Fatal("Expected failed audit for unreachable URL")
	}
	if result.Error == "" {
		t.Error("Failed audit should explain itself")
	}
	if result.Score.OverallScore != 0 {
		t.Errorf("Failed audit should score zero, got %.1f", result.Score.OverallScore)
	}
	if result.Score.Grade != "F" {
		t.Errorf("Failed audit should grade F, got %s", result.Score.Grade)
	}
	if len(result.Score.Breakdown) == 0 {
		t.Error("Failed audit should still carry a category breakdown")
	}
	if !strings.HasPrefix(result.URL, "http://127.0.0.1:1/") {
		t.Errorf("Result should echo the requested URL, got %s", result.URL)
	}
}
