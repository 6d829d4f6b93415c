package audit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aeo-audit/backend/scoring"
)

func TestAuditDomain(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		if r.URL.Path == "/thin" {
			w.Write([]byte("<html><head><title>Thin</title></head><body><p>Just one line.</p></body></html>"))
			return
		}
		w.Write([]byte(testPageHTML))
	}))
	defer server.Close()

	urls := []string{
		server.URL + "/guide",
		server.URL + "/thin",
		"http://127.0.0.1:1/unreachable",
	}

	auditor := NewDomainAuditor(testPipeline(t))
	publisher := NewPublisher()
	events := publisher.Subscribe()

	result := auditor.AuditDomain(context.Background(), "example.com", urls, scoring.Options{}, publisher)
	publisher.Close()

	if result.PagesAudited != 3 {
		t.Errorf("Expected 3 pages audited, got %d", result.PagesAudited)
	}
	if result.PagesSuccessful != 2 {
		t.Errorf("Expected 2 successful pages, got %d", result.PagesSuccessful)
	}
	if len(result.Pages) != 3 {
		t.Fatalf("Expected 3 page results, got %d", len(result.Pages))
	}

	// The average covers successful pages only.
	expected := roundScore((result.Pages[0].Score.OverallScore + result.Pages[1].Score.OverallScore) / 2)
	if result.AverageScore != expected {
		t.Errorf("Expected average %.1f over successes, got %.1f", expected, result.AverageScore)
	}
	if result.Grade == "" {
		t.Error("Domain result should carry a grade")
	}

	if result.BestPage == nil || result.WorstPage == nil {
		t.Fatal("Best and worst pages should be set when any page succeeds")
	}
	if result.BestPage.Score.OverallScore < result.WorstPage.Score.OverallScore {
		t.Error("Best page should not score below worst page")
	}
	if !result.BestPage.Success || !result.WorstPage.Success {
		t.Error("Best and worst must come from successful pages")
	}

	// One progress event per audited page, in order.
	var progress []ProgressEvent
	for event := range events {
		progress = append(progress, event)
	}
	if len(progress) != 3 {
		t.Fatalf("Expected 3 progress events, got %d", len(progress))
	}
	for i, event := range progress {
		if event.PagesAudited != i+1 {
			t.Errorf("Event %d: expected pages_audited %d, got %d", i, i+1, event.PagesAudited)
		}
		if event.TotalPages != 3 {
			t.Errorf("Event %d: expected total 3, got %d", i, event.TotalPages)
		}
	}
}

func TestAuditDomainNilPublisher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(testPageHTML))
	}))
	defer server.Close()

	auditor := NewDomainAuditor(testPipeline(t))
	result := auditor.AuditDomain(context.Background(), "example.com", []string{server.URL}, scoring.Options{}, nil)

	if result.PagesSuccessful != 1 {
		t.Errorf("Expected 1 successful page, got %d", result.PagesSuccessful)
	}
}

func TestAuditDomainAllFailed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	auditor := NewDomainAuditor(testPipeline(t))
	result := auditor.AuditDomain(ctx, "example.com", []string{"http://127.0.0.1:1/a", "http://127.0.0.1:1/b"}, scoring.Options{}, nil)

	if result.PagesSuccessful != 0 {
		t.Errorf("Expected 0 successful pages, got %d", result.PagesSuccessful)
	}
	if result.AverageScore != 0 {
		t.Errorf("Expected zero average with no successes, got %.1f", result.AverageScore)
	}
	if result.Grade != "F" {
		t.Errorf("Expected grade F, got %s", result.Grade)
	}
	if result.BestPage != nil || result.WorstPage != nil {
		t.Error("No best or worst page without successes")
	}
}

func TestGradeForScoreBands(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{92, "A+"}, {86, "A"}, {81, "A-"}, {76, "B+"}, {71, "B"},
		{66, "B-"}, {61, "C+"}, {56, "C"}, {51, "C-"}, {49, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		if got := gradeForScore(tt.score); got != tt.want {
			t.Errorf("gradeForScore(%.0f) = %s, want %s", tt.score, got, tt.want)
		}
	}
}
