// Package audit wires fetching, extraction, classification, and scoring into
// the end-to-end page audit flow.
package audit

import (
	"context"
	"log"
	"time"

	"github.com/aeo-audit/backend/classifier"
	"github.com/aeo-audit/backend/extractor"
	"github.com/aeo-audit/backend/fetcher"
	"github.com/aeo-audit/backend/recommend"
	"github.com/aeo-audit/backend/scoring"
)

// PageAudit is the complete outcome of one page audit. A failed fetch still
// yields a well-formed result with a zero score and the Error field set.
type PageAudit struct {
	URL             string                         `json:"url"`
	Success         bool                           `json:"success"`
	Error           string                         `json:"error,omitempty"`
	FetchStrategy   string                         `json:"fetch_strategy,omitempty"`
	Page            *extractor.PageRepresentation  `json:"page,omitempty"`
	Classification  classifier.Classification      `json:"classification"`
	Score           scoring.Result                 `json:"score"`
	Recommendations []recommend.Recommendation     `json:"recommendations,omitempty"`
	AuditedAt       string                         `json:"audited_at"`
	DurationMs      int64                          `json:"duration_ms"`
}

// Pipeline runs single-page audits. It is safe for concurrent use; each
// audit owns its own PageRepresentation and never shares mutable state.
type Pipeline struct {
	selector   *fetcher.Selector
	extractor  *extractor.Extractor
	calculator *scoring.Calculator
}

func NewPipeline(selector *fetcher.Selector, calculator *scoring.Calculator) *Pipeline {
	return &Pipeline{
		selector:   selector,
		extractor:  extractor.New(),
		calculator: calculator,
	}
}

// AuditPage runs the full fetch, extract, classify, score, recommend sequence
// for one URL. Failures are converted to degraded results rather than errors;
// only the caller decides whether a zero-score audit is fatal.
func (p *Pipeline) AuditPage(ctx context.Context, pageURL string, opts scoring.Options) *PageAudit {
	start := time.Now()
	log.Printf("Auditing %s", pageURL)

	fetch := p.selector.Fetch(ctx, pageURL)
	if fetch.Failed() {
		log.Printf("Audit of %s failed at fetch: %s", pageURL, fetch.Error)
		return p.failedAudit(pageURL, fetch.Error, start)
	}

	page, err := p.extractor.Extract(fetch.HTML, fetch.FinalURL)
	if err != nil {
		log.Printf("Audit of %s failed at extraction: %v", pageURL, err)
		return p.failedAudit(pageURL, "extraction failed: "+err.Error(), start)
	}

	// Fetch-level fields are filled here so extraction itself stays
	// deterministic for a given HTML input.
	page.URL = pageURL
	page.FinalURL = fetch.FinalURL
	page.StatusCode = fetch.StatusCode
	page.FetchedAt = start.UTC().Format(time.RFC3339)
	page.Performance = fetch.Performance

	classification := classifier.Classify(page)
	score := p.calculator.Calculate(page, classification, opts)
	recommendations := recommend.Generate(score)

	return &PageAudit{
		URL:             pageURL,
		Success:         true,
		FetchStrategy:   fetch.Strategy,
		Page:            page,
		Classification:  classification,
		Score:           score,
		Recommendations: recommendations,
		AuditedAt:       start.UTC().Format(time.RFC3339),
		DurationMs:      time.Since(start).Milliseconds(),
	}
}

// failedAudit builds the zeroed but well-formed result for an unusable page.
func (p *Pipeline) failedAudit(pageURL, errMsg string, start time.Time) *PageAudit {
	empty := &extractor.PageRepresentation{URL: pageURL, FinalURL: pageURL}
	classification := classifier.Classification{
		Type:          classifier.Informational,
		Confidence:    "low",
		PrimarySignal: "default",
	}
	score := p.calculator.Calculate(empty, classification, scoring.Options{})
	score.OverallScore = 0
	score.Grade = "F"

	return &PageAudit{
		URL:            pageURL,
		Success:        false,
		Error:          errMsg,
		Classification: classification,
		Score:          score,
		AuditedAt:      start.UTC().Format(time.RFC3339),
		DurationMs:     time.Since(start).Milliseconds(),
	}
}
