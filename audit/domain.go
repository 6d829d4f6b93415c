package audit

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/aeo-audit/backend/scoring"
)

// batchSize is how many page audits run concurrently in a domain run.
const batchSize = 3

// DomainAudit aggregates the per-page results of a domain-wide run. Failed
// pages count toward PagesAudited but are excluded from the average.
type DomainAudit struct {
	Domain          string       `json:"domain"`
	PagesAudited    int          `json:"pages_audited"`
	PagesSuccessful int          `json:"pages_successful"`
	AverageScore    float64      `json:"average_score"`
	Grade           string       `json:"grade"`
	BestPage        *PageAudit   `json:"best_page,omitempty"`
	WorstPage       *PageAudit   `json:"worst_page,omitempty"`
	Pages           []*PageAudit `json:"pages"`
	AuditedAt       string       `json:"audited_at"`
	DurationMs      int64        `json:"duration_ms"`
}

// DomainAuditor fans page audits out over discovered URLs in fixed-size
// batches. URL discovery itself belongs to the crawler.
type DomainAuditor struct {
	pipeline *Pipeline
}

func NewDomainAuditor(pipeline *Pipeline) *DomainAuditor {
	return &DomainAuditor{pipeline: pipeline}
}

// AuditDomain audits each URL and aggregates the results. A nil publisher
// disables progress reporting. A single page's failure never aborts its
// batch; the failed result is recorded alongside the successes.
func (d *DomainAuditor) AuditDomain(ctx context.Context, domain string, urls []string, opts scoring.Options, publisher *Publisher) *DomainAudit {
	start := time.Now()
	log.Printf("Starting domain audit of %s (%d pages)", domain, len(urls))

	pages := make([]*PageAudit, len(urls))
	audited := 0

	for batchStart := 0; batchStart < len(urls); batchStart += batchSize {
		batchEnd := batchStart + batchSize
		if batchEnd > len(urls) {
			batchEnd = len(urls)
		}

		var wg sync.WaitGroup
		for i := batchStart; i < batchEnd; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				pages[idx] = d.pipeline.AuditPage(ctx, urls[idx], opts)
			}(i)
		}
		wg.Wait()

		for i := batchStart; i < batchEnd; i++ {
			audited++
			if publisher != nil {
				publisher.Publish(ProgressEvent{
					PagesAudited: audited,
					TotalPages:   len(urls),
					CurrentURL:   pages[i].URL,
					Message:      fmt.Sprintf("Audited %d of %d pages", audited, len(urls)),
				})
			}
		}
	}

	result := &DomainAudit{
		Domain:       domain,
		PagesAudited: len(urls),
		Pages:        pages,
		AuditedAt:    start.UTC().Format(time.RFC3339),
	}

	total := 0.0
	for _, page := range pages {
		if !page.Success {
			continue
		}
		result.PagesSuccessful++
		total += page.Score.OverallScore

		if result.BestPage == nil || page.Score.OverallScore > result.BestPage.Score.OverallScore {
			result.BestPage = page
		}
		if result.WorstPage == nil || page.Score.OverallScore < result.WorstPage.Score.OverallScore {
			result.WorstPage = page
		}
	}
	if result.PagesSuccessful > 0 {
		result.AverageScore = roundScore(total / float64(result.PagesSuccessful))
	}
	result.Grade = gradeForScore(result.AverageScore)
	result.DurationMs = time.Since(start).Milliseconds()

	log.Printf("Domain audit of %s complete: %.1f (%s), %d/%d pages successful",
		domain, result.AverageScore, result.Grade, result.PagesSuccessful, result.PagesAudited)
	return result
}

func roundScore(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

func gradeForScore(score float64) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 80:
		return "A-"
	case score >= 75:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 65:
		return "B-"
	case score >= 60:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 50:
		return "C-"
	default:
		return "F"
	}
}
