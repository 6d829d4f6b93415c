package scoring

import (
	"strings"

	"github.com/aeo-audit/backend/extractor"
)

// scoreTechnical measures delivery and markup hygiene. Budget: security_https 2,
// page_performance 3, semantic_html 2, mobile_friendly 2, meta_description 1.
func scoreTechnical(page *extractor.PageRepresentation) CategoryScore {
	https := scoreSecurityHTTPS(page)
	performance := scorePagePerformance(page)
	semantic := scoreSemanticHTML(page)
	mobile := scoreMobileFriendly(page)
	meta := scoreMetaDescription(page)

	return finishCategory(CategoryScore{
		RawScore: https + performance + semantic + mobile + meta,
		RawMax:   categoryMax[CategoryTechnical],
		SubScores: map[string]float64{
			"security_https":   round1(https),
			"page_performance": round1(performance),
			"semantic_html":    round1(semantic),
			"mobile_friendly":  round1(mobile),
			"meta_description": round1(meta),
		},
	})
}

func scoreSecurityHTTPS(page *extractor.PageRepresentation) float64 {
	if page.IsHTTPS {
		return 2
	}
	return 0
}

// Page performance (max 3): tiered on time-to-first-byte. A zero TTFB means
// the fetch stage produced no timing, which scores as unknown rather than fast.
func scorePagePerformance(page *extractor.PageRepresentation) float64 {
	ttfb := page.Performance.TTFBMs
	switch {
	case ttfb <= 0:
		return 0
	case ttfb <= 500:
		return 3
	case ttfb <= 1000:
		return 2
	case ttfb <= 2000:
		return 1
	default:
		return 0
	}
}

// Semantic HTML (max 2): a proper heading hierarchy starts with one h1
// followed by h2 sections.
func scoreSemanticHTML(page *extractor.PageRepresentation) float64 {
	score := 0.0
	if page.HeadingCount(1) >= 1 {
		score++
	}
	if page.HeadingCount(2) >= 1 {
		score++
	}
	return score
}

// Mobile friendly (max 2): responsive viewport meta tag.
func scoreMobileFriendly(page *extractor.PageRepresentation) float64 {
	viewport := page.MetaTags["viewport"]
	if viewport == "" {
		return 0
	}
	if strings.Contains(viewport, "width=device-width") {
		return 2
	}
	return 1
}

// Meta description (max 1): present and within the length search engines
// actually display.
func scoreMetaDescription(page *extractor.PageRepresentation) float64 {
	length := len(page.MetaDescription)
	if length >= 50 && length <= 160 {
		return 1
	}
	return 0
}
