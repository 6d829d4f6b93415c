package scoring

import (
	"time"

	"github.com/aeo-audit/backend/extractor"
)

// timeNow is swapped out in tests so freshness scoring is reproducible.
var timeNow = time.Now

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// scoreContentQuality measures depth and maintenance of the content. Budget:
// content_depth 6, unique_value 4, freshness 5.
func scoreContentQuality(page *extractor.PageRepresentation) CategoryScore {
	depth := scoreContentDepth(page)
	unique := scoreUniqueValue(page)
	freshness := scoreFreshness(page)

	return finishCategory(CategoryScore{
		RawScore: depth + unique + freshness,
		RawMax:   categoryMax[CategoryContentQuality],
		SubScores: map[string]float64{
			"content_depth": round1(depth),
			"unique_value":  round1(unique),
			"freshness":     round1(freshness),
		},
	})
}

// Content depth (max 6): word count and section count, three points each.
func scoreContentDepth(page *extractor.PageRepresentation) float64 {
	score := 0.0

	switch {
	case page.WordCount >= 2000:
		score += 3
	case page.WordCount >= 1000:
		score += 2
	case page.WordCount >= 500:
		score++
	}

	sections := page.HeadingCount(2)
	switch {
	case sections >= 8:
		score += 3
	case sections >= 5:
		score += 2
	case sections >= 3:
		score++
	}

	return score
}

// Unique value (max 4): original data presentation beats prose walls.
func scoreUniqueValue(page *extractor.PageRepresentation) float64 {
	score := 0.0
	if len(page.Tables) >= 1 {
		score++
	}
	if len(page.Lists) >= 3 {
		score++
	}
	if page.ImageCount >= 1 {
		score++
	}
	if len(page.AnswerPatterns) >= 1 {
		score++
	}
	return score
}

// Freshness (max 5): tiered on the age of the modified (or published) date.
// Unparseable or missing dates degrade to zero rather than erroring.
func scoreFreshness(page *extractor.PageRepresentation) float64 {
	raw := page.Dates.Modified
	if raw == "" {
		raw = page.Dates.Published
	}
	if raw == "" {
		return 0
	}

	var parsed time.Time
	ok := false
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			parsed = t
			ok = true
			break
		}
	}
	if !ok {
		return 0
	}

	daysOld := timeNow().Sub(parsed).Hours() / 24
	switch {
	case daysOld <= 90:
		return 5
	case daysOld <= 180:
		return 3
	case daysOld <= 365:
		return 2
	default:
		return 1
	}
}
