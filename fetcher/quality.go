package fetcher

import "strings"

// qualityThreshold is the score below which an HTTP fetch is considered a
// JavaScript shell and handed to the renderer.
const qualityThreshold = 30

// Quality is the result of the cheap heuristic check applied to raw HTML
// before committing to the HTTP fetch result.
type Quality struct {
	Score   int      `json:"score"`
	Reasons []string `json:"reasons,omitempty"`
}

var jsShellIndicators = []string{
	"You need to enable JavaScript",
	"Please enable JavaScript",
	"JavaScript is required",
	"This site requires JavaScript",
	"<noscript>",
	"enable-javascript",
}

var spaMarkers = []string{
	`id="root"`,
	`id="app"`,
	`id="__next"`,
	`ng-app`,
	`data-reactroot`,
	`id="___gatsby"`,
}

var contentTags = []string{"<p", "<h1", "<h2", "<article", "<main"}

// AssessQuality scores fetched HTML from 0 to 100. Penalties accumulate for
// signs of an unrendered JavaScript shell; substantial static content earns
// bonuses back up to the cap.
func AssessQuality(result *PageFetchResult) Quality {
	html := result.HTML
	lower := strings.ToLower(html)
	score := 100
	var reasons []string

	if len(html) < 1000 {
		score -= 30
		reasons = append(reasons, "very short document")
	}

	jsHits := 0
	for _, indicator := range jsShellIndicators {
		if strings.Contains(lower, strings.ToLower(indicator)) {
			jsHits++
		}
	}
	if jsHits >= 2 {
		score -= 40
		reasons = append(reasons, "javascript required markers")
	}

	missing := 0
	for _, tag := range contentTags {
		if !strings.Contains(lower, tag) {
			missing++
		}
	}
	if missing >= 4 {
		score -= 30
		reasons = append(reasons, "no content structure")
	}

	spaHits := 0
	for _, marker := range spaMarkers {
		if strings.Contains(html, marker) {
			spaHits++
		}
	}
	if spaHits >= 2 {
		score -= 20
		reasons = append(reasons, "spa mount points")
	}

	if len(html) > 10000 {
		score += 10
	}
	if strings.Count(lower, "<p") > 10 {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return Quality{Score: score, Reasons: reasons}
}
