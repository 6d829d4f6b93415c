package fetcher

import (
	"strings"
	"testing"
)

func TestAssessQuality(t *testing.T) {
	longContent := "<html><body><article><h1>Title</h1><h2>Section</h2>" +
		strings.Repeat("<p>This paragraph carries genuine static content for the checker to see.</p>", 40) +
		"<main></main></body></html>"

	tests := []struct {
		name     string
		html     string
		minScore int
		maxScore int
	}{
		{
			name:     "RichStaticPage",
			html:     longContent,
			minScore: 100,
			maxScore: 100,
		},
		{
			name:     "EmptyShell",
			html:     `<html><body><div id="root"></div><div id="app"></div><noscript>You need to enable JavaScript to run this app. Please enable JavaScript.</noscript></body></html>`,
			minScore: 0,
			maxScore: 29,
		},
		{
			name:     "ShortDocument",
			html:     "<html><body><p>tiny</p></body></html>",
			minScore: 30,
			maxScore: 99,
		},
		{
			name:     "Empty",
			html:     "",
			minScore: 0,
			maxScore: 40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := AssessQuality(&PageFetchResult{HTML: tt.html})
			if q.Score < tt.minScore || q.Score > tt.maxScore {
				t.Errorf("Score %d outside expected range [%d, %d], reasons: %v",
					q.Score, tt.minScore, tt.maxScore, q.Reasons)
			}
		})
	}
}

func TestQualityBounds(t *testing.T) {
	// Worst possible input must still floor at zero
	worst := `<div id="root"></div><div id="app"></div><noscript>Please enable JavaScript. You need to enable JavaScript.</noscript>`
	q := AssessQuality(&PageFetchResult{HTML: worst})
	if q.Score < 0 || q.Score > 100 {
		t.Errorf("Score %d out of [0, 100]", q.Score)
	}
}
