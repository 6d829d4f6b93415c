// Package recommend turns audit score gaps into actionable improvement tips.
package recommend

import (
	"sort"

	"github.com/aeo-audit/backend/scoring"
)

// Recommendation is one prioritized improvement suggestion tied to a
// category sub-score.
type Recommendation struct {
	Category    string   `json:"category"`
	SubCategory string   `json:"sub_category"`
	Title       string   `json:"title"`
	Score       float64  `json:"current_score"`
	MaxScore    float64  `json:"max_score"`
	Percentage  float64  `json:"percentage"`
	Priority    int      `json:"priority"`
	Tips        []string `json:"tips"`
}

// Tier thresholds on the category percentage. Below 40 percent the page
// needs fundamentals; below 75 refinement; above that maintenance.
const (
	lowTier    = 40.0
	mediumTier = 75.0
)

const maxRecommendations = 10

type subCategoryTips struct {
	title  string
	low    []string
	medium []string
	high   []string
}

// Generate produces up to ten recommendations sorted by score gap, the
// weakest categories first.
func Generate(result scoring.Result) []Recommendation {
	var recs []Recommendation

	for category, score := range result.Breakdown {
		categoryTips, ok := tips[category]
		if !ok {
			continue
		}

		var tier string
		var priority int
		switch {
		case score.Percentage < lowTier:
			tier = "low"
			priority = 100
		case score.Percentage < mediumTier:
			tier = "medium"
			priority = 75
		default:
			tier = "high"
			priority = 50
		}

		for subCategory := range score.SubScores {
			sub, ok := categoryTips[subCategory]
			if !ok {
				continue
			}
			var tierTips []string
			switch tier {
			case "low":
				tierTips = sub.low
			case "medium":
				tierTips = sub.medium
			default:
				tierTips = sub.high
			}
			if len(tierTips) == 0 {
				continue
			}
			if len(tierTips) > 3 {
				tierTips = tierTips[:3]
			}
			recs = append(recs, Recommendation{
				Category:    category,
				SubCategory: subCategory,
				Title:       "Improve " + sub.title,
				Score:       score.RawScore,
				MaxScore:    score.RawMax,
				Percentage:  score.Percentage,
				Priority:    priority,
				Tips:        tierTips,
			})
		}
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Priority != recs[j].Priority {
			return recs[i].Priority > recs[j].Priority
		}
		if recs[i].Percentage != recs[j].Percentage {
			return recs[i].Percentage < recs[j].Percentage
		}
		if recs[i].Category != recs[j].Category {
			return recs[i].Category < recs[j].Category
		}
		return recs[i].SubCategory < recs[j].SubCategory
	})

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}
