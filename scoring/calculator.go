package scoring

import (
	"fmt"
	"log"

	"github.com/aeo-audit/backend/classifier"
	"github.com/aeo-audit/backend/extractor"
)

// Options is the caller-supplied knob set for one scoring run.
type Options struct {
	// WeightOverrides replaces individual category weights after profile
	// selection, for callers experimenting with their own calibration.
	WeightOverrides map[string]float64 `json:"weight_overrides,omitempty"`
	// AICitation enables the 0-5 AI citation add-on; without it the add-on
	// scores zero with an explanatory note.
	AICitation bool `json:"include_ai_citation,omitempty"`
	// AICitationScore is the externally measured add-on value, clamped to
	// [0, 5]. Only read when AICitation is set.
	AICitationScore float64 `json:"ai_citation_score,omitempty"`
}

type scorerFunc func(*extractor.PageRepresentation) CategoryScore

// Calculator runs all category scorers over a page and rebalances the
// results through the content-type weight vector.
type Calculator struct {
	profiles map[string]Profile
	scorers  map[string]scorerFunc
}

// NewCalculator builds a calculator over an immutable profile set, typically
// the result of LoadProfiles.
func NewCalculator(profiles map[string]Profile) *Calculator {
	return &Calculator{
		profiles: profiles,
		scorers: map[string]scorerFunc{
			CategoryAnswerability:   scoreAnswerability,
			CategoryStructuredData:  scoreStructuredData,
			CategoryAuthority:       scoreAuthority,
			CategoryContentQuality:  scoreContentQuality,
			CategoryCitationability: scoreCitationability,
			CategoryTechnical:       scoreTechnical,
		},
	}
}

// ProfileFor returns the profile matching a classified content type, falling
// back to the balanced default.
func (c *Calculator) ProfileFor(contentType string) Profile {
	if profile, ok := c.profiles[contentType]; ok {
		return profile
	}
	return c.profiles["default"]
}

// Calculate produces the full aggregated result for one extracted page. A
// panicking scorer zeroes only its own category; the others proceed.
func (c *Calculator) Calculate(page *extractor.PageRepresentation, classification classifier.Classification, opts Options) Result {
	breakdown := make(map[string]CategoryScore, len(categoryOrder))
	for _, category := range categoryOrder {
		breakdown[category] = c.runScorer(category, page)
	}

	profile := c.ProfileFor(classification.Type)
	weights := make(map[string]float64, len(categoryOrder))
	for _, category := range categoryOrder {
		weights[category] = profile.Weight(category)
		if override, ok := opts.WeightOverrides[category]; ok {
			weights[category] = override
		}
	}

	rebalance(breakdown, weights)

	ai := aiCitationScore(opts)

	total := ai.RawScore
	for _, category := range categoryOrder {
		total += breakdown[category].RebalancedScore
	}

	result := Result{
		OverallScore: round1(total),
		Grade:        gradeFor(round1(total)),
		Profile:      profile.Name,
		Breakdown:    breakdown,
		AICitation:   ai,
	}

	log.Printf("Final score for %s: %.1f (%s, profile=%s)",
		page.URL, result.OverallScore, result.Grade, profile.Name)
	return result
}

// runScorer executes one category scorer with panic isolation. A failure
// turns into a zero score with an attached error note.
func (c *Calculator) runScorer(category string, page *extractor.PageRepresentation) (score CategoryScore) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Scorer %s panicked for %s: %v", category, page.URL, r)
			score = CategoryScore{
				RawMax: categoryMax[category],
				Error:  fmt.Sprintf("scorer failed: %v", r),
			}
		}
	}()
	return c.scorers[category](page)
}

// rebalance applies the content-aware weight vector in place. The rebalanced
// maxima always sum to at most 95, keeping headroom for the AI citation
// add-on so the theoretical ceiling stays anchored at 100.
func rebalance(breakdown map[string]CategoryScore, weights map[string]float64) {
	totalWeightedMax := 0.0
	for _, category := range categoryOrder {
		totalWeightedMax += categoryMax[category] * weights[category]
	}
	if totalWeightedMax <= 0 {
		return
	}
	normFactor := 95.0 / totalWeightedMax

	for _, category := range categoryOrder {
		score := breakdown[category]
		weight := weights[category]
		newMax := score.RawMax * weight * normFactor

		pct := 0.0
		if score.RawMax > 0 {
			pct = score.RawScore / score.RawMax
		}

		var rebalanced float64
		switch {
		case weight < 1:
			// De-emphasized categories keep their raw points; only the
			// displayed ceiling shrinks.
			rebalanced = score.RawScore
			if rebalanced > newMax {
				rebalanced = newMax
			}
		case weight > 1 && pct > 0.5:
			// Reward genuine strength in categories that matter for this
			// content type.
			bonus := 1 + (weight-1)*pct
			rebalanced = score.RawScore * bonus
			if rebalanced > newMax {
				rebalanced = newMax
			}
		default:
			rebalanced = pct * (score.RawMax * normFactor)
		}

		score.Weight = weight
		score.RebalancedMax = round1(newMax)
		score.RebalancedScore = round1(rebalanced)
		breakdown[category] = score
	}
}

func aiCitationScore(opts Options) CategoryScore {
	if !opts.AICitation {
		return CategoryScore{
			RawMax: aiCitationMax,
			Note:   "AI citation analysis not performed",
		}
	}
	value := opts.AICitationScore
	if value < 0 {
		value = 0
	}
	if value > aiCitationMax {
		value = aiCitationMax
	}
	score := CategoryScore{
		RawScore: round1(value),
		RawMax:   aiCitationMax,
	}
	score.Percentage = round1(score.RawScore / aiCitationMax * 100)
	score.RebalancedScore = score.RawScore
	score.RebalancedMax = aiCitationMax
	score.Weight = 1
	return score
}

func gradeFor(score float64) string {
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
