package scoring

import "github.com/aeo-audit/backend/extractor"

// scoreAnswerability measures how directly the page answers user questions.
// Budget: direct_answer_presence 12, question_coverage 8, answer_conciseness 6,
// answer_block_formatting 4.
func scoreAnswerability(page *extractor.PageRepresentation) CategoryScore {
	direct := scoreDirectAnswers(page)
	coverage := scoreQuestionCoverage(page)
	concise := scoreConciseness(page)
	formatting := scoreAnswerFormatting(page)

	return finishCategory(CategoryScore{
		RawScore: direct + coverage + concise + formatting,
		RawMax:   categoryMax[CategoryAnswerability],
		SubScores: map[string]float64{
			"direct_answer_presence":  round1(direct),
			"question_coverage":       round1(coverage),
			"answer_conciseness":      round1(concise),
			"answer_block_formatting": round1(formatting),
		},
	})
}

// Direct answer presence (max 12): two points per answer block, blockquotes
// excluded here since they feed the formatting sub-score instead.
func scoreDirectAnswers(page *extractor.PageRepresentation) float64 {
	blocks := 0
	for _, pattern := range page.AnswerPatterns {
		if pattern.Type != "blockquote" {
			blocks++
		}
	}
	score := float64(blocks * 2)
	if score > 12 {
		score = 12
	}
	return score
}

// Question coverage (max 8): ten detected questions saturate the sub-score.
func scoreQuestionCoverage(page *extractor.PageRepresentation) float64 {
	score := float64(len(page.Questions)) / 10 * 8
	if score > 8 {
		score = 8
	}
	return score
}

// Answer conciseness (max 6): TL;DR block, bullet structure, and short
// average paragraph length each earn two points.
func scoreConciseness(page *extractor.PageRepresentation) float64 {
	score := 0.0

	for _, pattern := range page.AnswerPatterns {
		if pattern.Type == "tldr" {
			score += 2
			break
		}
	}

	if len(page.Lists) >= 3 {
		score += 2
	}

	if len(page.Paragraphs) > 0 {
		totalWords := 0
		for _, p := range page.Paragraphs {
			totalWords += p.WordCount
		}
		if float64(totalWords)/float64(len(page.Paragraphs)) <= 100 {
			score += 2
		}
	}

	return score
}

// Answer block formatting (max 4): emphasis usage, callout-style answer
// blocks, and blockquotes.
func scoreAnswerFormatting(page *extractor.PageRepresentation) float64 {
	score := 0.0

	emphasized := 0
	for _, p := range page.Paragraphs {
		if p.HasEmphasis {
			emphasized++
		}
	}
	if emphasized >= 5 {
		score++
	}

	hasCallout := false
	hasBlockquote := false
	for _, pattern := range page.AnswerPatterns {
		switch pattern.Type {
		case "definition_box", "callout":
			hasCallout = true
		case "blockquote":
			hasBlockquote = true
		}
	}
	if hasCallout {
		score += 2
	}
	if hasBlockquote {
		score++
	}

	return score
}
