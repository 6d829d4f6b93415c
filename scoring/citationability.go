package scoring

import "github.com/aeo-audit/backend/extractor"

// scoreCitationability measures how easily an answer engine can lift and
// attribute statements from the page. Budget: clear_statements_of_fact 4,
// data_tables_lists 3, quotable_blocks 2, stable_anchors 1.
func scoreCitationability(page *extractor.PageRepresentation) CategoryScore {
	facts := scoreClearFacts(page)
	data := scoreDataTablesLists(page)
	quotable := scoreQuotableBlocks(page)
	anchors := scoreStableAnchors(page)

	return finishCategory(CategoryScore{
		RawScore: facts + data + quotable + anchors,
		RawMax:   categoryMax[CategoryCitationability],
		SubScores: map[string]float64{
			"clear_statements_of_fact": round1(facts),
			"data_tables_lists":        round1(data),
			"quotable_blocks":          round1(quotable),
			"stable_anchors":           round1(anchors),
		},
	})
}

// Clear statements of fact (max 4): emphasized paragraphs as a proxy for
// highlighted factual claims.
func scoreClearFacts(page *extractor.PageRepresentation) float64 {
	emphasized := 0
	for _, p := range page.Paragraphs {
		if p.HasEmphasis {
			emphasized++
		}
	}
	score := float64(emphasized) * 0.3
	if score > 4 {
		score = 4
	}
	return score
}

// Data tables and lists (max 3): tables weigh more than lists.
func scoreDataTablesLists(page *extractor.PageRepresentation) float64 {
	tables := float64(len(page.Tables)) * 0.5
	if tables > 1.5 {
		tables = 1.5
	}
	lists := float64(len(page.Lists)) * 0.2
	if lists > 1.5 {
		lists = 1.5
	}
	return tables + lists
}

// Quotable blocks (max 2): blockquote-formatted passages.
func scoreQuotableBlocks(page *extractor.PageRepresentation) float64 {
	count := 0
	for _, pattern := range page.AnswerPatterns {
		if pattern.Type == "blockquote" {
			count++
		}
	}
	if count >= 2 {
		return 2
	}
	return float64(count)
}

// Stable anchors (max 1): headings carrying id attributes allow deep links
// that survive content edits.
func scoreStableAnchors(page *extractor.PageRepresentation) float64 {
	withID := 0
	for _, h := range page.Headings {
		if h.ID != "" {
			withID++
		}
	}
	score := float64(withID) * 0.25
	if score > 1 {
		score = 1
	}
	return score
}
