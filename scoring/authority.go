package scoring

import "github.com/aeo-audit/backend/extractor"

// scoreAuthority measures provenance signals. Budget: author_information 6,
// publication_dates 4, citations_sources 5, organization_info 3.
func scoreAuthority(page *extractor.PageRepresentation) CategoryScore {
	author := scoreAuthorInfo(page)
	dates := scorePublicationDates(page)
	citations := scoreCitations(page)
	org := scoreOrganizationInfo(page)

	return finishCategory(CategoryScore{
		RawScore: author + dates + citations + org,
		RawMax:   categoryMax[CategoryAuthority],
		SubScores: map[string]float64{
			"author_information": round1(author),
			"publication_dates":  round1(dates),
			"citations_sources":  round1(citations),
			"organization_info":  round1(org),
		},
	})
}

// Author information (max 6): any byline earns 4, structured author data
// in JSON-LD earns the remainder.
func scoreAuthorInfo(page *extractor.PageRepresentation) float64 {
	if !page.Author.Found {
		return 0
	}
	score := 4.0
	for _, source := range page.Author.Sources {
		if source == "jsonld" {
			score += 2
			break
		}
	}
	return score
}

// Publication dates (max 4): published date matters more than modified.
func scorePublicationDates(page *extractor.PageRepresentation) float64 {
	score := 0.0
	if page.Dates.Published != "" {
		score += 3
	}
	if page.Dates.Modified != "" {
		score++
	}
	return score
}

// Citations (max 5): half a point per external reference link.
func scoreCitations(page *extractor.PageRepresentation) float64 {
	score := float64(len(page.ExternalLinks)) * 0.5
	if score > 5 {
		score = 5
	}
	return score
}

// Organization info (max 3): Organization schema present or not.
func scoreOrganizationInfo(page *extractor.PageRepresentation) float64 {
	if page.HasSchemaType("Organization") {
		return 3
	}
	return 0
}
