package scoring

import "github.com/aeo-audit/backend/extractor"

var coreSchemaTypes = []string{
	"Article", "BlogPosting", "NewsArticle", "WebPage",
	"Person", "Organization", "WebSite",
}

var richSchemaTypes = []string{"FAQPage", "HowTo", "QAPage", "BreadcrumbList"}

// scoreStructuredData measures machine-readable metadata. Budget:
// basic_presence 4, schema_quality 4, faq_schema 4, social_metadata 3.
func scoreStructuredData(page *extractor.PageRepresentation) CategoryScore {
	basic := scoreBasicPresence(page)
	quality := scoreSchemaQuality(page)
	faq := scoreFAQSchema(page)
	social := scoreSocialMetadata(page)

	return finishCategory(CategoryScore{
		RawScore: basic + quality + faq + social,
		RawMax:   categoryMax[CategoryStructuredData],
		SubScores: map[string]float64{
			"basic_presence":  round1(basic),
			"schema_quality":  round1(quality),
			"faq_schema":      round1(faq),
			"social_metadata": round1(social),
		},
	})
}

// Basic presence (max 4): any valid JSON-LD is the big win; pages without
// schema can still earn partial credit from plain meta structure.
func scoreBasicPresence(page *extractor.PageRepresentation) float64 {
	score := 0.0

	validBlocks := 0
	for _, block := range page.JSONLD {
		if block.Error == "" {
			validBlocks++
		}
	}
	if validBlocks >= 2 {
		score += 4
	} else if validBlocks == 1 {
		score += 3
	}

	if og := page.OGTags; og["title"] != "" || og["description"] != "" {
		score++
	}

	// Fallback credit for schema-less pages with sane basic metadata.
	if score == 0 {
		if len(page.Title) > 10 {
			score++
		}
		if len(page.MetaDescription) > 30 {
			score++
		}
		if len(page.Headings) >= 5 {
			score++
		}
	}

	if score > 4 {
		score = 4
	}
	return score
}

// Schema quality (max 4): at least one core type, rich answer-oriented types,
// and breadth of distinct types.
func scoreSchemaQuality(page *extractor.PageRepresentation) float64 {
	score := 0.0

	for _, t := range coreSchemaTypes {
		if page.HasSchemaType(t) {
			score += 2
			break
		}
	}
	for _, t := range richSchemaTypes {
		if page.HasSchemaType(t) {
			score++
			break
		}
	}
	if len(page.SchemaTypes) >= 2 {
		score++
	}

	if score > 4 {
		score = 4
	}
	return score
}

// FAQ schema (max 4): tiered on the number of valid question/answer pairs,
// five or more hitting the top tier.
func scoreFAQSchema(page *extractor.PageRepresentation) float64 {
	faq := page.FAQSchema
	if !faq.Found {
		return 0
	}
	switch {
	case faq.ValidPairs >= 5:
		return 4
	case faq.ValidPairs >= 3:
		return 3
	case faq.ValidPairs >= 1:
		return 2
	default:
		return 1
	}
}

// Social metadata (max 3): Open Graph completeness plus a Twitter card.
func scoreSocialMetadata(page *extractor.PageRepresentation) float64 {
	score := 0.0

	og := page.OGTags
	if og["title"] != "" && og["description"] != "" && og["type"] != "" {
		score += 2
	} else if len(og) > 0 {
		score++
	}

	if page.TwitterCard["card"] != "" {
		score++
	}

	if score > 3 {
		score = 3
	}
	return score
}
