package classifier

import (
	"fmt"
	"log"
	"strings"

	"github.com/aeo-audit/backend/extractor"
)

// Content type constants used throughout scoring and reporting.
const (
	Informational = "informational" // how-to, guides, articles, educational
	Experiential  = "experiential"  // experiences, stories, events, travel
	Transactional = "transactional" // products, services, bookings
	Navigational  = "navigational"  // category pages, hubs, indices
)

// typePriority pins the tie-break order when signal scores come out equal, so
// classification is deterministic regardless of map iteration.
var typePriority = []string{Informational, Experiential, Transactional, Navigational}

// Classification is the outcome of the signal cascade: the winning type, how
// strong the evidence was, and the signals that fired along the way.
type Classification struct {
	Type          string         `json:"type"`
	Confidence    string         `json:"confidence"` // high, medium, low
	PrimarySignal string         `json:"primary_signal"`
	AllSignals    []string       `json:"all_signals"`
	Scores        map[string]int `json:"scores,omitempty"`
	Description   string         `json:"description"`
}

// Schema.org @type to content type mapping. A matching schema type is the
// strongest implicit signal.
var schemaTypeMap = map[string]string{
	"Article":          Informational,
	"BlogPosting":      Informational,
	"NewsArticle":      Informational,
	"HowTo":            Informational,
	"FAQPage":          Informational,
	"QAPage":           Informational,
	"TechArticle":      Informational,
	"ScholarlyArticle": Informational,

	"Event":             Experiential,
	"Place":             Experiential,
	"TouristAttraction": Experiential,
	"LodgingBusiness":   Experiential,
	"Restaurant":        Experiential,
	"LocalBusiness":     Experiential,
	"TravelAction":      Experiential,
	"Trip":              Experiential,

	"Product": Transactional,
	"Offer":   Transactional,
	"Service": Transactional,
	"Order":   Transactional,

	"CollectionPage": Navigational,
	"ItemList":       Navigational,
	"WebSite":        Navigational,
}

var experientialKeywords = []string{
	"experience", "journey", "story", "adventure", "explore", "discover",
	"visit", "tour", "trip", "travel", "event", "celebration", "memories",
	"atmosphere", "ambiance", "immerse", "feel", "sense", "witness",
}

var informationalKeywords = []string{
	"how to", "guide", "tutorial", "learn", "understand", "explain",
	"definition", "what is", "why", "when", "steps", "tips", "advice",
	"faq", "question", "answer", "help", "instruction",
}

var transactionalKeywords = []string{
	"buy", "purchase", "price", "cost", "order", "cart", "checkout",
	"add to cart", "book now", "reserve", "subscription", "plan",
	"shipping", "delivery", "payment", "discount", "sale",
}

var urlPatterns = []struct {
	contentType string
	patterns    []string
}{
	{Experiential, []string{
		"/experience", "/event", "/tour", "/visit", "/trip", "/travel",
		"/attraction", "/place", "/story", "/journey",
	}},
	{Transactional, []string{
		"/product", "/shop", "/store", "/buy", "/pricing", "/plans",
		"/checkout", "/cart",
	}},
	{Informational, []string{
		"/blog", "/article", "/guide", "/how-to", "/tutorial", "/faq",
		"/help", "/learn", "/docs", "/wiki",
	}},
	{Navigational, []string{
		"/category", "/archive", "/index", "/sitemap",
	}},
}

var typeDescriptions = map[string]string{
	Informational: "Educational content that answers questions and provides information",
	Experiential:  "Experience-focused content that tells stories and evokes emotion",
	Transactional: "Commerce-focused content for products and services",
	Navigational:  "Hub or index page for navigation and discovery",
}

// Classify runs the signal cascade over an extracted page. An explicit
// aeo:content-type meta tag short-circuits at high confidence; otherwise
// four weighted signal families accumulate into per-type scores and the
// arg-max wins.
func Classify(page *extractor.PageRepresentation) Classification {
	var signals []string
	scores := map[string]int{
		Informational: 0,
		Experiential:  0,
		Transactional: 0,
		Navigational:  0,
	}

	if metaType := checkMetaTag(page); metaType != "" {
		signals = append(signals, "meta_tag:"+metaType)
		return Classification{
			Type:          metaType,
			Confidence:    "high",
			PrimarySignal: "explicit_meta_tag",
			AllSignals:    signals,
			Description:   typeDescriptions[metaType],
		}
	}

	if schemaType := checkSchemaTypes(page); schemaType != "" {
		signals = append(signals, "schema:"+schemaType)
		scores[schemaType] += 3
	}

	if urlType := checkURLPatterns(page.URL); urlType != "" {
		signals = append(signals, "url:"+urlType)
		scores[urlType]++
	}

	for _, contentType := range typePriority {
		if score := keywordScore(page.MainContent, contentType); score > 0 {
			signals = append(signals, fmt.Sprintf("heuristic:%s:%d", contentType, score))
			scores[contentType] += score
		}
	}

	if structureType := checkStructuralPatterns(page); structureType != "" {
		signals = append(signals, "structure:"+structureType)
		scores[structureType]++
	}

	finalType := Informational
	confidence := "low"
	maxScore := 0
	for _, contentType := range typePriority {
		if scores[contentType] > maxScore {
			maxScore = scores[contentType]
			finalType = contentType
		}
	}
	if maxScore >= 3 {
		confidence = "high"
	} else if maxScore >= 2 {
		confidence = "medium"
	}

	primary := "default"
	if len(signals) > 0 {
		primary = signals[0]
	}

	log.Printf("Content classified as %s (confidence: %s)", finalType, confidence)

	return Classification{
		Type:          finalType,
		Confidence:    confidence,
		PrimarySignal: primary,
		AllSignals:    signals,
		Scores:        scores,
		Description:   typeDescriptions[finalType],
	}
}

func checkMetaTag(page *extractor.PageRepresentation) string {
	value := strings.ToLower(strings.TrimSpace(page.MetaTags["aeo:content-type"]))
	switch value {
	case Informational, Experiential, Transactional, Navigational:
		return value
	}
	return ""
}

func checkSchemaTypes(page *extractor.PageRepresentation) string {
	for _, block := range page.JSONLD {
		if mapped, ok := schemaTypeMap[block.Type]; ok {
			return mapped
		}
	}
	return ""
}

func checkURLPatterns(pageURL string) string {
	lower := strings.ToLower(pageURL)
	for _, entry := range urlPatterns {
		for _, pattern := range entry.patterns {
			if strings.Contains(lower, pattern) {
				return entry.contentType
			}
		}
	}
	return ""
}

// keywordScore counts type keywords in visible text, divided by 3 and capped
// at 3 so long pages cannot swamp the stronger signals.
func keywordScore(text, contentType string) int {
	var keywords []string
	switch contentType {
	case Informational:
		keywords = informationalKeywords
	case Experiential:
		keywords = experientialKeywords
	case Transactional:
		keywords = transactionalKeywords
	default:
		return 0
	}

	lower := strings.ToLower(text)
	count := 0
	for _, keyword := range keywords {
		count += strings.Count(lower, keyword)
	}
	score := count / 3
	if score > 3 {
		score = 3
	}
	return score
}

func checkStructuralPatterns(page *extractor.PageRepresentation) string {
	if page.ImageCount+page.VideoCount > 10 {
		return Experiential
	}

	if page.FormCount > 0 || page.ButtonCount > 5 {
		buttonText := strings.ToLower(page.ButtonText)
		for _, word := range []string{"buy", "add to cart", "checkout", "book"} {
			if strings.Contains(buttonText, word) {
				return Transactional
			}
		}
	}

	headings := page.HeadingCount(1) + page.HeadingCount(2) + page.HeadingCount(3)
	if headings > 5 && len(page.Lists) > 3 {
		return Informational
	}

	if page.AnchorCount > 50 {
		return Navigational
	}

	return ""
}
