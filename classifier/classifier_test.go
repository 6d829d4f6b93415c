package classifier

import (
	"strings"
	"testing"

	"github.com/aeo-audit/backend/extractor"
)

func TestClassifyMetaTagShortCircuit(t *testing.T) {
	page := &extractor.PageRepresentation{
		URL:      "https://example.com/shop/product",
		MetaTags: map[string]string{"aeo:content-type": "experiential"},
		// Strong transactional signals that the meta tag must override
		SchemaTypes: []string{"Product"},
		JSONLD:      []extractor.JSONLDBlock{{Type: "Product"}},
	}

	result := Classify(page)
	if result.Type != Experiential {
		t.Errorf("Expected experiential from meta tag, got %s", result.Type)
	}
	if result.Confidence != "high" {
		t.Errorf("Expected high confidence, got %s", result.Confidence)
	}
	if result.PrimarySignal != "explicit_meta_tag" {
		t.Errorf("Expected explicit_meta_tag signal, got %s", result.PrimarySignal)
	}
}

func TestClassifyInvalidMetaTagIgnored(t *testing.T) {
	page := &extractor.PageRepresentation{
		URL:      "https://example.com/blog/guide",
		MetaTags: map[string]string{"aeo:content-type": "something-else"},
	}

	result := Classify(page)
	if result.PrimarySignal == "explicit_meta_tag" {
		t.Error("Unrecognized meta value must not short-circuit")
	}
}

func TestClassifySchemaSignal(t *testing.T) {
	tests := []struct {
		schemaType string
		want       string
	}{
		{"Article", Informational},
		{"Event", Experiential},
		{"Product", Transactional},
		{"CollectionPage", Navigational},
	}

	for _, tt := range tests {
		t.Run(tt.schemaType, func(t *testing.T) {
			page := &extractor.PageRepresentation{
				URL:      "https://example.com/page",
				MetaTags: map[string]string{},
				JSONLD:   []extractor.JSONLDBlock{{Type: tt.schemaType}},
			}
			result := Classify(page)
			if result.Type != tt.want {
				t.Errorf("Schema %s: expected %s, got %s", tt.schemaType, tt.want, result.Type)
			}
			if result.Confidence != "high" {
				t.Errorf("Schema signal alone carries weight 3, expected high confidence, got %s", result.Confidence)
			}
		})
	}
}

func TestClassifyURLPatterns(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/blog/how-to-rank", Informational},
		{"https://example.com/product/widget", Transactional},
		{"https://example.com/travel/rome", Experiential},
		{"https://example.com/category/tools", Navigational},
	}

	for _, tt := range tests {
		page := &extractor.PageRepresentation{URL: tt.url, MetaTags: map[string]string{}}
		result := Classify(page)
		if result.Type != tt.want {
			t.Errorf("URL %s: expected %s, got %s", tt.url, tt.want, result.Type)
		}
	}
}

func TestClassifyKeywordHeuristicCapped(t *testing.T) {
	// A wall of transactional keywords must cap at 3, not swamp a schema signal
	content := strings.Repeat("buy purchase price cost order checkout ", 50)
	page := &extractor.PageRepresentation{
		URL:         "https://example.com/page",
		MetaTags:    map[string]string{},
		MainContent: content,
		JSONLD:      []extractor.JSONLDBlock{{Type: "Article"}},
	}

	result := Classify(page)
	if result.Scores[Transactional] > 3 {
		t.Errorf("Keyword score must cap at 3, got %d", result.Scores[Transactional])
	}
	// Schema weight 3 ties keyword cap 3; priority order resolves to informational
	if result.Type != Informational {
		t.Errorf("Expected informational on tie, got %s", result.Type)
	}
}

func TestClassifyStructuralSignals(t *testing.T) {
	t.Run("Experiential", func(t *testing.T) {
		page := &extractor.PageRepresentation{
			URL:        "https://example.com/page",
			MetaTags:   map[string]string{},
			ImageCount: 9,
			VideoCount: 3,
		}
		if result := Classify(page); result.Type != Experiential {
			t.Errorf("Expected experiential for media-heavy page, got %s", result.Type)
		}
	})

	t.Run("Transactional", func(t *testing.T) {
		page := &extractor.PageRepresentation{
			URL:         "https://example.com/page",
			MetaTags:    map[string]string{},
			FormCount:   1,
			ButtonCount: 8,
			ButtonText:  "add to cart checkout continue",
		}
		if result := Classify(page); result.Type != Transactional {
			t.Errorf("Expected transactional for commerce buttons, got %s", result.Type)
		}
	})

	t.Run("Navigational", func(t *testing.T) {
		page := &extractor.PageRepresentation{
			URL:         "https://example.com/page",
			MetaTags:    map[string]string{},
			AnchorCount: 80,
		}
		if result := Classify(page); result.Type != Navigational {
			t.Errorf("Expected navigational for link-dense page, got %s", result.Type)
		}
	})
}

func TestClassifyDefault(t *testing.T) {
	page := &extractor.PageRepresentation{
		URL:      "https://example.com/page",
		MetaTags: map[string]string{},
	}

	result := Classify(page)
	if result.Type != Informational {
		t.Errorf("Expected informational default, got %s", result.Type)
	}
	if result.Confidence != "low" {
		t.Errorf("Expected low confidence default, got %s", result.Confidence)
	}
}

// Equal score vectors must resolve identically on every run.
func TestClassifyTieBreakDeterminism(t *testing.T) {
	// Keyword heuristics tie experiential and transactional at 1 apiece
	page := &extractor.PageRepresentation{
		URL:         "https://example.com/page",
		MetaTags:    map[string]string{},
		MainContent: "journey adventure explore buy purchase price",
	}

	first := Classify(page).Type
	for i := 0; i < 50; i++ {
		if got := Classify(page).Type; got != first {
			t.Fatalf("Tie-break not deterministic: %s then %s", first, got)
		}
	}
}
