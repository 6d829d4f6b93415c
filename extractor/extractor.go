package extractor

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/publicsuffix"
)

// Extractor parses raw HTML into a PageRepresentation. It holds no state
// between calls; Extract is a pure function of its inputs so the same HTML
// always produces the same representation.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Extract builds the full PageRepresentation for one page. Fetch-level fields
// (status code, performance, fetched-at) are left for the caller to fill in
// from the fetch result.
func (e *Extractor) Extract(html, pageURL string) (*PageRepresentation, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	page := &PageRepresentation{
		URL:           pageURL,
		FinalURL:      pageURL,
		Headings:      []Heading{},
		Paragraphs:    []Paragraph{},
		Lists:         []List{},
		Tables:        []Table{},
		JSONLD:        []JSONLDBlock{},
		SchemaTypes:   []string{},
		MetaTags:      map[string]string{},
		OGTags:        map[string]string{},
		TwitterCard:   map[string]string{},
		Questions:     []Question{},
		AnswerPatterns: []AnswerPattern{},
		Author:        Author{Sources: []string{}},
		Dates:         Dates{Sources: []string{}},
		ExternalLinks: []string{},
		IsHTTPS:       strings.HasPrefix(pageURL, "https://"),
	}

	// JSON-LD lives in script tags, so it has to come out before noise
	// removal strips scripts and chrome from the text passes.
	extractJSONLD(doc, page)
	doc.Find("script, style, nav, footer").Remove()

	mainSel := findMainContent(doc)
	page.MainContent = normalizeText(mainSel.Text())
	page.WordCount = len(strings.Fields(page.MainContent))

	page.Title = extractTitle(doc)
	extractMetaTags(doc, page)
	extractStructure(doc, page)
	extractQuestions(doc, page)
	extractAnswerPatterns(doc, page)
	extractAuthorAndDates(doc, page, html, pageURL)
	extractExternalLinks(doc, page, pageURL)
	countStructuralSignals(doc, page)

	return page, nil
}

// findMainContent picks the primary content container. Candidates are tried
// in a fixed order and the first match wins; there is no merging.
func findMainContent(doc *goquery.Document) *goquery.Selection {
	candidates := []string{
		"main",
		"article",
		"#content",
		"#mw-content-text",
		"[role=main]",
	}
	for _, sel := range candidates {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}

	// Any element whose class mentions "content".
	var byClass *goquery.Selection
	doc.Find("div[class]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		if strings.Contains(strings.ToLower(class), "content") {
			byClass = s
			return false
		}
		return true
	})
	if byClass != nil {
		return byClass
	}

	return doc.Find("body").First()
}

func extractTitle(doc *goquery.Document) string {
	if t := normalizeText(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return normalizeText(doc.Find("h1").First().Text())
}

func extractMetaTags(doc *goquery.Document, page *PageRepresentation) {
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		content, ok := s.Attr("content")
		if !ok || content == "" {
			return
		}
		if name, ok := s.Attr("name"); ok && name != "" {
			page.MetaTags[name] = content
			if strings.HasPrefix(name, "twitter:") {
				page.TwitterCard[strings.TrimPrefix(name, "twitter:")] = content
			}
			return
		}
		if prop, ok := s.Attr("property"); ok && prop != "" {
			page.MetaTags[prop] = content
			if strings.HasPrefix(prop, "og:") {
				page.OGTags[strings.TrimPrefix(prop, "og:")] = content
			}
		}
	})

	if canonical, ok := doc.Find("link[rel=canonical]").Attr("href"); ok {
		page.MetaTags["canonical"] = canonical
	}
	page.MetaDescription = page.MetaTags["description"]
}

// extractStructure walks headings, paragraphs, lists and tables directly.
func extractStructure(doc *goquery.Document, page *PageRepresentation) {
	for level := 1; level <= 6; level++ {
		lvl := level
		doc.Find(fmt.Sprintf("h%d", level)).Each(func(_ int, s *goquery.Selection) {
			id, _ := s.Attr("id")
			class, _ := s.Attr("class")
			page.Headings = append(page.Headings, Heading{
				Level:   lvl,
				Text:    normalizeText(s.Text()),
				ID:      id,
				Classes: splitClasses(class),
			})
		})
	}

	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := normalizeText(s.Text())
		if len(text) <= 20 { // tiny paragraphs are noise
			return
		}
		page.Paragraphs = append(page.Paragraphs, Paragraph{
			Text:        text,
			WordCount:   len(strings.Fields(text)),
			HasEmphasis: s.Find("strong, b, em, i").Length() > 0,
		})
	})

	doc.Find("ul, ol").Each(func(_ int, s *goquery.Selection) {
		var items []string
		s.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
			items = append(items, normalizeText(li.Text()))
		})
		if len(items) >= 2 {
			page.Lists = append(page.Lists, List{
				Type:      goquery.NodeName(s),
				Items:     items,
				ItemCount: len(items),
			})
		}
	})

	doc.Find("table").Each(func(_ int, s *goquery.Selection) {
		var headers []string
		s.Find("th").Each(func(_ int, th *goquery.Selection) {
			headers = append(headers, normalizeText(th.Text()))
		})

		var rows [][]string
		s.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var cells []string
			tr.Find("td").Each(func(_ int, td *goquery.Selection) {
				cells = append(cells, normalizeText(td.Text()))
			})
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
		})

		if len(rows) > 0 {
			cols := len(headers)
			if cols == 0 {
				cols = len(rows[0])
			}
			page.Tables = append(page.Tables, Table{
				Headers:  headers,
				Rows:     rows,
				RowCount: len(rows),
				ColCount: cols,
			})
		}
	})
}

// extractExternalLinks keeps only anchors pointing off the page's registrable
// domain, deduplicated and capped at 50.
func extractExternalLinks(doc *goquery.Document, page *PageRepresentation, pageURL string) {
	baseDomain := registrableDomain(pageURL)
	seen := map[string]bool{}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if !strings.HasPrefix(href, "http") {
			return
		}
		if registrableDomain(href) == baseDomain {
			return
		}
		if seen[href] || len(page.ExternalLinks) >= 50 {
			return
		}
		seen[href] = true
		page.ExternalLinks = append(page.ExternalLinks, href)
	})
}

// countStructuralSignals gathers the raw element counts the content
// classifier keys off.
func countStructuralSignals(doc *goquery.Document, page *PageRepresentation) {
	page.AnchorCount = doc.Find("a").Length()
	page.ImageCount = doc.Find("img").Length()
	page.VideoCount = doc.Find("video, iframe").Length()
	page.FormCount = doc.Find("form").Length()

	var buttonText []string
	doc.Find("button").Each(func(_ int, s *goquery.Selection) {
		buttonText = append(buttonText, strings.ToLower(normalizeText(s.Text())))
	})
	page.ButtonCount = len(buttonText)
	page.ButtonText = strings.Join(buttonText, " ")
}

// registrableDomain reduces a URL to its eTLD+1 (example.com for
// blog.example.com). Falls back to the bare host when the public suffix
// list has no answer.
func registrableDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if d, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return d
	}
	return host
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func splitClasses(class string) []string {
	if class == "" {
		return []string{}
	}
	return strings.Fields(class)
}
