package extractor

// PageRepresentation is the normalized intermediate form of one fetched page.
// It is built once per audit and never mutated afterwards; every scorer reads
// from it. Numeric fields default to zero and slices to empty so that missing
// data degrades a score instead of breaking one.
type PageRepresentation struct {
	URL        string `json:"url"`
	FinalURL   string `json:"final_url"`
	StatusCode int    `json:"status_code"`
	FetchedAt  string `json:"fetched_at"`

	Title           string `json:"title"`
	MetaDescription string `json:"meta_description"`
	MainContent     string `json:"main_content"`
	WordCount       int    `json:"word_count"`

	Headings   []Heading   `json:"headings"`
	Paragraphs []Paragraph `json:"paragraphs"`
	Lists      []List      `json:"lists"`
	Tables     []Table     `json:"tables"`

	JSONLD      []JSONLDBlock       `json:"jsonld"`
	SchemaTypes []string            `json:"schema_types"`
	FAQSchema   FAQSchema           `json:"faq_schema"`
	MetaTags    map[string]string   `json:"meta_tags"`
	OGTags      map[string]string   `json:"og_tags"`
	TwitterCard map[string]string   `json:"twitter_card"`

	Questions      []Question      `json:"questions"`
	AnswerPatterns []AnswerPattern `json:"answer_patterns"`

	Author        Author      `json:"author"`
	Dates         Dates       `json:"dates"`
	ExternalLinks []string    `json:"external_links"`
	AnchorCount   int         `json:"anchor_count"`
	ImageCount    int         `json:"image_count"`
	VideoCount    int         `json:"video_count"`
	FormCount     int         `json:"form_count"`
	ButtonCount   int         `json:"button_count"`
	ButtonText    string      `json:"button_text"`
	Performance   Performance `json:"performance"`
	IsHTTPS       bool        `json:"is_https"`
}

// Heading is one h1-h6 element in document order.
type Heading struct {
	Level   int      `json:"level"`
	Text    string   `json:"text"`
	ID      string   `json:"id"`
	Classes []string `json:"classes"`
}

type Paragraph struct {
	Text        string `json:"text"`
	WordCount   int    `json:"word_count"`
	HasEmphasis bool   `json:"has_emphasis"`
}

type List struct {
	Type      string   `json:"type"` // "ul" or "ol"
	Items     []string `json:"items"`
	ItemCount int      `json:"item_count"`
}

type Table struct {
	Headers  []string   `json:"headers"`
	Rows     [][]string `json:"rows"`
	RowCount int        `json:"row_count"`
	ColCount int        `json:"col_count"`
}

// JSONLDBlock is one parsed JSON-LD object, or an error placeholder when the
// script body was not valid JSON. Type holds the detected @type ("" when the
// block is an error placeholder or carries no @type).
type JSONLDBlock struct {
	Type  string                 `json:"type"`
	Data  map[string]interface{} `json:"data,omitempty"`
	Error string                 `json:"error,omitempty"`
	Raw   string                 `json:"raw,omitempty"`
}

// FAQSchema summarizes an FAQPage block when present.
type FAQSchema struct {
	Found      bool     `json:"found"`
	QAPairs    []QAPair `json:"qa_pairs"`
	ValidPairs int      `json:"valid_pairs"`
}

type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Valid    bool   `json:"valid"`
}

// Question is a detected question, either from a heading or from an inline
// sentence in the main content.
type Question struct {
	Question string `json:"question"`
	Source   string `json:"source"` // "heading" or "inline"
	Level    int    `json:"level,omitempty"`
	Answer   string `json:"answer,omitempty"`
}

// AnswerPattern is a block formatted to carry a direct answer.
type AnswerPattern struct {
	Type    string `json:"type"` // "tldr", "definition_box" or "blockquote"
	Content string `json:"content"`
}

type Author struct {
	Found   bool     `json:"found"`
	Name    string   `json:"name,omitempty"`
	Sources []string `json:"sources"`
}

type Dates struct {
	Published string   `json:"published,omitempty"`
	Modified  string   `json:"modified,omitempty"`
	Sources   []string `json:"sources"`
}

type Performance struct {
	TTFBMs     float64 `json:"ttfb_ms"`
	DOMLoadMs  float64 `json:"dom_load_ms"`
	PageLoadMs float64 `json:"page_load_ms"`
	FCPMs      float64 `json:"fcp_ms,omitempty"`
}

// H2H3Count returns the number of level 2 and 3 headings, the levels that
// carry question-style section titles.
func (p *PageRepresentation) H2H3Count() int {
	n := 0
	for _, h := range p.Headings {
		if h.Level == 2 || h.Level == 3 {
			n++
		}
	}
	return n
}

// HeadingCount returns the number of headings at the given level.
func (p *PageRepresentation) HeadingCount(level int) int {
	n := 0
	for _, h := range p.Headings {
		if h.Level == level {
			n++
		}
	}
	return n
}

// HasSchemaType reports whether any JSON-LD block declared the given @type.
func (p *PageRepresentation) HasSchemaType(t string) bool {
	for _, st := range p.SchemaTypes {
		if st == t {
			return true
		}
	}
	return false
}
