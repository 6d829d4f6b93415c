package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var questionStart = regexp.MustCompile(`(?i)^(How|What|Why|When|Where|Who|Which|Can|Is|Does|Do|Will|Should|Are)\b`)
var questionPhrase = regexp.MustCompile(`(?i)(how to|what is|why does|when to)`)

// extractQuestions runs two independent passes: question-style headings
// (h2-h4) and inline sentences. Both feed the same Questions sequence,
// tagged by source.
func extractQuestions(doc *goquery.Document, page *PageRepresentation) {
	doc.Find("h2, h3, h4").Each(func(_ int, s *goquery.Selection) {
		text := normalizeText(s.Text())
		if text == "" {
			return
		}
		if !strings.Contains(text, "?") && !isQuestionPattern(text) {
			return
		}
		level := int(goquery.NodeName(s)[1] - '0')
		page.Questions = append(page.Questions, Question{
			Question: text,
			Source:   "heading",
			Level:    level,
			Answer:   answerAfterHeading(s),
		})
	})

	for _, sentence := range strings.Split(page.MainContent, ".") {
		sentence = strings.TrimSpace(sentence)
		if strings.Contains(sentence, "?") && len(sentence) > 10 {
			page.Questions = append(page.Questions, Question{
				Question: sentence,
				Source:   "inline",
			})
		}
	}
}

func isQuestionPattern(text string) bool {
	return questionStart.MatchString(text) || questionPhrase.MatchString(text)
}

// answerAfterHeading collects the text immediately following a heading, up to
// the next heading, limited to the first two substantial blocks and 500
// characters.
func answerAfterHeading(heading *goquery.Selection) string {
	var parts []string
	for cur := heading.Next(); cur.Length() > 0 && len(parts) < 2; cur = cur.Next() {
		name := goquery.NodeName(cur)
		if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
			break
		}
		if name == "p" || name == "div" {
			text := normalizeText(cur.Text())
			if len(text) > 20 {
				parts = append(parts, text)
			}
		}
	}
	answer := strings.Join(parts, " ")
	if len(answer) > 500 {
		answer = answer[:500]
	}
	return answer
}

var answerClassKeywords = []string{"definition", "callout", "highlight", "answer", "tldr", "summary"}

var tldrPrefixes = []string{"tldr", "tl;dr", "in short", "quick answer", "the answer is", "summary:"}

// extractAnswerPatterns detects blocks formatted as direct answers: callout
// and definition boxes, TL;DR openers, and blockquotes.
func extractAnswerPatterns(doc *goquery.Document, page *PageRepresentation) {
	doc.Find("[class]").Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		lower := strings.ToLower(class)
		matched := false
		for _, kw := range answerClassKeywords {
			if strings.Contains(lower, kw) {
				matched = true
				break
			}
		}
		if !matched {
			return
		}
		text := normalizeText(s.Text())
		if len(text) > 20 {
			page.AnswerPatterns = append(page.AnswerPatterns, AnswerPattern{
				Type:    "definition_box",
				Content: truncate(text, 300),
			})
		}
	})

	doc.Find("div, p, section").Each(func(_ int, s *goquery.Selection) {
		text := normalizeText(s.Text())
		lower := strings.ToLower(text)
		for _, prefix := range tldrPrefixes {
			if strings.HasPrefix(lower, prefix) {
				page.AnswerPatterns = append(page.AnswerPatterns, AnswerPattern{
					Type:    "tldr",
					Content: truncate(text, 300),
				})
				break
			}
		}
	})

	doc.Find("blockquote").Each(func(_ int, s *goquery.Selection) {
		text := normalizeText(s.Text())
		if len(text) > 20 {
			page.AnswerPatterns = append(page.AnswerPatterns, AnswerPattern{
				Type:    "blockquote",
				Content: truncate(text, 300),
			})
		}
	})
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
