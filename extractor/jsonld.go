package extractor

import (
	"encoding/json"

	"github.com/PuerkitoBio/goquery"
)

// extractJSONLD parses every application/ld+json script block. A @graph array
// is flattened into its members and a top-level array into its elements. A
// block that fails to parse becomes an error-tagged placeholder; it never
// aborts extraction of the rest of the page.
func extractJSONLD(doc *goquery.Document, page *PageRepresentation) {
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := s.Text()

		var parsed interface{}
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			if len(raw) > 200 {
				raw = raw[:200]
			}
			page.JSONLD = append(page.JSONLD, JSONLDBlock{
				Error: "invalid JSON",
				Raw:   raw,
			})
			return
		}

		switch v := parsed.(type) {
		case map[string]interface{}:
			if graph, ok := v["@graph"].([]interface{}); ok {
				for _, member := range graph {
					appendJSONLDObject(page, member)
				}
				return
			}
			appendJSONLDObject(page, v)
		case []interface{}:
			for _, member := range v {
				appendJSONLDObject(page, member)
			}
		}
	})

	for _, block := range page.JSONLD {
		if block.Error != "" || block.Type == "" {
			continue
		}
		if !page.HasSchemaType(block.Type) {
			page.SchemaTypes = append(page.SchemaTypes, block.Type)
		}
	}

	page.FAQSchema = extractFAQSchema(page.JSONLD)
}

func appendJSONLDObject(page *PageRepresentation, obj interface{}) {
	m, ok := obj.(map[string]interface{})
	if !ok {
		return
	}
	page.JSONLD = append(page.JSONLD, JSONLDBlock{
		Type: schemaType(m),
		Data: m,
	})
}

// schemaType reads @type, which may be a string or an array of strings.
func schemaType(m map[string]interface{}) string {
	switch t := m["@type"].(type) {
	case string:
		return t
	case []interface{}:
		if len(t) > 0 {
			if s, ok := t[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

func extractFAQSchema(blocks []JSONLDBlock) FAQSchema {
	for _, block := range blocks {
		if block.Type != "FAQPage" {
			continue
		}

		faq := FAQSchema{Found: true, QAPairs: []QAPair{}}
		entities, _ := block.Data["mainEntity"].([]interface{})
		for _, e := range entities {
			entity, ok := e.(map[string]interface{})
			if !ok {
				continue
			}
			question, _ := entity["name"].(string)
			var answer string
			if accepted, ok := entity["acceptedAnswer"].(map[string]interface{}); ok {
				answer, _ = accepted["text"].(string)
			}
			if len(answer) > 200 {
				answer = answer[:200]
			}
			pair := QAPair{
				Question: question,
				Answer:   answer,
				Valid:    question != "" && answer != "",
			}
			if pair.Valid {
				faq.ValidPairs++
			}
			faq.QAPairs = append(faq.QAPairs, pair)
		}
		return faq
	}
	return FAQSchema{QAPairs: []QAPair{}}
}
