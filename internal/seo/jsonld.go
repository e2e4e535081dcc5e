package seo

import (
	"encoding/json"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Person returns the schema.org Person describing the artist.
func Person(name, jobTitle, url string, sameAs []string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Person",
		"name":     name,
	}
	if jobTitle != "" {
		m["jobTitle"] = jobTitle
	}
	if url != "" {
		m["url"] = url
	}
	if len(sameAs) > 0 {
		m["sameAs"] = sameAs
	}
	return m
}

// Work is one portfolio entry in the ItemList.
type Work struct {
	Name     string
	URL      string
	Image    string
	Keywords []string
}

// WorkList builds a schema.org ItemList of CreativeWork entries.
func WorkList(author string, works []Work) map[string]any {
	el := make([]map[string]any, 0, len(works))
	for i, w := range works {
		item := map[string]any{
			"@type":  "CreativeWork",
			"name":   w.Name,
			"author": map[string]any{"@type": "Person", "name": author},
		}
		if w.URL != "" {
			item["url"] = w.URL
		}
		if w.Image != "" {
			item["image"] = w.Image
		}
		if len(w.Keywords) > 0 {
			item["keywords"] = w.Keywords
		}
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"item":     item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "ItemList",
		"itemListElement": el,
	}
}
