package repository

import (
	"time"

	"github.com/templateworks/backend/internal/docstore"
	"github.com/templateworks/backend/pkg/utils"
)

// placeholderID is the reserved document id used to assert a collection's
// existence. Placeholder documents never leave the repository layer.
const placeholderID = "placeholder"

func isPlaceholder(e docstore.Entry) bool {
	if e.ID == placeholderID {
		return true
	}
	kind, _ := e.Data["type"].(string)
	return kind == "placeholder"
}

func docString(doc docstore.Document, key string) string {
	s, _ := doc[key].(string)
	return s
}

func docBool(doc docstore.Document, key string) bool {
	b, _ := doc[key].(bool)
	return b
}

func docTime(doc docstore.Document, key string) time.Time {
	t, _ := doc[key].(time.Time)
	return t
}

func docStringSlice(doc docstore.Document, key string) []string {
	switch v := doc[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}

func docLinks(v interface{}) []utils.Link {
	items, ok := v.([]interface{})
	if !ok {
		return []utils.Link{}
	}
	links := make([]utils.Link, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		link := utils.Link{}
		link.URL, _ = m["url"].(string)
		link.Description, _ = m["description"].(string)
		link.Image, _ = m["image"].(string)
		links = append(links, link)
	}
	return links
}

func linksToValues(links []utils.Link) []interface{} {
	out := make([]interface{}, len(links))
	for i, link := range links {
		out[i] = map[string]interface{}{
			"url":         link.URL,
			"description": link.Description,
			"image":       link.Image,
		}
	}
	return out
}

// dedupeTags drops repeated entries while keeping first-seen order.
func dedupeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func stringsOrEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
