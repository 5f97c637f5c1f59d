package utils

import (
	"regexp"
)

// PlaceholderImage is the thumbnail assigned to a link until the author
// replaces it.
const PlaceholderImage = "/placeholder.svg?height=60&width=60"

// Link is a reference extracted from free text. URL and ordering are
// fully derived from the text; Description and Image are human-authored
// annotations layered on top.
type Link struct {
	URL         string `json:"url" bson:"url"`
	Description string `json:"description" bson:"description"`
	Image       string `json:"image" bson:"image"`
}

var urlPattern = regexp.MustCompile(`https?://\S+`)

// ExtractLinks scans content for HTTP/HTTPS URLs, greedy up to the next
// whitespace, and returns one Link per occurrence in text order.
func ExtractLinks(content string) []Link {
	matches := urlPattern.FindAllString(content, -1)
	links := make([]Link, 0, len(matches))
	for _, url := range matches {
		links = append(links, Link{
			URL:         url,
			Description: "",
			Image:       PlaceholderImage,
		})
	}
	return links
}

// MergeLinks re-derives the link list from content while keeping the
// human-authored description and image of every URL that is still
// present. Links whose URL no longer appears in the text are dropped.
func MergeLinks(content string, previous []Link) []Link {
	byURL := make(map[string]Link, len(previous))
	for _, link := range previous {
		if _, ok := byURL[link.URL]; !ok {
			byURL[link.URL] = link
		}
	}

	extracted := ExtractLinks(content)
	for i, link := range extracted {
		if prev, ok := byURL[link.URL]; ok {
			extracted[i].Description = prev.Description
			if prev.Image != "" {
				extracted[i].Image = prev.Image
			}
		}
	}
	return extracted
}
