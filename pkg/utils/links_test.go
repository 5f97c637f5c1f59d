package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractLinks(t *testing.T) {
	content := "See https://example.com/docs and http://help.local/faq for details"

	links := ExtractLinks(content)

	assert.Len(t, links, 2)
	assert.Equal(t, "https://example.com/docs", links[0].URL)
	assert.Equal(t, "http://help.local/faq", links[1].URL)
	assert.Equal(t, "", links[0].Description)
	assert.Equal(t, PlaceholderImage, links[0].Image)
}

func TestExtractLinksNoURLs(t *testing.T) {
	links := ExtractLinks("nothing to see here")
	assert.Empty(t, links)
}

func TestExtractLinksGreedyToWhitespace(t *testing.T) {
	links := ExtractLinks("go to https://example.com/a?x=1&y=2, now")
	assert.Len(t, links, 1)
	assert.Equal(t, "https://example.com/a?x=1&y=2,", links[0].URL)
}

func TestMergeLinksPreservesAnnotations(t *testing.T) {
	previous := []Link{
		{URL: "https://example.com/docs", Description: "the manual", Image: "/img/docs.png"},
		{URL: "https://gone.example.com", Description: "stale", Image: "/img/old.png"},
	}

	merged := MergeLinks("updated text https://example.com/docs plus https://new.example.com", previous)

	assert.Len(t, merged, 2)
	assert.Equal(t, "https://example.com/docs", merged[0].URL)
	assert.Equal(t, "the manual", merged[0].Description)
	assert.Equal(t, "/img/docs.png", merged[0].Image)
	assert.Equal(t, "https://new.example.com", merged[1].URL)
	assert.Equal(t, PlaceholderImage, merged[1].Image)
}

func TestMergeLinksIdempotent(t *testing.T) {
	content := "read https://example.com/a then https://example.com/b"
	first := MergeLinks(content, nil)
	first[0].Description = "part one"

	second := MergeLinks(content, first)

	assert.Equal(t, first, second)
}
