package utils

import (
	"regexp"
)

var tokenPattern = regexp.MustCompile(`\{(\w+)\}`)

// Substitute replaces every {token} occurrence in content with its mapped
// value. Tokens without a mapping are left verbatim so partially filled
// forms stay readable. Pure function; the result is never persisted.
func Substitute(content string, values map[string]string) string {
	return tokenPattern.ReplaceAllStringFunc(content, func(match string) string {
		name := match[1 : len(match)-1]
		if value, ok := values[name]; ok {
			return value
		}
		return match
	})
}
