// Package hashtag extracts normalized hashtags from free text.
package hashtag

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`#([A-Za-z0-9_]+)`)

// Extract scans text for #tags and returns them lowercased with the
// leading symbol stripped. Duplicates collapse to the first occurrence,
// preserving order.
func Extract(text string) []string {
	matches := tagPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	tags := make([]string, 0, len(matches))
	for _, match := range matches {
		tag := strings.ToLower(match[1])
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}
