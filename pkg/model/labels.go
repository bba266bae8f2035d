package model

import (
	"fmt"
	"regexp"
	"strings"
)

var splitWordsPattern = regexp.MustCompile(`[_\s]+`)

// Label converts a field key into its display label: underscores become
// spaces and every word is title-cased, so "function_description" renders as
// "Function Description".
func Label(field string) string {
	if field == "" {
		return ""
	}

	words := splitWordsPattern.Split(field, -1)
	segments := make([]string, 0, len(words))
	for _, word := range words {
		if word == "" {
			continue
		}
		segments = append(segments, titleCase(word))
	}
	return strings.Join(segments, " ")
}

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

// FormatConfidence renders a confidence value as a percentage with one
// decimal place. Values outside [0,1] are rendered as-is.
func FormatConfidence(confidence float64) string {
	return fmt.Sprintf("%.1f%%", confidence*100)
}
