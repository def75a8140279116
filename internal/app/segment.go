package app

import (
	"regexp"
	"strings"
)

// paragraphBreak matches one or more blank lines, with or without CRLF endings
var paragraphBreak = regexp.MustCompile(`\r?\n[ \t\r]*\n+`)

// SplitParagraphs breaks text into paragraphs on blank-line boundaries.
// Leading and trailing whitespace is trimmed from each paragraph and empty
// paragraphs are dropped, so every returned element carries content.
func SplitParagraphs(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var paragraphs []string
	for _, part := range paragraphBreak.Split(text, -1) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs
}
