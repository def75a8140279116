package counter

import "strings"

// WordCounter counts whitespace-separated words.
type WordCounter struct{}

// NewWordCounter creates a WordCounter.
func NewWordCounter() Counter {
	return &WordCounter{}
}

// Count returns the number of words in text, splitting on any Unicode
// whitespace and ignoring empty fields.
func (wc *WordCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(strings.Fields(text))
}

// Name returns the name of this counting method.
func (wc *WordCounter) Name() string {
	return "words"
}
