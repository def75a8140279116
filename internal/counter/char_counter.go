package counter

import "unicode/utf8"

// CharCounter counts individual characters including whitespace.
type CharCounter struct{}

// NewCharCounter creates a CharCounter.
func NewCharCounter() Counter {
	return &CharCounter{}
}

// Count returns the number of runes in text, so multibyte characters count
// once rather than per byte.
func (cc *CharCounter) Count(text string) int {
	return utf8.RuneCountInString(text)
}

// Name returns the name of this counting method.
func (cc *CharCounter) Name() string {
	return "characters"
}
