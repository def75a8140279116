// Package counter measures document length in tokens, words, or characters.
//
// The corpus summary reports each document's size next to its matrix row
// sum; token counting uses tiktoken's cl100k_base encoding, word counting
// splits on whitespace, and character counting counts runes.
package counter

// Counter is a document length measure.
type Counter interface {
	// Count returns the number of units (tokens, words, or characters) in the text.
	Count(text string) int

	// Name returns a human-readable name for the measure (for logging and output)
	Name() string
}

// CountingMethod selects a length measure.
type CountingMethod int

const (
	// Tokens uses tiktoken with cl100k_base encoding (default)
	Tokens CountingMethod = iota
	// Words counts whitespace-separated words
	Words
	// Characters counts runes including whitespace
	Characters
)

// String returns the string representation of the counting method.
func (cm CountingMethod) String() string {
	switch cm {
	case Tokens:
		return "tokens"
	case Words:
		return "words"
	case Characters:
		return "characters"
	default:
		return "unknown"
	}
}

// NewCounter creates a Counter for the given method. Returns an error if the
// counter cannot be initialized (tiktoken encoding load can fail).
func NewCounter(method CountingMethod) (Counter, error) {
	switch method {
	case Words:
		return NewWordCounter(), nil
	case Characters:
		return NewCharCounter(), nil
	default:
		return NewTokenCounter()
	}
}
