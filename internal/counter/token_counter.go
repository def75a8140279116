package counter

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter counts tokens with tiktoken's cl100k_base encoding.
type TokenCounter struct {
	encoding *tiktoken.Tiktoken
	mu       sync.RWMutex // protects encoding access across goroutines
}

// NewTokenCounter creates a TokenCounter with cl100k_base encoding.
func NewTokenCounter() (Counter, error) {
	encoding, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cl100k_base encoding: %w", err)
	}
	return &TokenCounter{encoding: encoding}, nil
}

// Count returns the token count of text. Safe for concurrent use.
func (tc *TokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}

	tc.mu.RLock()
	defer tc.mu.RUnlock()

	// nil params mean no special tokens allowed or disallowed
	tokens := tc.encoding.Encode(text, nil, nil)

	slog.Debug("Token count calculated", "textLength", len(text), "tokenCount", len(tokens))
	return len(tokens)
}

// Name returns the name of this counting method.
func (tc *TokenCounter) Name() string {
	return "tokens (cl100k_base)"
}
