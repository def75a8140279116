// Package tokenize turns raw document text into the normalized token stream
// the matrix builder consumes.
//
// Normalization is deliberately upstream of the matrix: the store only ever
// sees (document, term) pairs. The tokenizer handles case folding, word
// splitting, minimum-length filtering, stopword removal, and optional
// snowball stemming. Two splitters are available: a compiled regex suitable
// for keyword-style terms, and prose's punctuation-aware tokenizer for text
// with contractions and mixed punctuation.
package tokenize

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jdkato/prose/v2"
	"github.com/kljensen/snowball"

	"github.com/corpustools/dtm/internal/dtm"
)

// wordRegex splits on runs of characters outside word tokens
// (letters, digits, underscores, and in-word hyphens)
var wordRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Options configures a Tokenizer.
type Options struct {
	MinLength int                 // drop tokens shorter than this many characters
	Stem      bool                // reduce emitted terms to snowball stems
	UseProse  bool                // use prose's tokenizer instead of regex splitting
	Stopwords map[string]struct{} // stemmed stopword set; matched against stems
}

// Tokenizer converts document text into dtm tokens.
type Tokenizer struct {
	opts Options
}

// New creates a Tokenizer. A zero Options value gives lowercase regex
// splitting with no length, stopword, or stemming filters.
func New(opts Options) *Tokenizer {
	return &Tokenizer{opts: opts}
}

// Tokenize normalizes text into (doc, term) pairs ready for dtm.Build.
func (t *Tokenizer) Tokenize(doc dtm.DocID, text string) ([]dtm.Token, error) {
	words, err := t.split(text)
	if err != nil {
		return nil, err
	}

	var tokens []dtm.Token
	for _, word := range words {
		word = strings.TrimSpace(strings.ToLower(word))
		if word == "" || utf8.RuneCountInString(word) < t.opts.MinLength {
			continue
		}

		// stem once; used for both stopword lookup and (optionally) the term
		stemmed, err := snowball.Stem(word, "english", true)
		if err != nil {
			// stemming failure falls back to the surface form
			stemmed = word
		}

		if _, stop := t.opts.Stopwords[stemmed]; stop {
			continue
		}

		term := word
		if t.opts.Stem {
			term = stemmed
		}
		tokens = append(tokens, dtm.Token{Doc: doc, Term: term})
	}

	slog.Debug("Tokenized document", "doc", doc, "rawWords", len(words), "tokens", len(tokens))
	return tokens, nil
}

// split breaks text into raw word candidates using the configured splitter.
func (t *Tokenizer) split(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	if !t.opts.UseProse {
		return wordRegex.Split(text, -1), nil
	}

	// prose tokenization only; tagging and entity extraction are not needed
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
		prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize with prose: %w", err)
	}

	var words []string
	for _, tok := range doc.Tokens() {
		// keep only word-like tokens; punctuation tokens carry no terms
		if hasLetterOrDigit(tok.Text) {
			words = append(words, tok.Text)
		}
	}
	return words, nil
}

// hasLetterOrDigit reports whether s contains at least one alphanumeric byte.
func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return true
		}
	}
	return false
}

// LoadStopwords reads one stopword per line and returns the stemmed set the
// Tokenizer matches against. Blank lines and #-prefixed comments are skipped.
func LoadStopwords(r io.Reader) (map[string]struct{}, error) {
	set := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		stemmed, err := snowball.Stem(word, "english", true)
		if err != nil {
			stemmed = word
		}
		set[stemmed] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stopwords: %w", err)
	}

	slog.Debug("Loaded stopwords", "count", len(set))
	return set, nil
}
