// Package sentiment scores documents in a built matrix against polarity
// lexicons.
//
// A Lexicon is a pair of stemmed word sets (positive and negative). Scoring
// walks the matrix entries once, so cost is proportional to nonzero cells.
// Documents with no sentiment-bearing terms are handled by an explicit
// ZeroPolicy: "no signal" and "neutral signal" are different things, and
// collapsing the former into a zero ratio is a policy choice the caller
// makes, not a default this package hides.
package sentiment

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/kljensen/snowball"

	"github.com/corpustools/dtm/internal/dtm"
)

// ZeroPolicy controls the ratio for documents with no sentiment-bearing terms.
type ZeroPolicy int

const (
	// Undefined marks such documents as having no ratio (Defined=false).
	Undefined ZeroPolicy = iota
	// Neutral maps them to a defined ratio of zero.
	Neutral
)

// String returns the string representation of the policy.
func (p ZeroPolicy) String() string {
	switch p {
	case Undefined:
		return "undefined"
	case Neutral:
		return "neutral"
	default:
		return "unknown"
	}
}

// Lexicon holds stemmed positive and negative word sets.
type Lexicon struct {
	Positive map[string]struct{}
	Negative map[string]struct{}
}

// Result is the polarity score for one document.
type Result struct {
	Positive int     // total count of positive terms
	Negative int     // total count of negative terms
	Ratio    float64 // (Positive - Negative) / (Positive + Negative), when Defined
	Defined  bool    // false when the document has no sentiment-bearing terms and policy is Undefined
}

// LoadLexicon reads one word per line into a stemmed word set, sharing the
// stopword file conventions: blank lines and #-comments are skipped.
func LoadLexicon(positive, negative io.Reader) (Lexicon, error) {
	pos, err := loadWordSet(positive)
	if err != nil {
		return Lexicon{}, fmt.Errorf("failed to load positive lexicon: %w", err)
	}
	neg, err := loadWordSet(negative)
	if err != nil {
		return Lexicon{}, fmt.Errorf("failed to load negative lexicon: %w", err)
	}
	return Lexicon{Positive: pos, Negative: neg}, nil
}

func loadWordSet(r io.Reader) (map[string]struct{}, error) {
	set := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		set[stem(word)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return set, nil
}

// Score computes per-document polarity over the matrix. Terms are matched
// against the lexicon by snowball stem, so surface-form matrices and
// stemmed matrices both work.
func Score(m *dtm.Matrix, lex Lexicon, policy ZeroPolicy) map[dtm.DocID]Result {
	results := make(map[dtm.DocID]Result, m.NDocs())

	for _, e := range m.Entries() {
		stemmed := stem(e.Term)
		res := results[e.Doc]
		if _, ok := lex.Positive[stemmed]; ok {
			res.Positive += e.Count
		}
		if _, ok := lex.Negative[stemmed]; ok {
			res.Negative += e.Count
		}
		results[e.Doc] = res
	}

	for doc, res := range results {
		total := res.Positive + res.Negative
		if total == 0 {
			res.Defined = policy == Neutral
			res.Ratio = 0
		} else {
			res.Defined = true
			res.Ratio = float64(res.Positive-res.Negative) / float64(total)
		}
		results[doc] = res
	}

	slog.Debug("Scored sentiment", "documents", len(results), "policy", policy)
	return results
}

func stem(word string) string {
	stemmed, err := snowball.Stem(word, "english", true)
	if err != nil {
		return word
	}
	return stemmed
}
