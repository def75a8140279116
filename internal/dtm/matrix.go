// Package dtm implements a sparse document-term matrix for corpus analysis.
//
// A Matrix records term frequencies per document in triplet form: only
// nonzero (document, term, count) cells are stored. It is built once from a
// token stream, optionally reduced through Filter, and then queried
// read-only for aggregate statistics.
//
// Usage Example:
//
//	m, err := dtm.Build(tokens)
//	freqs := m.ColumnSums()
//
// A built Matrix is never mutated, so it is safe for concurrent readers
// without locking; Filter and ToDense always allocate new values.
package dtm

import (
	"fmt"
	"log/slog"
	"sort"
)

// DocID identifies a document within a corpus.
type DocID string

// Token is one occurrence of a term in a document, as produced by upstream
// tokenization and normalization.
type Token struct {
	Doc  DocID
	Term string
}

// Entry is a single nonzero cell of the matrix. Count is always positive;
// zero cells are never materialized.
type Entry struct {
	Doc   DocID
	Term  string
	Count int
}

// DenseWarnCells is the cell count above which ToDense logs a warning
// before materializing. It can be raised for large but deliberate exports.
var DenseWarnCells = 10_000_000

// Matrix is an immutable sparse document-term matrix. The document set and
// term set are exactly the rows and columns with at least one nonzero cell.
type Matrix struct {
	rows map[DocID]map[string]int
	nnz  int
}

// Build constructs a Matrix from a token stream. Repeated identical
// (document, term) pairs accumulate into a single summed count; input order
// has no observable effect. A token with an empty document id or empty term
// fails with ErrInvalidInput rather than being silently dropped.
func Build(tokens []Token) (*Matrix, error) {
	m := &Matrix{rows: make(map[DocID]map[string]int)}

	for _, tok := range tokens {
		if tok.Doc == "" {
			return nil, fmt.Errorf("%w: empty document id", ErrInvalidInput)
		}
		if tok.Term == "" {
			return nil, fmt.Errorf("%w: empty term in document %q", ErrInvalidInput, tok.Doc)
		}

		row := m.rows[tok.Doc]
		if row == nil {
			row = make(map[string]int)
			m.rows[tok.Doc] = row
		}
		if row[tok.Term] == 0 {
			m.nnz++
		}
		row[tok.Term]++
	}

	slog.Debug("Built document-term matrix", "documents", m.NDocs(), "terms", m.NTerms(), "entries", m.nnz)
	return m, nil
}

// NDocs returns the number of documents with at least one nonzero entry.
func (m *Matrix) NDocs() int {
	return len(m.rows)
}

// NTerms returns the number of distinct terms with at least one nonzero entry.
func (m *Matrix) NTerms() int {
	terms := make(map[string]struct{})
	for _, row := range m.rows {
		for term := range row {
			terms[term] = struct{}{}
		}
	}
	return len(terms)
}

// NNZ returns the number of nonzero cells.
func (m *Matrix) NNZ() int {
	return m.nnz
}

// Count returns the frequency of term in doc, zero if the cell is absent.
func (m *Matrix) Count(doc DocID, term string) int {
	return m.rows[doc][term]
}

// Docs returns the document ids in sorted order.
func (m *Matrix) Docs() []DocID {
	docs := make([]DocID, 0, len(m.rows))
	for doc := range m.rows {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i] < docs[j] })
	return docs
}

// Terms returns the distinct terms in sorted order.
func (m *Matrix) Terms() []string {
	seen := make(map[string]struct{})
	for _, row := range m.rows {
		for term := range row {
			seen[term] = struct{}{}
		}
	}
	terms := make([]string, 0, len(seen))
	for term := range seen {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// Entries returns all nonzero cells. No iteration order is guaranteed;
// callers that need stable output should sort.
func (m *Matrix) Entries() []Entry {
	entries := make([]Entry, 0, m.nnz)
	for doc, row := range m.rows {
		for term, count := range row {
			entries = append(entries, Entry{Doc: doc, Term: term, Count: count})
		}
	}
	return entries
}

// RowSums returns the total term count per document. Runs in time
// proportional to the number of nonzero entries.
func (m *Matrix) RowSums() map[DocID]int {
	sums := make(map[DocID]int, len(m.rows))
	for doc, row := range m.rows {
		total := 0
		for _, count := range row {
			total += count
		}
		sums[doc] = total
	}
	return sums
}

// ColumnSums returns the total count per term across all documents. Runs in
// time proportional to the number of nonzero entries.
func (m *Matrix) ColumnSums() map[string]int {
	sums := make(map[string]int)
	for _, row := range m.rows {
		for term, count := range row {
			sums[term] += count
		}
	}
	return sums
}

// ToDense materializes the full dense matrix with explicit zeros. Documents
// and terms are returned in sorted order; cells[i][j] is the count of
// terms[j] in docs[i].
//
// This is O(documents × terms) memory and intended for small matrices or
// debugging. When the cell count exceeds DenseWarnCells a warning is logged,
// but the request still proceeds.
func (m *Matrix) ToDense() (docs []DocID, terms []string, cells [][]int) {
	docs = m.Docs()
	terms = m.Terms()

	if cellCount := len(docs) * len(terms); cellCount > DenseWarnCells {
		slog.Warn("Dense materialization over size threshold",
			"documents", len(docs), "terms", len(terms), "cells", cellCount, "threshold", DenseWarnCells)
	}

	colIndex := make(map[string]int, len(terms))
	for j, term := range terms {
		colIndex[term] = j
	}

	cells = make([][]int, len(docs))
	for i, doc := range docs {
		cells[i] = make([]int, len(terms))
		for term, count := range m.rows[doc] {
			cells[i][colIndex[term]] = count
		}
	}
	return docs, terms, cells
}
