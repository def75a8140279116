package dtm

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Triples is the de facto external representation of a Matrix: one
// tab-separated "document term count" line per nonzero cell.

// WriteTriples writes the matrix in triples form, sorted by document then
// term so the output is reproducible.
func WriteTriples(w io.Writer, m *Matrix) error {
	entries := m.Entries()
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Doc != entries[j].Doc {
			return entries[i].Doc < entries[j].Doc
		}
		return entries[i].Term < entries[j].Term
	})

	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%d\n", e.Doc, e.Term, e.Count); err != nil {
			return fmt.Errorf("failed to write triple: %w", err)
		}
	}
	return bw.Flush()
}

// ReadTriples rebuilds a Matrix from triples form. Malformed lines,
// non-positive counts, and empty fields fail with ErrInvalidInput; blank
// lines are skipped. Duplicate (document, term) pairs accumulate, matching
// Build semantics.
func ReadTriples(r io.Reader) (*Matrix, error) {
	m := &Matrix{rows: make(map[DocID]map[string]int)}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d: expected 3 tab-separated fields, got %d", ErrInvalidInput, lineNo, len(fields))
		}

		doc, term := DocID(fields[0]), fields[1]
		if doc == "" || term == "" {
			return nil, fmt.Errorf("%w: line %d: empty document or term", ErrInvalidInput, lineNo)
		}

		count, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad count %q", ErrInvalidInput, lineNo, fields[2])
		}
		if count <= 0 {
			return nil, fmt.Errorf("%w: line %d: non-positive count %d", ErrInvalidInput, lineNo, count)
		}

		row := m.rows[doc]
		if row == nil {
			row = make(map[string]int)
			m.rows[doc] = row
		}
		if row[term] == 0 {
			m.nnz++
		}
		row[term] += count
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read triples: %w", err)
	}

	return m, nil
}
