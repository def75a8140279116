package dtm

import (
	"log/slog"
)

// TermPredicate decides whether a term is kept by Filter. The TermStats
// record gives predicates access to corpus-level statistics (document
// frequency, structural flags) without recomputing them per entry.
type TermPredicate func(TermStats) bool

// DocPredicate decides whether a document is kept by Filter.
type DocPredicate func(DocID) bool

// KeepAllTerms accepts every term.
func KeepAllTerms(TermStats) bool { return true }

// KeepAllDocs accepts every document.
func KeepAllDocs(DocID) bool { return true }

// MinTermLength keeps terms with at least n runes.
func MinTermLength(n int) TermPredicate {
	return func(st TermStats) bool { return st.Length >= n }
}

// MinDocFrequency keeps terms appearing in at least n documents.
func MinDocFrequency(n int) TermPredicate {
	return func(st TermStats) bool { return st.DocFrequency >= n }
}

// MaxDocFreqRatio keeps terms whose relative document frequency in the
// reference matrix m does not exceed ratio; used to drop corpus-wide
// boilerplate terms. The keep decision is fixed against m at construction:
// filtering shrinks the document count, which would otherwise inflate the
// surviving terms' relative frequency and make reapplication drop more.
func MaxDocFreqRatio(m *Matrix, ratio float64) TermPredicate {
	keep := make(map[string]bool)
	for _, st := range m.TermStatistics() {
		keep[st.Term] = st.RelDocFreq <= ratio
	}
	return func(st TermStats) bool { return keep[st.Term] }
}

// DropNumeric keeps only terms that are not purely numeric.
func DropNumeric() TermPredicate {
	return func(st TermStats) bool { return !st.IsNumeric }
}

// AlnumOnly keeps only terms made entirely of letters and digits.
func AlnumOnly() TermPredicate {
	return func(st TermStats) bool { return !st.HasNonAlnum }
}

// AllTerms combines term predicates conjunctively.
func AllTerms(preds ...TermPredicate) TermPredicate {
	return func(st TermStats) bool {
		for _, p := range preds {
			if !p(st) {
				return false
			}
		}
		return true
	}
}

// Filter produces a new Matrix containing only entries whose term satisfies
// termPred and whose document satisfies docPred. The receiver is never
// mutated. Documents or terms left without entries are dropped entirely, so
// the result's row and column sets are exactly the induced nonzero sets.
// Predicates that reject everything yield a valid empty Matrix.
func (m *Matrix) Filter(termPred TermPredicate, docPred DocPredicate) *Matrix {
	if termPred == nil {
		termPred = KeepAllTerms
	}
	if docPred == nil {
		docPred = KeepAllDocs
	}

	keepTerm := make(map[string]bool)
	for _, st := range m.TermStatistics() {
		keepTerm[st.Term] = termPred(st)
	}

	out := &Matrix{rows: make(map[DocID]map[string]int)}
	for doc, row := range m.rows {
		if !docPred(doc) {
			continue
		}
		for term, count := range row {
			if !keepTerm[term] {
				continue
			}
			outRow := out.rows[doc]
			if outRow == nil {
				outRow = make(map[string]int)
				out.rows[doc] = outRow
			}
			outRow[term] = count
			out.nnz++
		}
	}

	slog.Debug("Filtered matrix", "entriesBefore", m.nnz, "entriesAfter", out.nnz)
	return out
}

// Equal reports whether two matrices contain exactly the same entries.
func (m *Matrix) Equal(other *Matrix) bool {
	if m.nnz != other.nnz || len(m.rows) != len(other.rows) {
		return false
	}
	for doc, row := range m.rows {
		otherRow := other.rows[doc]
		if len(otherRow) != len(row) {
			return false
		}
		for term, count := range row {
			if otherRow[term] != count {
				return false
			}
		}
	}
	return true
}
