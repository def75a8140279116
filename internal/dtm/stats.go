package dtm

import (
	"unicode"
	"unicode/utf8"
)

// TermStats summarizes one term across the corpus.
type TermStats struct {
	Term         string
	Frequency    int     // total occurrence count across all documents
	DocFrequency int     // number of documents containing the term
	RelDocFreq   float64 // DocFrequency / total document count
	IsNumeric    bool    // term consists entirely of digits
	HasNonAlnum  bool    // term contains a non-letter, non-digit rune
	Length       int     // term length in runes
}

// TermStatistics computes per-term corpus statistics: total frequency,
// document frequency, relative document frequency, and structural flags.
// One record per distinct term, in no guaranteed order.
func (m *Matrix) TermStatistics() []TermStats {
	totalDocs := len(m.rows)

	byTerm := make(map[string]*TermStats)
	for _, row := range m.rows {
		for term, count := range row {
			st := byTerm[term]
			if st == nil {
				st = &TermStats{
					Term:        term,
					IsNumeric:   isNumericTerm(term),
					HasNonAlnum: hasNonAlnum(term),
					Length:      utf8.RuneCountInString(term),
				}
				byTerm[term] = st
			}
			st.Frequency += count
			st.DocFrequency++
		}
	}

	stats := make([]TermStats, 0, len(byTerm))
	for _, st := range byTerm {
		if totalDocs > 0 {
			st.RelDocFreq = float64(st.DocFrequency) / float64(totalDocs)
		}
		stats = append(stats, *st)
	}
	return stats
}

// isNumericTerm reports whether the term is entirely digits.
func isNumericTerm(term string) bool {
	for _, r := range term {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// hasNonAlnum reports whether the term contains any rune that is neither a
// letter nor a digit (hyphens, underscores, apostrophes, and so on).
func hasNonAlnum(term string) bool {
	for _, r := range term {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
