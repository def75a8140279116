package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/corpustools/dtm/internal/counter"
	"github.com/corpustools/dtm/internal/dtm"
	"github.com/corpustools/dtm/internal/rank"
	"github.com/corpustools/dtm/internal/sentiment"
	"github.com/corpustools/dtm/internal/spinner"
)

// sortedStats returns term statistics ordered by frequency descending, ties
// broken alphabetically, optionally truncated to top rows.
func sortedStats(m *dtm.Matrix, top int) []dtm.TermStats {
	stats := m.TermStatistics()
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Frequency != stats[j].Frequency {
			return stats[i].Frequency > stats[j].Frequency
		}
		return stats[i].Term < stats[j].Term
	})
	if top > 0 && len(stats) > top {
		stats = stats[:top]
	}
	return stats
}

// renderStats renders the term statistics table.
func renderStats(m *dtm.Matrix, top int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "documents: %d  terms: %d  entries: %d\n\n", m.NDocs(), m.NTerms(), m.NNZ())

	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TERM\tFREQ\tDOCFREQ\tRELDF\tLEN\tFLAGS")
	for _, st := range sortedStats(m, top) {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.3f\t%d\t%s\n",
			st.Term, st.Frequency, st.DocFrequency, st.RelDocFreq, st.Length, statFlags(st))
	}
	w.Flush()
	return sb.String()
}

// statFlags renders structural flags compactly: n=numeric, p=non-alphanumeric.
func statFlags(st dtm.TermStats) string {
	var flags []string
	if st.IsNumeric {
		flags = append(flags, "n")
	}
	if st.HasNonAlnum {
		flags = append(flags, "p")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, "")
}

// jsonReport is the JSON output shape.
type jsonReport struct {
	Documents int             `json:"documents"`
	Terms     int             `json:"terms"`
	Entries   int             `json:"entries"`
	Stats     []jsonTermStats `json:"termStats"`
}

type jsonTermStats struct {
	Term         string  `json:"term"`
	Frequency    int     `json:"frequency"`
	DocFrequency int     `json:"docFrequency"`
	RelDocFreq   float64 `json:"relDocFrequency"`
	IsNumeric    bool    `json:"isNumeric"`
	HasNonAlnum  bool    `json:"hasNonAlnum"`
	Length       int     `json:"length"`
}

// renderJSON renders matrix shape and term statistics as indented JSON.
func renderJSON(m *dtm.Matrix, top int) (string, error) {
	report := jsonReport{
		Documents: m.NDocs(),
		Terms:     m.NTerms(),
		Entries:   m.NNZ(),
		Stats:     []jsonTermStats{},
	}
	for _, st := range sortedStats(m, top) {
		report.Stats = append(report.Stats, jsonTermStats{
			Term:         st.Term,
			Frequency:    st.Frequency,
			DocFrequency: st.DocFrequency,
			RelDocFreq:   st.RelDocFreq,
			IsNumeric:    st.IsNumeric,
			HasNonAlnum:  st.HasNonAlnum,
			Length:       st.Length,
		})
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return string(out) + "\n", nil
}

// renderDense renders the full dense matrix as TSV with a header row of
// terms and one row per document.
func renderDense(m *dtm.Matrix) string {
	docs, terms, cells := m.ToDense()

	var sb strings.Builder
	sb.WriteString("doc")
	for _, term := range terms {
		sb.WriteByte('\t')
		sb.WriteString(term)
	}
	sb.WriteByte('\n')

	for i, doc := range docs {
		sb.WriteString(string(doc))
		for j := range terms {
			fmt.Fprintf(&sb, "\t%d", cells[i][j])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// renderSummary renders per-document sizes: matrix row sum plus length in
// the configured counting unit.
func renderSummary(m *dtm.Matrix, docs []document, cfg Config) (string, error) {
	textCounter, err := counter.NewCounter(cfg.CountingMethod)
	if err != nil {
		return "", fmt.Errorf("failed to create counter: %w", err)
	}

	rowSums := m.RowSums()

	var sb strings.Builder
	fmt.Fprintf(&sb, "documents: %d  terms: %d  entries: %d\n\n", m.NDocs(), m.NTerms(), m.NNZ())

	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "DOC\tTERMS\t%s\n", strings.ToUpper(cfg.CountingMethod.String()))
	for _, doc := range docs {
		fmt.Fprintf(w, "%s\t%d\t%d\n", doc.ID, rowSums[doc.ID], textCounter.Count(doc.Text))
	}
	w.Flush()
	return sb.String(), nil
}

// renderSearch ranks the corpus documents against the query.
func renderSearch(ctx context.Context, docs []document, cfg Config) (string, error) {
	var sp *spinner.Spinner
	if !cfg.Quiet {
		sp = spinner.New(ctx, os.Stderr, "Searching corpus...")
		sp.Start()
		defer sp.Stop()
	}

	rankDocs := make([]rank.Document, len(docs))
	for i, doc := range docs {
		rankDocs[i] = rank.Document{ID: doc.ID, Text: doc.Text}
	}
	scores := rank.Rank(rankDocs, cfg.SearchQuery)

	if cfg.Top > 0 && len(scores) > cfg.Top {
		scores = scores[:cfg.Top]
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tDOC\tSCORE")
	for i, s := range scores {
		fmt.Fprintf(w, "%d\t%s\t%.4f\n", i+1, s.ID, s.Score)
	}
	w.Flush()
	return sb.String(), nil
}

// formatSentiment renders per-document polarity, sorted by document id.
// Documents without sentiment-bearing terms show "undefined" unless the
// neutral policy mapped them to zero.
func formatSentiment(results map[dtm.DocID]sentiment.Result) string {
	docs := make([]dtm.DocID, 0, len(results))
	for doc := range results {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i] < docs[j] })

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DOC\tPOS\tNEG\tRATIO")
	for _, doc := range docs {
		res := results[doc]
		ratio := "undefined"
		if res.Defined {
			ratio = fmt.Sprintf("%.4f", res.Ratio)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", doc, res.Positive, res.Negative, ratio)
	}
	w.Flush()
	return sb.String()
}
