// Package app contains the core application logic for the dtm CLI tool.
// It wires the pipeline: fetch sources, extract text, segment into
// documents, tokenize, build the sparse document-term matrix, filter it,
// and render the requested output.
package app

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/corpustools/dtm/internal/counter"
	"github.com/corpustools/dtm/internal/dtm"
	"github.com/corpustools/dtm/internal/extract"
	"github.com/corpustools/dtm/internal/fetch"
	"github.com/corpustools/dtm/internal/sentiment"
	"github.com/corpustools/dtm/internal/spinner"
	"github.com/corpustools/dtm/internal/tokenize"
)

// OutputFormat defines the rendering of results.
type OutputFormat int

const (
	// Stats renders the term statistics table (default)
	Stats OutputFormat = iota
	// JSON renders matrix shape and term statistics as JSON
	JSON
	// Triples renders the line-oriented (doc, term, count) representation
	Triples
	// Dense renders the full dense matrix as TSV
	Dense
)

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	switch f {
	case Stats:
		return "Stats"
	case JSON:
		return "JSON"
	case Triples:
		return "Triples"
	case Dense:
		return "Dense"
	default:
		return "Unknown"
	}
}

// Config holds all configuration options for the dtm application.
type Config struct {
	Sources    []string // URLs, file paths, or "-" for stdin
	Selector   string   // CSS selector for HTML content extraction
	IncludeAll bool     // convert full HTML pages without readability filtering
	Paragraphs bool     // treat each blank-line-separated paragraph as its own document

	MinLength     int    // minimum token length
	Stem          bool   // snowball-stem emitted terms
	UseProse      bool   // prose tokenizer instead of regex splitting
	StopwordsPath string // optional stopword file, one word per line

	MinDocFreq    int     // keep terms in at least this many documents
	MaxDFRatio    float64 // drop terms above this relative document frequency (0 disables)
	MinTermLength int     // keep terms with at least this many runes
	DropNumeric   bool    // drop purely numeric terms
	AlnumOnly     bool    // drop terms with non-alphanumeric runes

	OutputFormat   OutputFormat
	Top            int // limit stats rows (0 = all)
	DenseWarnCells int // override dtm.DenseWarnCells (0 = keep default)

	SearchQuery     string // rank documents against this query
	PositiveLexicon string // path to positive sentiment lexicon
	NegativeLexicon string // path to negative sentiment lexicon
	NeutralZero     bool   // map zero-signal documents to a defined neutral ratio
	Summary         bool   // per-document length summary instead of term stats
	CountingMethod  counter.CountingMethod

	Quiet bool // suppress progress and warnings
	Debug bool
}

// document is one corpus unit: its id and extracted text.
type document struct {
	ID   dtm.DocID
	Text string
}

// Run executes the dtm pipeline with the given configuration and returns
// the rendered output.
func Run(ctx context.Context, cfg Config) (string, error) {
	if len(cfg.Sources) == 0 {
		return "", fmt.Errorf("no sources provided")
	}
	if cfg.DenseWarnCells > 0 {
		dtm.DenseWarnCells = cfg.DenseWarnCells
	}

	docs, err := loadCorpus(ctx, cfg)
	if err != nil {
		return "", err
	}

	m, err := buildMatrix(docs, cfg)
	if err != nil {
		return "", err
	}
	m = applyFilters(m, cfg)

	return render(ctx, m, docs, cfg)
}

// loadCorpus fetches every source, extracts its text, and segments it into
// documents. A failing source is reported on stderr and skipped, so a bad
// URL does not abort a multi-source corpus; zero usable sources is an error.
func loadCorpus(ctx context.Context, cfg Config) ([]document, error) {
	var sp *spinner.Spinner
	if !cfg.Quiet {
		sp = spinner.New(ctx, os.Stderr, "Loading corpus...")
		sp.Start()
		defer sp.Stop()
	}

	var docs []document
	for _, source := range cfg.Sources {
		text, err := loadSource(ctx, source, cfg)
		if err != nil {
			if !cfg.Quiet {
				fmt.Fprintf(os.Stderr, "Warning: failed to process source %q: %v\n", source, err)
			}
			continue
		}

		id := sourceID(source)
		if cfg.Paragraphs {
			for i, para := range SplitParagraphs(text) {
				docs = append(docs, document{
					ID:   dtm.DocID(fmt.Sprintf("%s#p%d", id, i+1)),
					Text: para,
				})
			}
		} else {
			docs = append(docs, document{ID: dtm.DocID(id), Text: text})
		}
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no content extracted from any source")
	}
	return docs, nil
}

// loadSource reads one source and reduces HTML to clean text.
func loadSource(ctx context.Context, source string, cfg Config) (string, error) {
	reader, err := fetch.GetContent(ctx, source)
	if err != nil {
		return "", fmt.Errorf("failed to fetch content: %w", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}
	content := string(raw)

	if cfg.Selector != "" || extract.LooksLikeHTML(content) {
		var baseURL *url.URL
		if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
			baseURL, _ = url.Parse(source) // parse errors leave baseURL nil
		}
		content, err = extract.ToMarkdown(strings.NewReader(content), cfg.Selector, cfg.IncludeAll, baseURL)
		if err != nil {
			return "", fmt.Errorf("failed to extract content: %w", err)
		}
	}

	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("no content extracted")
	}
	return content, nil
}

// sourceID gives the document id for a source.
func sourceID(source string) string {
	if source == "-" {
		return "stdin"
	}
	return source
}

// buildMatrix tokenizes the documents and builds the sparse matrix.
func buildMatrix(docs []document, cfg Config) (*dtm.Matrix, error) {
	opts := tokenize.Options{
		MinLength: cfg.MinLength,
		Stem:      cfg.Stem,
		UseProse:  cfg.UseProse,
	}
	if cfg.StopwordsPath != "" {
		f, err := os.Open(cfg.StopwordsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open stopword file: %w", err)
		}
		defer f.Close()
		opts.Stopwords, err = tokenize.LoadStopwords(f)
		if err != nil {
			return nil, err
		}
	}

	tokenizer := tokenize.New(opts)
	var tokens []dtm.Token
	for _, doc := range docs {
		docTokens, err := tokenizer.Tokenize(doc.ID, doc.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to tokenize document %q: %w", doc.ID, err)
		}
		tokens = append(tokens, docTokens...)
	}

	m, err := dtm.Build(tokens)
	if err != nil {
		return nil, fmt.Errorf("failed to build matrix: %w", err)
	}
	return m, nil
}

// applyFilters reduces the matrix per the configured term predicates.
func applyFilters(m *dtm.Matrix, cfg Config) *dtm.Matrix {
	var preds []dtm.TermPredicate
	if cfg.MinTermLength > 0 {
		preds = append(preds, dtm.MinTermLength(cfg.MinTermLength))
	}
	if cfg.MinDocFreq > 0 {
		preds = append(preds, dtm.MinDocFrequency(cfg.MinDocFreq))
	}
	if cfg.MaxDFRatio > 0 {
		preds = append(preds, dtm.MaxDocFreqRatio(m, cfg.MaxDFRatio))
	}
	if cfg.DropNumeric {
		preds = append(preds, dtm.DropNumeric())
	}
	if cfg.AlnumOnly {
		preds = append(preds, dtm.AlnumOnly())
	}
	if len(preds) == 0 {
		return m
	}
	return m.Filter(dtm.AllTerms(preds...), nil)
}

// render dispatches to the requested analysis or output format.
func render(ctx context.Context, m *dtm.Matrix, docs []document, cfg Config) (string, error) {
	switch {
	case strings.TrimSpace(cfg.SearchQuery) != "":
		return renderSearch(ctx, docs, cfg)
	case cfg.PositiveLexicon != "" || cfg.NegativeLexicon != "":
		return renderSentiment(m, cfg)
	case cfg.Summary:
		return renderSummary(m, docs, cfg)
	}

	switch cfg.OutputFormat {
	case JSON:
		return renderJSON(m, cfg.Top)
	case Triples:
		var sb strings.Builder
		if err := dtm.WriteTriples(&sb, m); err != nil {
			return "", err
		}
		return sb.String(), nil
	case Dense:
		return renderDense(m), nil
	default:
		return renderStats(m, cfg.Top), nil
	}
}

// renderSentiment loads the lexicon files and scores every document.
func renderSentiment(m *dtm.Matrix, cfg Config) (string, error) {
	if cfg.PositiveLexicon == "" || cfg.NegativeLexicon == "" {
		return "", fmt.Errorf("sentiment scoring needs both positive and negative lexicon files")
	}

	pos, err := os.Open(cfg.PositiveLexicon)
	if err != nil {
		return "", fmt.Errorf("failed to open positive lexicon: %w", err)
	}
	defer pos.Close()
	neg, err := os.Open(cfg.NegativeLexicon)
	if err != nil {
		return "", fmt.Errorf("failed to open negative lexicon: %w", err)
	}
	defer neg.Close()

	lex, err := sentiment.LoadLexicon(pos, neg)
	if err != nil {
		return "", err
	}

	policy := sentiment.Undefined
	if cfg.NeutralZero {
		policy = sentiment.Neutral
	}
	return formatSentiment(sentiment.Score(m, lex, policy)), nil
}
