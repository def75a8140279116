package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/corpustools/dtm/internal/app"
	"github.com/corpustools/dtm/internal/counter"

	"github.com/spf13/cobra"
)

// buildConfig constructs an app.Config from command flags and arguments
func buildConfig(cmd *cobra.Command, args []string) (app.Config, error) {
	selector, _ := cmd.Flags().GetString("selector")
	includeAll, _ := cmd.Flags().GetBool("include-all")
	paragraphs, _ := cmd.Flags().GetBool("paragraphs")

	minLength, _ := cmd.Flags().GetInt("min-length")
	stem, _ := cmd.Flags().GetBool("stem")
	useProse, _ := cmd.Flags().GetBool("prose")
	stopwords, _ := cmd.Flags().GetString("stopwords")

	minDF, _ := cmd.Flags().GetInt("min-df")
	maxDFRatio, _ := cmd.Flags().GetFloat64("max-df-ratio")
	minTermLength, _ := cmd.Flags().GetInt("min-term-length")
	dropNumeric, _ := cmd.Flags().GetBool("drop-numeric")
	alnumOnly, _ := cmd.Flags().GetBool("alnum-only")

	jsonFlag, _ := cmd.Flags().GetBool("json")
	triplesFlag, _ := cmd.Flags().GetBool("triples")
	denseFlag, _ := cmd.Flags().GetBool("dense")
	top, _ := cmd.Flags().GetInt("top")
	denseWarnCells, _ := cmd.Flags().GetInt("dense-warn-cells")

	search, _ := cmd.Flags().GetString("search")
	posLexicon, _ := cmd.Flags().GetString("positive")
	negLexicon, _ := cmd.Flags().GetString("negative")
	neutralZero, _ := cmd.Flags().GetBool("neutral-zero")
	summary, _ := cmd.Flags().GetBool("summary")
	wordsFlag, _ := cmd.Flags().GetBool("words")
	charsFlag, _ := cmd.Flags().GetBool("characters")

	quiet, _ := cmd.Flags().GetBool("quiet")
	debug, _ := cmd.Flags().GetBool("debug")

	// determine output format
	var outputFormat app.OutputFormat
	switch {
	case jsonFlag:
		outputFormat = app.JSON
	case triplesFlag:
		outputFormat = app.Triples
	case denseFlag:
		outputFormat = app.Dense
	default:
		outputFormat = app.Stats // default if no format flag
	}

	// determine counting method for the summary output
	var countingMethod counter.CountingMethod
	switch {
	case wordsFlag:
		countingMethod = counter.Words
	case charsFlag:
		countingMethod = counter.Characters
	default:
		countingMethod = counter.Tokens
	}

	// use positional arguments as sources; stdin when none given
	sources := args
	if len(sources) == 0 {
		sources = []string{"-"}
	}

	return app.Config{
		Sources:    sources,
		Selector:   selector,
		IncludeAll: includeAll,
		Paragraphs: paragraphs,

		MinLength:     minLength,
		Stem:          stem,
		UseProse:      useProse,
		StopwordsPath: stopwords,

		MinDocFreq:    minDF,
		MaxDFRatio:    maxDFRatio,
		MinTermLength: minTermLength,
		DropNumeric:   dropNumeric,
		AlnumOnly:     alnumOnly,

		OutputFormat:   outputFormat,
		Top:            top,
		DenseWarnCells: denseWarnCells,

		SearchQuery:     search,
		PositiveLexicon: posLexicon,
		NegativeLexicon: negLexicon,
		NeutralZero:     neutralZero,
		Summary:         summary,
		CountingMethod:  countingMethod,

		Quiet: quiet,
		Debug: debug,
	}, nil
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

var rootCmd = &cobra.Command{
	Use:   "dtm [sources...]",
	Short: "Build and query sparse document-term matrices",
	Long: `dtm builds a sparse document-term matrix from text sources and reports
corpus term statistics. Sources may be URLs, local files, or standard input;
HTML sources are reduced to clean text before tokenization.

Examples:
  dtm corpus/*.txt
  dtm --paragraphs --stem book.txt
  dtm --min-df 2 --drop-numeric --json https://example.com/article
  cat notes.txt | dtm --triples`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := buildConfig(cmd, args)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		setupLogger(config.Debug)

		// context with signal handling for graceful shutdown
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		result, err := app.Run(ctx, config)
		if err != nil {
			return fmt.Errorf("dtm failed: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

func init() {
	// corpus flags
	rootCmd.Flags().StringP("selector", "s", "", "CSS selector for HTML content extraction")
	rootCmd.Flags().BoolP("include-all", "i", false, "Convert full HTML pages without readability filtering")
	rootCmd.Flags().BoolP("paragraphs", "p", false, "Treat each paragraph as its own document")

	// tokenization flags
	rootCmd.Flags().Int("min-length", 0, "Drop tokens shorter than this many characters")
	rootCmd.Flags().Bool("stem", false, "Reduce terms to snowball stems")
	rootCmd.Flags().Bool("prose", false, "Use prose tokenization instead of regex splitting")
	rootCmd.Flags().String("stopwords", "", "Stopword file, one word per line")

	// term filter flags
	rootCmd.Flags().Int("min-df", 0, "Keep terms appearing in at least this many documents")
	rootCmd.Flags().Float64("max-df-ratio", 0, "Drop terms above this relative document frequency")
	rootCmd.Flags().Int("min-term-length", 0, "Keep terms with at least this many characters")
	rootCmd.Flags().Bool("drop-numeric", false, "Drop purely numeric terms")
	rootCmd.Flags().Bool("alnum-only", false, "Drop terms containing non-alphanumeric characters")

	// output format flags are mutually exclusive
	rootCmd.Flags().Bool("json", false, "Output term statistics as JSON")
	rootCmd.Flags().Bool("triples", false, "Output the (doc, term, count) triples representation")
	rootCmd.Flags().Bool("dense", false, "Output the full dense matrix as TSV (expensive)")
	rootCmd.MarkFlagsMutuallyExclusive("json", "triples", "dense")

	rootCmd.Flags().IntP("top", "t", 0, "Limit statistics and search output to the top N rows")
	rootCmd.Flags().Int("dense-warn-cells", 0, "Cell count threshold for the dense-output warning")

	// analysis flags
	rootCmd.Flags().String("search", "", "Rank documents against keyword(s)")
	rootCmd.Flags().String("positive", "", "Positive sentiment lexicon file")
	rootCmd.Flags().String("negative", "", "Negative sentiment lexicon file")
	rootCmd.Flags().Bool("neutral-zero", false, "Report documents without sentiment terms as neutral instead of undefined")
	rootCmd.Flags().Bool("summary", false, "Per-document length summary instead of term statistics")

	// summary unit flags are mutually exclusive; tokens is the default
	rootCmd.Flags().Bool("words", false, "Count summary lengths in words")
	rootCmd.Flags().Bool("characters", false, "Count summary lengths in characters")
	rootCmd.MarkFlagsMutuallyExclusive("words", "characters")

	// other flags
	rootCmd.Flags().BoolP("quiet", "q", false, "Suppress progress and warning messages")
	rootCmd.Flags().BoolP("debug", "D", false, "Enable debug logging")
	_ = rootCmd.Flags().MarkHidden("debug")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
