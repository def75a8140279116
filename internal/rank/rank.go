// Package rank orders corpus documents by lexical relevance to a query
// using BM25 with markdown field weighting.
package rank

import (
	"sort"

	"github.com/chriscorrea/bm25md"

	"github.com/corpustools/dtm/internal/dtm"
)

// Document is one rankable corpus document: its id and original text.
type Document struct {
	ID   dtm.DocID
	Text string
}

// DocScore pairs a document with its BM25 relevance score.
type DocScore struct {
	ID    dtm.DocID
	Score float64 // higher = more relevant
}

// Rank scores every document against the query and returns them sorted
// best-first. Documents the query never touches score zero but are still
// returned, so the result always covers the whole corpus.
func Rank(docs []Document, query string) []DocScore {
	if len(docs) == 0 {
		return []DocScore{}
	}

	// build a BM25md corpus with default field weights and parameters
	corpus := bm25md.NewCorpus()
	parser := bm25md.NewMarkdownFieldParser()
	for i, doc := range docs {
		fields := parser.ParseDocument(doc.Text)
		corpus.AddDocument(bm25md.Document{
			ID:       i,
			Fields:   fields,
			Original: doc.Text,
		})
	}

	scores := make([]DocScore, len(docs))
	for i, doc := range docs {
		scores[i] = DocScore{
			ID:    doc.ID,
			Score: corpus.Score(query, i),
		}
	}

	// sort by score, highest first; ties break on document id for stable output
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].ID < scores[j].ID
	})
	return scores
}
