package dtm

import (
	"errors"
	"testing"
)

// birdTokens is the small worked corpus used across the matrix tests.
func birdTokens() []Token {
	return []Token{
		{Doc: "d1", Term: "bird"},
		{Doc: "d1", Term: "bird"},
		{Doc: "d1", Term: "eats"},
		{Doc: "d2", Term: "bird"},
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		tokens    []Token
		wantDocs  int
		wantTerms int
		wantNNZ   int
	}{
		{
			name:      "empty stream",
			tokens:    []Token{},
			wantDocs:  0,
			wantTerms: 0,
			wantNNZ:   0,
		},
		{
			name:      "single token",
			tokens:    []Token{{Doc: "d1", Term: "bird"}},
			wantDocs:  1,
			wantTerms: 1,
			wantNNZ:   1,
		},
		{
			name:      "duplicates accumulate",
			tokens:    birdTokens(),
			wantDocs:  2,
			wantTerms: 2,
			wantNNZ:   3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Build(tt.tokens)
			if err != nil {
				t.Fatalf("Build() unexpected error: %v", err)
			}
			if m.NDocs() != tt.wantDocs {
				t.Errorf("NDocs() = %d, want %d", m.NDocs(), tt.wantDocs)
			}
			if m.NTerms() != tt.wantTerms {
				t.Errorf("NTerms() = %d, want %d", m.NTerms(), tt.wantTerms)
			}
			if m.NNZ() != tt.wantNNZ {
				t.Errorf("NNZ() = %d, want %d", m.NNZ(), tt.wantNNZ)
			}
		})
	}
}

func TestBuildRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		tokens []Token
	}{
		{
			name:   "empty document id",
			tokens: []Token{{Doc: "", Term: "bird"}},
		},
		{
			name:   "empty term",
			tokens: []Token{{Doc: "d1", Term: ""}},
		},
		{
			name:   "invalid token after valid ones",
			tokens: []Token{{Doc: "d1", Term: "bird"}, {Doc: "d2", Term: ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.tokens)
			if err == nil {
				t.Fatal("Build() expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Build() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestBuildWorkedExample(t *testing.T) {
	m, err := Build(birdTokens())
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	wantCounts := []struct {
		doc   DocID
		term  string
		count int
	}{
		{"d1", "bird", 2},
		{"d1", "eats", 1},
		{"d2", "bird", 1},
		{"d2", "eats", 0}, // absent cell reads as zero
	}
	for _, wc := range wantCounts {
		if got := m.Count(wc.doc, wc.term); got != wc.count {
			t.Errorf("Count(%s, %s) = %d, want %d", wc.doc, wc.term, got, wc.count)
		}
	}
}

func TestColumnSums(t *testing.T) {
	m, err := Build(birdTokens())
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	sums := m.ColumnSums()
	want := map[string]int{"bird": 3, "eats": 1}
	if len(sums) != len(want) {
		t.Fatalf("ColumnSums() has %d terms, want %d", len(sums), len(want))
	}
	for term, count := range want {
		if sums[term] != count {
			t.Errorf("ColumnSums()[%s] = %d, want %d", term, sums[term], count)
		}
	}
}

func TestRowSumsMatchInputCounts(t *testing.T) {
	// RowSums per document must equal the number of input pairs with that id
	tests := []struct {
		name   string
		tokens []Token
		want   map[DocID]int
	}{
		{
			name:   "worked example",
			tokens: birdTokens(),
			want:   map[DocID]int{"d1": 3, "d2": 1},
		},
		{
			name: "single document",
			tokens: []Token{
				{Doc: "d1", Term: "alpha"},
				{Doc: "d1", Term: "beta"},
				{Doc: "d1", Term: "alpha"},
			},
			want: map[DocID]int{"d1": 3},
		},
		{
			name:   "empty stream",
			tokens: []Token{},
			want:   map[DocID]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Build(tt.tokens)
			if err != nil {
				t.Fatalf("Build() unexpected error: %v", err)
			}
			sums := m.RowSums()
			if len(sums) != len(tt.want) {
				t.Fatalf("RowSums() has %d documents, want %d", len(sums), len(tt.want))
			}
			for doc, count := range tt.want {
				if sums[doc] != count {
					t.Errorf("RowSums()[%s] = %d, want %d", doc, sums[doc], count)
				}
			}
		})
	}
}

func TestBuildOrderIndependence(t *testing.T) {
	forward, err := Build(birdTokens())
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	tokens := birdTokens()
	reversed := make([]Token, 0, len(tokens))
	for i := len(tokens) - 1; i >= 0; i-- {
		reversed = append(reversed, tokens[i])
	}
	backward, err := Build(reversed)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	if !forward.Equal(backward) {
		t.Error("Build() result depends on token order")
	}
}

func TestToDense(t *testing.T) {
	m, err := Build(birdTokens())
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	docs, terms, cells := m.ToDense()

	wantDocs := []DocID{"d1", "d2"}
	wantTerms := []string{"bird", "eats"}
	wantCells := [][]int{
		{2, 1},
		{1, 0},
	}

	if len(docs) != len(wantDocs) {
		t.Fatalf("ToDense() docs = %v, want %v", docs, wantDocs)
	}
	for i, doc := range wantDocs {
		if docs[i] != doc {
			t.Errorf("ToDense() docs[%d] = %s, want %s", i, docs[i], doc)
		}
	}
	if len(terms) != len(wantTerms) {
		t.Fatalf("ToDense() terms = %v, want %v", terms, wantTerms)
	}
	for j, term := range wantTerms {
		if terms[j] != term {
			t.Errorf("ToDense() terms[%d] = %s, want %s", j, terms[j], term)
		}
	}
	for i := range wantCells {
		for j := range wantCells[i] {
			if cells[i][j] != wantCells[i][j] {
				t.Errorf("ToDense() cells[%d][%d] = %d, want %d", i, j, cells[i][j], wantCells[i][j])
			}
		}
	}
}

func TestEmptyMatrixQueries(t *testing.T) {
	m, err := Build(nil)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	if sums := m.RowSums(); len(sums) != 0 {
		t.Errorf("RowSums() on empty matrix = %v, want empty", sums)
	}
	if sums := m.ColumnSums(); len(sums) != 0 {
		t.Errorf("ColumnSums() on empty matrix = %v, want empty", sums)
	}
	if stats := m.TermStatistics(); len(stats) != 0 {
		t.Errorf("TermStatistics() on empty matrix = %v, want empty", stats)
	}
	docs, terms, cells := m.ToDense()
	if len(docs) != 0 || len(terms) != 0 || len(cells) != 0 {
		t.Errorf("ToDense() on empty matrix = (%v, %v, %v), want all empty", docs, terms, cells)
	}
}
