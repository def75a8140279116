package dtm

import (
	"testing"
)

func TestFilterByTermLength(t *testing.T) {
	m, err := Build(birdTokens())
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	tests := []struct {
		name      string
		minLength int
		wantTerms int
		wantNNZ   int
	}{
		{
			name:      "length over 3 keeps both",
			minLength: 4,
			wantTerms: 2,
			wantNNZ:   3,
		},
		{
			name:      "length over 4 drops everything",
			minLength: 5,
			wantTerms: 0,
			wantNNZ:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := m.Filter(MinTermLength(tt.minLength), nil)
			if filtered.NTerms() != tt.wantTerms {
				t.Errorf("NTerms() = %d, want %d", filtered.NTerms(), tt.wantTerms)
			}
			if filtered.NNZ() != tt.wantNNZ {
				t.Errorf("NNZ() = %d, want %d", filtered.NNZ(), tt.wantNNZ)
			}
			// the input matrix must be untouched
			if m.NNZ() != 3 {
				t.Errorf("Filter() mutated its input: NNZ = %d, want 3", m.NNZ())
			}
		})
	}
}

func TestFilterDropsEmptyRowsAndColumns(t *testing.T) {
	tokens := []Token{
		{Doc: "d1", Term: "only"},
		{Doc: "d2", Term: "keep"},
		{Doc: "d2", Term: "keep"},
	}
	m, err := Build(tokens)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	// dropping "only" leaves d1 with no entries; d1 must disappear
	filtered := m.Filter(func(st TermStats) bool { return st.Term != "only" }, nil)

	if filtered.NDocs() != 1 {
		t.Errorf("NDocs() = %d, want 1", filtered.NDocs())
	}
	if _, ok := filtered.RowSums()["d1"]; ok {
		t.Error("document d1 should be dropped, not kept as an empty row")
	}
	if filtered.Count("d2", "keep") != 2 {
		t.Errorf("Count(d2, keep) = %d, want 2", filtered.Count("d2", "keep"))
	}
}

func TestFilterByDocument(t *testing.T) {
	m, err := Build(birdTokens())
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	filtered := m.Filter(nil, func(doc DocID) bool { return doc == "d1" })

	if filtered.NDocs() != 1 {
		t.Errorf("NDocs() = %d, want 1", filtered.NDocs())
	}
	if filtered.Count("d2", "bird") != 0 {
		t.Error("entries for excluded document d2 should be gone")
	}
	if filtered.Count("d1", "bird") != 2 {
		t.Errorf("Count(d1, bird) = %d, want 2", filtered.Count("d1", "bird"))
	}
}

func TestFilterIdempotence(t *testing.T) {
	tokens := []Token{
		{Doc: "d1", Term: "alpha"},
		{Doc: "d1", Term: "be"},
		{Doc: "d2", Term: "alpha"},
		{Doc: "d2", Term: "gamma"},
		{Doc: "d3", Term: "be"},
	}
	m, err := Build(tokens)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	termPred := MinTermLength(3)
	docPred := func(doc DocID) bool { return doc != "d3" }

	once := m.Filter(termPred, docPred)
	twice := once.Filter(termPred, docPred)

	if !once.Equal(twice) {
		t.Error("filtering an already-filtered matrix with the same predicates changed it")
	}
}

func TestFilterIdempotenceAfterDocumentDrop(t *testing.T) {
	// dropping "boiler" empties d2, shrinking the document count; alpha's
	// relative document frequency in the filtered matrix rises from 0.5 to
	// 1.0, so a ratio predicate must stay bound to the original corpus
	tokens := []Token{
		{Doc: "d1", Term: "alpha"},
		{Doc: "d1", Term: "boiler"},
		{Doc: "d2", Term: "boiler"},
	}
	m, err := Build(tokens)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	termPred := MaxDocFreqRatio(m, 0.6)

	once := m.Filter(termPred, nil)
	if once.NDocs() != 1 || once.Count("d1", "alpha") != 1 {
		t.Fatalf("first filter = %d docs, %d entries, want only (d1, alpha)", once.NDocs(), once.NNZ())
	}

	twice := once.Filter(termPred, nil)
	if !once.Equal(twice) {
		t.Errorf("re-filtering changed the matrix: once has terms %v, twice has %v",
			once.Terms(), twice.Terms())
	}
}

func TestFilterThenDenseExcludesRejectedCells(t *testing.T) {
	tokens := []Token{
		{Doc: "d1", Term: "keep"},
		{Doc: "d1", Term: "drop"},
		{Doc: "d2", Term: "keep"},
		{Doc: "d2", Term: "drop"},
	}
	m, err := Build(tokens)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	filtered := m.Filter(func(st TermStats) bool { return st.Term == "keep" }, nil)
	_, terms, cells := filtered.ToDense()

	for j, term := range terms {
		if term == "drop" {
			t.Fatal("excluded term present in dense output")
		}
		for i := range cells {
			if cells[i][j] == 0 {
				t.Errorf("cell [%d][%d] for kept term %s is zero", i, j, term)
			}
		}
	}
}

func TestFilterRejectAllYieldsEmptyMatrix(t *testing.T) {
	m, err := Build(birdTokens())
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	empty := m.Filter(func(TermStats) bool { return false }, nil)

	if empty.NDocs() != 0 || empty.NTerms() != 0 || empty.NNZ() != 0 {
		t.Errorf("reject-all filter = (%d docs, %d terms, %d entries), want empty",
			empty.NDocs(), empty.NTerms(), empty.NNZ())
	}
	// empty matrix is still fully queryable
	if sums := empty.ColumnSums(); len(sums) != 0 {
		t.Errorf("ColumnSums() on empty filtered matrix = %v, want empty", sums)
	}
}

func TestStockPredicates(t *testing.T) {
	tokens := []Token{
		{Doc: "d1", Term: "common"},
		{Doc: "d2", Term: "common"},
		{Doc: "d3", Term: "common"},
		{Doc: "d1", Term: "rare"},
		{Doc: "d1", Term: "1234"},
		{Doc: "d2", Term: "semi-rare"},
		{Doc: "d3", Term: "semi-rare"},
	}
	m, err := Build(tokens)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	tests := []struct {
		name      string
		pred      TermPredicate
		wantTerms []string
	}{
		{
			name:      "min doc frequency 2",
			pred:      MinDocFrequency(2),
			wantTerms: []string{"common", "semi-rare"},
		},
		{
			name:      "max doc freq ratio drops boilerplate",
			pred:      MaxDocFreqRatio(m, 0.7),
			wantTerms: []string{"1234", "rare", "semi-rare"},
		},
		{
			name:      "drop numeric",
			pred:      DropNumeric(),
			wantTerms: []string{"common", "rare", "semi-rare"},
		},
		{
			name:      "alnum only",
			pred:      AlnumOnly(),
			wantTerms: []string{"1234", "common", "rare"},
		},
		{
			name:      "conjunction",
			pred:      AllTerms(DropNumeric(), AlnumOnly(), MinDocFrequency(2)),
			wantTerms: []string{"common"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Filter(tt.pred, nil).Terms()
			if len(got) != len(tt.wantTerms) {
				t.Fatalf("Terms() = %v, want %v", got, tt.wantTerms)
			}
			for i, term := range tt.wantTerms {
				if got[i] != term {
					t.Errorf("Terms()[%d] = %s, want %s", i, got[i], term)
				}
			}
		})
	}
}
