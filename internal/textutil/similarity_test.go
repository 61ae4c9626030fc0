package textutil

import (
	"math"
	"slices"
	"testing"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *Fingerprint
		min, max float64
	}{
		{"both nil", nil, nil, 0, 0},
		{"one nil", nil, NewFingerprint("goroutines and channels"), 0, 0},
		{"case and punctuation", NewFingerprint("goroutines and channels"), NewFingerprint("Goroutines, and CHANNELS!"), 1, 1},
		{"disjoint", NewFingerprint("flour water yeast"), NewFingerprint("goroutines channels select"), 0, 0},
		{"overlap", NewFingerprint("buffered channels block"), NewFingerprint("unbuffered channels block"), 0.01, 0.99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Similarity(tt.b)
			if got < tt.min-1e-9 || got > tt.max+1e-9 {
				t.Fatalf("Similarity() = %v, want within [%v, %v]", got, tt.min, tt.max)
			}
			if back := tt.b.Similarity(tt.a); math.Abs(back-got) > 1e-12 {
				t.Fatalf("not symmetric: %v vs %v", got, back)
			}
		})
	}
}

func TestNewFingerprint(t *testing.T) {
	if fp := NewFingerprint("a of the"); fp != nil {
		t.Fatalf("expected nil for short and stop words, got %+v", fp)
	}
	fp := NewFingerprint("map map slice")
	if fp.TokenCount() != 2 {
		t.Fatalf("expected 2 distinct terms, got %d", fp.TokenCount())
	}
	// counts 2 and 1
	if math.Abs(fp.norm-math.Sqrt(5)) > 1e-9 {
		t.Fatalf("norm = %v, want sqrt(5)", fp.norm)
	}
	if (*Fingerprint)(nil).TokenCount() != 0 {
		t.Fatal("nil fingerprint should have no terms")
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"Hello World", []string{"hello", "world"}},
		{"a to the quick fox", []string{"quick", "fox"}},
		{"fmt.Println(\"hi\")", []string{"fmt", "println"}},
		{"utf8 and x86", []string{"utf8", "x86"}},
		{"Über Bücher", []string{"über", "bücher"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		if got := Tokenize(tt.input); !slices.Equal(got, tt.want) {
			t.Fatalf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCorpusIDFDownweightsCommonTerms(t *testing.T) {
	corpus := NewCorpus()
	for _, doc := range []string{
		"lesson on goroutines",
		"lesson on channels",
		"lesson on generics",
	} {
		corpus.Add(NewFingerprint(doc))
	}
	idf := corpus.IDF()
	if idf["lesson"] >= idf["goroutines"] {
		t.Fatalf("expected shared term to weigh less: lesson=%v goroutines=%v", idf["lesson"], idf["goroutines"])
	}
	if idf["lesson"] != 1 {
		t.Fatalf("term in every document should weigh 1, got %v", idf["lesson"])
	}

	query := NewFingerprint("lesson goroutines").Weighted(idf)
	onTopic := NewFingerprint("lesson on goroutines").Weighted(idf)
	offTopic := NewFingerprint("lesson on channels").Weighted(idf)
	if query.Similarity(onTopic) <= query.Similarity(offTopic) {
		t.Fatal("expected the goroutines lesson to rank first")
	}

	if NewCorpus().IDF() != nil {
		t.Fatal("expected nil IDF for an empty corpus")
	}
}

func TestSingleDocumentCorpusStillMatches(t *testing.T) {
	corpus := NewCorpus()
	doc := NewFingerprint("simple concurrency")
	corpus.Add(doc)
	idf := corpus.IDF()
	if got := NewFingerprint("concurrency").Weighted(idf).Similarity(doc.Weighted(idf)); got <= 0 {
		t.Fatalf("expected a positive score, got %v", got)
	}
}
