package textutil

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

const minTokenRunes = 3

// stopWords are common English words that would otherwise dominate short
// lesson titles and headings.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {}, "into": {},
	"about": {}, "this": {}, "that": {}, "are": {}, "how": {}, "you": {},
	"your": {}, "use": {}, "using": {},
}

// Fingerprint is a sparse term vector used to rank lessons against a query.
type Fingerprint struct {
	terms map[string]float64
	norm  float64
}

// NewFingerprint counts the terms of text. It returns nil when nothing
// survives tokenizing.
func NewFingerprint(text string) *Fingerprint {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	counts := make(map[string]float64, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	return newFingerprint(counts)
}

func newFingerprint(terms map[string]float64) *Fingerprint {
	var sum float64
	for _, w := range terms {
		sum += w * w
	}
	if sum == 0 {
		return nil
	}
	return &Fingerprint{terms: terms, norm: math.Sqrt(sum)}
}

// Tokenize case-folds text and splits it on anything that is not a letter or
// digit. Tokens shorter than three characters and stop words are dropped, so
// identifiers like fmt.Println yield "fmt" and "println".
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(cases.Fold().String(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if utf8.RuneCountInString(field) < minTokenRunes {
			continue
		}
		if _, stop := stopWords[field]; stop {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}

// TokenCount returns the number of distinct terms.
func (f *Fingerprint) TokenCount() int {
	if f == nil {
		return 0
	}
	return len(f.terms)
}

// Weighted scales each term by its weight in idf. Terms missing from idf keep
// their count; terms weighted to zero are dropped.
func (f *Fingerprint) Weighted(idf map[string]float64) *Fingerprint {
	if f == nil || len(idf) == 0 {
		return f
	}
	weighted := make(map[string]float64, len(f.terms))
	for term, count := range f.terms {
		w := count
		if idfWeight, ok := idf[term]; ok {
			w *= idfWeight
		}
		if w != 0 {
			weighted[term] = w
		}
	}
	return newFingerprint(weighted)
}

// Similarity is the cosine of the angle between the two vectors, in [0, 1]
// for non-negative weights. Nil fingerprints score 0.
func (f *Fingerprint) Similarity(other *Fingerprint) float64 {
	if f == nil || other == nil {
		return 0
	}
	small, large := f, other
	if len(small.terms) > len(large.terms) {
		small, large = large, small
	}
	var dot float64
	for term, w := range small.terms {
		dot += w * large.terms[term]
	}
	if dot == 0 {
		return 0
	}
	return dot / (f.norm * other.norm)
}

// Corpus tracks how many documents contain each term.
type Corpus struct {
	docs    int
	docFreq map[string]int
}

func NewCorpus() *Corpus {
	return &Corpus{docFreq: make(map[string]int)}
}

// Add counts fp's distinct terms once. Nil fingerprints still count as a
// document so empty lessons dilute nothing but the total.
func (c *Corpus) Add(fp *Fingerprint) {
	if c == nil {
		return
	}
	c.docs++
	if fp == nil {
		return
	}
	for term := range fp.terms {
		c.docFreq[term]++
	}
}

// IDF returns smoothed inverse document frequencies,
// ln((N+1)/(df+1)) + 1. The +1 keeps terms found in every document above
// zero, so a library holding a single lesson can still be searched.
func (c *Corpus) IDF() map[string]float64 {
	if c == nil || c.docs == 0 {
		return nil
	}
	n := float64(c.docs)
	idf := make(map[string]float64, len(c.docFreq))
	for term, df := range c.docFreq {
		idf[term] = math.Log((n+1)/(float64(df)+1)) + 1
	}
	return idf
}
