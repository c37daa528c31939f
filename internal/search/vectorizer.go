package search

import (
	"math"
	"sort"
)

// Vector is a sparse term-weight vector keyed by vocabulary index.
type Vector map[int]float64

// indices returns the populated indices in ascending order, so sums over a
// vector do not depend on map iteration order.
func (v Vector) indices() []int {
	out := make([]int, 0, len(v))
	for i := range v {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Vectorizer turns text into a vector
type Vectorizer interface {
	Fit(docs []string)
	Transform(text string) Vector
}

// TFIDFVectorizer implements Term Frequency - Inverse Document Frequency.
// Vocabulary indices follow lexicographic term order and every vector is L2-normalized.
type TFIDFVectorizer struct {
	Vocabulary map[string]int
	IDF        []float64
}

func NewTFIDFVectorizer() *TFIDFVectorizer {
	return &TFIDFVectorizer{
		Vocabulary: make(map[string]int),
	}
}

// Fit analyzes the corpus to build vocabulary and IDF stats
func (v *TFIDFVectorizer) Fit(docs []string) {
	docCount := float64(len(docs))
	wordDocCounts := make(map[string]int)

	for _, doc := range docs {
		seenInDoc := make(map[string]bool)
		for _, term := range Analyze(doc) {
			if !seenInDoc[term] {
				wordDocCounts[term]++
				seenInDoc[term] = true
			}
		}
	}

	terms := make([]string, 0, len(wordDocCounts))
	for term := range wordDocCounts {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	for i, term := range terms {
		v.Vocabulary[term] = i
		// smoothed: idf = ln((1 + N) / (1 + df)) + 1
		v.IDF[i] = math.Log((1+docCount)/(1+float64(wordDocCounts[term]))) + 1
	}
}

// Transform converts text to a vector based on the learned vocabulary.
// Terms outside the vocabulary are ignored; text with no known terms yields an empty vector.
func (v *TFIDFVectorizer) Transform(text string) Vector {
	vector := make(Vector)
	for _, term := range Analyze(text) {
		if idx, ok := v.Vocabulary[term]; ok {
			vector[idx]++
		}
	}

	for idx, count := range vector {
		vector[idx] = count * v.IDF[idx]
	}
	n := norm(vector)
	if n == 0 {
		return vector
	}
	for idx := range vector {
		vector[idx] /= n
	}
	return vector
}

// Terms returns the vocabulary in index order.
func (v *TFIDFVectorizer) Terms() []string {
	terms := make([]string, len(v.Vocabulary))
	for term, idx := range v.Vocabulary {
		terms[idx] = term
	}
	return terms
}
