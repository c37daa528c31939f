package search

import (
	"math"
	"sort"

	"github.com/recipe-finder/backend/internal/recipe"
)

// DefaultTopK is the number of results returned when no limit is given.
const DefaultTopK = 10

// Result holds a matching recipe and its score
type Result struct {
	Recipe recipe.Recipe `json:"recipe"`
	Score  float64       `json:"score"`
	Rank   int           `json:"rank"`
}

// Index holds the vectorized ingredients of a corpus. It is built once and
// never mutated, so it is safe for concurrent searches.
type Index struct {
	corpus     *recipe.Corpus
	vectorizer *TFIDFVectorizer
	vectors    []Vector
}

// NewIndex fits the vectorizer on the corpus ingredients and vectorizes every row.
// Vector i always belongs to corpus row i.
func NewIndex(corpus *recipe.Corpus) *Index {
	if corpus == nil {
		corpus = recipe.NewCorpus(nil, nil)
	}
	docs := corpus.Ingredients()

	vectorizer := NewTFIDFVectorizer()
	vectorizer.Fit(docs)

	vectors := make([]Vector, len(docs))
	for i, doc := range docs {
		vectors[i] = vectorizer.Transform(doc)
	}

	return &Index{
		corpus:     corpus,
		vectorizer: vectorizer,
		vectors:    vectors,
	}
}

// Score returns the cosine similarity of the query against every recipe, in row order.
func (idx *Index) Score(query string) []float64 {
	queryVector := idx.vectorizer.Transform(query)
	scores := make([]float64, len(idx.vectors))
	for i, vec := range idx.vectors {
		scores[i] = CosineSimilarity(queryVector, vec)
	}
	return scores
}

// Search returns the topK most similar recipes, best first. Equal scores keep
// row order. A non-positive topK means DefaultTopK.
func (idx *Index) Search(query string, topK int) []Result {
	if topK <= 0 {
		topK = DefaultTopK
	}

	scores := idx.Score(query)
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if len(order) > topK {
		order = order[:topK]
	}

	results := make([]Result, 0, len(order))
	for rank, row := range order {
		results = append(results, Result{
			Recipe: idx.corpus.At(row),
			Score:  scores[row],
			Rank:   rank + 1,
		})
	}
	return results
}

// Len is the number of indexed recipes.
func (idx *Index) Len() int { return len(idx.vectors) }

// VocabularySize is the number of distinct terms learned from the corpus.
func (idx *Index) VocabularySize() int { return len(idx.vectorizer.Vocabulary) }

func (idx *Index) Corpus() *recipe.Corpus { return idx.corpus }

// CosineSimilarity calculates the cosine similarity between two sparse vectors.
// A zero vector on either side scores 0.
func CosineSimilarity(a, b Vector) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	var dotProduct float64
	for _, i := range a.indices() {
		dotProduct += a[i] * b[i]
	}
	normA, normB := norm(a), norm(b)
	if normA == 0 || normB == 0 {
		return 0
	}
	return dotProduct / (normA * normB)
}

func norm(v Vector) float64 {
	var sum float64
	for _, i := range v.indices() {
		sum += v[i] * v[i]
	}
	return math.Sqrt(sum)
}
