package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "recipe_finder"

// Search and corpus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total number of ingredient searches",
		},
		[]string{"source", "outcome"}, // outcome: "match" / "no_match"
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Search duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		},
		[]string{"source"},
	)

	CorpusRecipes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "corpus_recipes",
			Help:      "Number of recipes in the loaded corpus",
		},
	)

	VocabularyTerms = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "vocabulary_terms",
			Help:      "Number of distinct ingredient terms in the fitted vocabulary",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestDuration,
		httpRequestsTotal,
		SearchesTotal,
		SearchDuration,
		CorpusRecipes,
		VocabularyTerms,
	)
}

// ObserveSearch records one search. A search matches when its best score is positive.
func ObserveSearch(source string, started time.Time, bestScore float64) {
	outcome := "no_match"
	if bestScore > 0 {
		outcome = "match"
	}
	SearchesTotal.WithLabelValues(source, outcome).Inc()
	SearchDuration.WithLabelValues(source).Observe(time.Since(started).Seconds())
}

// SetCorpus publishes the corpus and vocabulary sizes.
func SetCorpus(recipes, terms int) {
	CorpusRecipes.Set(float64(recipes))
	VocabularyTerms.Set(float64(terms))
}
