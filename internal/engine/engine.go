package engine

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/recipe-finder/backend/internal/config"
	"github.com/recipe-finder/backend/internal/metrics"
	"github.com/recipe-finder/backend/internal/recipe"
	"github.com/recipe-finder/backend/internal/search"
	"github.com/recipe-finder/backend/internal/storage"
)

// Engine owns the loaded corpus and its search index. Everything it holds is
// built in NewEngine and read-only afterwards.
type Engine struct {
	Config *config.Config
	Logger *logrus.Entry
	Index  *search.Index

	Stats EngineStats
}

type EngineStats struct {
	StartTime  time.Time
	Recipes    int
	Vocabulary int
	Categories int
	LoadTime   time.Duration
}

func NewEngine(cfg *config.Config, logger *logrus.Entry, store storage.CorpusStorage) (*Engine, error) {
	start := time.Now()

	corpus, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	return FromCorpus(cfg, logger, corpus, start), nil
}

// FromCorpus builds an engine around an already loaded corpus.
func FromCorpus(cfg *config.Config, logger *logrus.Entry, corpus *recipe.Corpus, start time.Time) *Engine {
	idx := search.NewIndex(corpus)

	e := &Engine{
		Config: cfg,
		Logger: logger,
		Index:  idx,
		Stats: EngineStats{
			StartTime:  time.Now(),
			Recipes:    idx.Len(),
			Vocabulary: idx.VocabularySize(),
			Categories: len(idx.Corpus().Categories()),
			LoadTime:   time.Since(start),
		},
	}
	metrics.SetCorpus(e.Stats.Recipes, e.Stats.Vocabulary)

	logger.WithFields(logrus.Fields{
		"recipes":    e.Stats.Recipes,
		"vocabulary": e.Stats.Vocabulary,
		"categories": e.Stats.Categories,
		"took":       e.Stats.LoadTime,
	}).Info("Recipe index ready")

	return e
}

// Search runs an ingredient query against the index and records it under source.
func (e *Engine) Search(source, query string) []search.Result {
	started := time.Now()
	results := e.Index.Search(query, e.topK())

	var best float64
	if len(results) > 0 {
		best = results[0].Score
	}
	metrics.ObserveSearch(source, started, best)

	e.Logger.WithFields(logrus.Fields{
		"source":  source,
		"query":   query,
		"results": len(results),
		"best":    best,
	}).Debug("Search served")

	return results
}

// Categories lists the distinct recipe categories in first-appearance order.
func (e *Engine) Categories() []string {
	return e.Index.Corpus().Categories()
}

func (e *Engine) Header() []string {
	return e.Index.Corpus().Header
}

func (e *Engine) Status() EngineStats {
	return e.Stats
}

func (e *Engine) Uptime() time.Duration {
	return time.Since(e.Stats.StartTime)
}

func (e *Engine) topK() int {
	if e.Config == nil || e.Config.Dataset.TopK <= 0 {
		return search.DefaultTopK
	}
	return e.Config.Dataset.TopK
}
