package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/recipes/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/recipes/{id}", "200"))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/recipes/42", http.NoBody))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/recipes/{id}", "200")))
	assert.Greater(t, testutil.CollectAndCount(httpRequestDuration), 0)
}

func TestMiddleware_StatusCodes(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		path   string
		status string
	}{
		{"/missing", "404"},
		{"/boom", "500"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", tc.path, tc.status))
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", tc.path, http.NoBody))
			assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", tc.path, tc.status)))
		})
	}
}

func TestMiddleware_OutsideChi(t *testing.T) {
	h := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unknown", "200"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/x", http.NoBody))

	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unknown", "200")))
}

func TestObserveSearch(t *testing.T) {
	match := testutil.ToFloat64(SearchesTotal.WithLabelValues("test", "match"))
	noMatch := testutil.ToFloat64(SearchesTotal.WithLabelValues("test", "no_match"))

	ObserveSearch("test", time.Now(), 0.7)
	ObserveSearch("test", time.Now(), 0)

	assert.Equal(t, match+1, testutil.ToFloat64(SearchesTotal.WithLabelValues("test", "match")))
	assert.Equal(t, noMatch+1, testutil.ToFloat64(SearchesTotal.WithLabelValues("test", "no_match")))
}

func TestSetCorpus(t *testing.T) {
	SetCorpus(12, 34)

	assert.Equal(t, 12.0, testutil.ToFloat64(CorpusRecipes))
	assert.Equal(t, 34.0, testutil.ToFloat64(VocabularyTerms))
}
