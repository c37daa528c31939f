package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/recipe-finder/backend/internal/config"
	"github.com/recipe-finder/backend/internal/engine"
	"github.com/recipe-finder/backend/internal/metrics"
	"github.com/recipe-finder/backend/internal/search"
)

// Engine is what the server needs from the recipe engine
type Engine interface {
	Search(source, query string) []search.Result
	Categories() []string
	Header() []string
	Status() engine.EngineStats
	Uptime() time.Duration
}

type Server struct {
	Engine Engine
	Logger *logrus.Entry
	Router chi.Router

	cfg        *config.Config
	pages      map[string]*pageTemplate
	httpServer *http.Server
}

func NewServer(cfg *config.Config, eng Engine, logger *logrus.Entry) (*Server, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		Engine: eng,
		Logger: logger,
		Router: chi.NewRouter(),
		cfg:    cfg,
		pages:  pages,
	}
	s.routes()
	s.httpServer = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.Router,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}
	return s, nil
}

func (s *Server) routes() {
	s.Router.Use(chimiddleware.RequestID)
	s.Router.Use(chimiddleware.RealIP)
	s.Router.Use(accessLog(s.Logger))
	s.Router.Use(recoverer(s.Logger))
	if s.cfg.Metrics.Enabled {
		s.Router.Use(metrics.Middleware())
	}

	s.Router.Get("/", s.handleHome)
	s.Router.Get("/finder", s.handleFinder)
	s.Router.Get("/about", s.handleAbout)
	s.Router.Get("/settings", s.handleSettings)
	s.Router.Post("/settings", s.handleSettingsUpdate)

	s.Router.Get("/healthz", s.handleHealth)
	if s.cfg.Metrics.Enabled {
		s.Router.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	s.Router.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.Server.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
		r.Get("/search", s.handleSearch)
		r.Get("/categories", s.handleCategories)
		r.Get("/status", s.handleStatus)
	})

	s.Router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusNotFound, ErrorResponse{Error: "Not found"})
	})
	s.Router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
	})
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.Logger.Infof("Starting Recipe Finder on %s", s.cfg.Server.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.Logger.Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Responses
type ErrorResponse struct {
	Error string `json:"error"`
}

type SearchResponse struct {
	Query   string             `json:"query"`
	Count   int                `json:"count"`
	Header  []string           `json:"header"`
	Results []SearchResultView `json:"results"`
}

type SearchResultView struct {
	Rank        int               `json:"rank"`
	Row         int               `json:"row"`
	Score       float64           `json:"score"`
	Name        string            `json:"name"`
	Ingredients string            `json:"ingredients"`
	Category    string            `json:"category"`
	Fields      map[string]string `json:"fields"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

type StatusResponse struct {
	Recipes    int    `json:"recipes"`
	Vocabulary int    `json:"vocabulary"`
	Categories int    `json:"categories"`
	LoadTime   string `json:"load_time"`
	Uptime     string `json:"uptime"`
}

// Handlers

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Query 'q' is required"})
		return
	}

	hits := s.Engine.Search("api", query)
	header := s.Engine.Header()

	response := SearchResponse{
		Query:   query,
		Count:   len(hits),
		Header:  header,
		Results: make([]SearchResultView, len(hits)),
	}
	for i, hit := range hits {
		fields := make(map[string]string, len(header))
		for col, name := range header {
			fields[name] = hit.Recipe.Value(col)
		}
		response.Results[i] = SearchResultView{
			Rank:        hit.Rank,
			Row:         hit.Recipe.Row,
			Score:       hit.Score,
			Name:        hit.Recipe.Name,
			Ingredients: hit.Recipe.Ingredients,
			Category:    hit.Recipe.Category,
			Fields:      fields,
		}
	}

	jsonResponse(w, http.StatusOK, response)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories := s.Engine.Categories()
	if categories == nil {
		categories = []string{}
	}
	jsonResponse(w, http.StatusOK, CategoriesResponse{Categories: categories})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	stats := s.Engine.Status()

	jsonResponse(w, http.StatusOK, StatusResponse{
		Recipes:    stats.Recipes,
		Vocabulary: stats.Vocabulary,
		Categories: stats.Categories,
		LoadTime:   stats.LoadTime.String(),
		Uptime:     s.Engine.Uptime().Truncate(time.Second).String(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func jsonResponse(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
