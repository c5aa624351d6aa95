// Package server exposes the portfolio and the instrument scores over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/etnz/folio"
	"github.com/etnz/folio/scoring"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/patrickmn/go-cache"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// PriceSource provides the current quotes.
type PriceSource interface {
	Prices(ctx context.Context) (folio.PriceMap, error)
}

// AttributeSource provides the scoring universe.
type AttributeSource interface {
	Attributes(ctx context.Context) ([]scoring.Attributes, error)
}

// Config holds server configuration
type Config struct {
	Port       int
	Log        zerolog.Logger
	Ledger     folio.TransactionSource
	Sink       folio.TransactionSink // nil for a read-only server
	Prices     PriceSource
	Attributes AttributeSource // nil disables the screener

	Normalizer   folio.Normalizer
	Special      folio.InstrumentSet
	Options      []folio.Option
	ScoreOptions []scoring.Option
	Currency     string

	CacheTTL  time.Duration
	Refresh   string     // cron spec (with seconds), empty disables the refresh job
	RateLimit rate.Limit // requests per second, 0 for the default
	Burst     int
}

// Server represents the HTTP server
type Server struct {
	router  *chi.Mux
	server  *http.Server
	log     zerolog.Logger
	cfg     Config
	cache   *cache.Cache
	limiter *rate.Limiter
	cron    *cron.Cron
}

// New creates a new HTTP server
func New(cfg Config) (*Server, error) {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = rate.Every(100 * time.Millisecond)
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 30
	}
	s := &Server{
		router:  chi.NewRouter(),
		log:     cfg.Log.With().Str("component", "server").Logger(),
		cfg:     cfg,
		cache:   cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		limiter: rate.NewLimiter(cfg.RateLimit, cfg.Burst),
		cron:    cron.New(cron.WithSeconds()),
	}
	if cfg.Refresh != "" {
		if _, err := s.cron.AddFunc(cfg.Refresh, s.refresh); err != nil {
			return nil, fmt.Errorf("invalid refresh schedule %q: %w", cfg.Refresh, err)
		}
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.rateLimitMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/report", s.handleReport)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/", s.handlePortfolio)
			r.Get("/{instrument}", s.handlePosition)
		})
		r.Get("/liquidity", s.handleLiquidity)
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", s.handleTransactions)
			r.Post("/", s.handleAppendTransaction)
		})
		r.Post("/score", s.handleScore)
		r.Get("/screener", s.handleScreener)
	})
}

// Start starts the refresh job and the HTTP server. It blocks until the
// server stops.
func (s *Server) Start() error {
	s.cron.Start()
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	<-s.cron.Stop().Done()
	return s.server.Shutdown(ctx)
}

// refresh drops every cached result and warms the portfolio again.
func (s *Server) refresh() {
	s.cache.Flush()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := s.portfolio(ctx); err != nil {
		s.log.Error().Err(err).Msg("refresh failed")
		return
	}
	s.log.Debug().Msg("portfolio refreshed")
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

// rateLimitMiddleware rejects requests above the configured rate.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			s.log.Warn().Str("method", r.Method).Str("path", r.URL.Path).Str("remote", r.RemoteAddr).Msg("rate limit exceeded")
			s.writeError(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
			return
		}
		next.ServeHTTP(w, r)
	})
}
