package relay

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/claimcheck/internal/cache"
	"github.com/ppiankov/claimcheck/internal/metrics"
	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/ppiankov/claimcheck/internal/util"
	"github.com/ppiankov/claimcheck/internal/worker"
)

const (
	defaultCacheTTL = 10 * time.Minute
	shutdownTimeout = 5 * time.Second
)

var endpoints = []string{
	"GET /health",
	"GET /metrics",
	"POST /search",
	"POST /api/search/duckduckgo",
}

// ServerOptions configures the relay HTTP server
type ServerOptions struct {
	Limit        int
	NoCache      bool
	CacheTTL     time.Duration
	AllowOrigins []string
}

// Server answers search requests with results from a backend
type Server struct {
	backend Backend
	cache   *cache.MemoryCache
	limit   int
	router  *gin.Engine
}

// NewBackend selects the configured search backend: the external command
// when one is set, otherwise the built-in scraper
func NewBackend(cfg model.RelayConfig, httpCfg model.HTTPConfig, limiter *worker.Limiter) Backend {
	if cfg.Command != "" {
		return NewCommandBackend(cfg.Command, cfg.Args, cfg.Timeout)
	}

	client := util.NewHTTPClient(httpCfg, httpCfg.Timeout)
	var robots *util.RobotsChecker
	if cfg.RespectRobots {
		robots = util.NewRobotsChecker(client, httpCfg.UserAgent)
	}
	return NewScraper(NewFetcher(client, httpCfg.UserAgent, 0), cfg.ScraperURL, robots, limiter)
}

// NewServer creates the relay server around backend
func NewServer(backend Backend, opts ServerOptions) *Server {
	s := &Server{
		backend: backend,
		limit:   opts.Limit,
	}
	if s.limit <= 0 {
		s.limit = DefaultLimit
	}
	if !opts.NoCache {
		ttl := opts.CacheTTL
		if ttl <= 0 {
			ttl = defaultCacheTTL
		}
		s.cache = cache.NewMemoryCache(ttl, 2*ttl)
	}

	s.router = gin.New()
	s.router.Use(gin.Recovery())
	s.router.Use(otelgin.Middleware("claimcheck-relay"))
	s.router.Use(requestLogger())
	s.router.Use(cors.New(corsConfig(opts.AllowOrigins)))

	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(metrics.Handler()))
	s.router.POST("/search", s.handleSearch)
	s.router.POST("/api/search/duckduckgo", s.handleSearch)
	s.router.NoRoute(handleNotFound)

	return s
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("relay listening", "addr", addr, "backend", s.backend.Name())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Info("relay shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"message": "claimcheck relay is running",
		"backend": s.backend.Name(),
	})
}

type searchRequest struct {
	Query any `json:"query"`
}

func (s *Server) handleSearch(c *gin.Context) {
	var req searchRequest
	query := ""
	if err := c.ShouldBindJSON(&req); err == nil {
		if q, ok := req.Query.(string); ok {
			query = strings.TrimSpace(q)
		}
	}
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Query parameter is required and must be a string",
		})
		return
	}

	results, err := s.search(c.Request.Context(), query)
	if err != nil {
		slog.Error("relay search failed", "query", query, "backend", s.backend.Name(), "error", err)
		c.JSON(http.StatusInternalServerError, model.RelayResponse{
			Success: false,
			Query:   query,
			Results: []model.RelayResult{},
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.RelayResponse{
		Success: true,
		Query:   query,
		Results: results,
		Count:   len(results),
	})
}

// search consults the result cache before the backend. Empty results are
// not cached.
func (s *Server) search(ctx context.Context, query string) ([]model.RelayResult, error) {
	key := cache.Key("relay", s.backend.Name(), strconv.Itoa(s.limit), query)
	if s.cache != nil {
		if data, ok := s.cache.Get(key); ok {
			var cached []model.RelayResult
			if err := json.Unmarshal(data, &cached); err == nil {
				metrics.CacheLookups.WithLabelValues("relay", metrics.OutcomeHit).Inc()
				return cached, nil
			}
		}
		metrics.CacheLookups.WithLabelValues("relay", metrics.OutcomeMiss).Inc()
	}

	start := time.Now()
	results, err := s.backend.Search(ctx, query, s.limit)
	metrics.RelaySearchDuration.WithLabelValues(s.backend.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	results = normalize(results, s.limit)

	if s.cache != nil && len(results) > 0 {
		if data, err := json.Marshal(results); err == nil {
			_ = s.cache.Set(key, data, 0)
		}
	}
	return results, nil
}

func handleNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success":            false,
		"error":              "Endpoint not found",
		"availableEndpoints": endpoints,
	})
}

// requestLogger logs each request and counts it by route and status code
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		code := c.Writer.Status()
		metrics.RelayRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
		slog.Debug("relay request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", code,
			"duration", time.Since(start),
		)
	}
}
