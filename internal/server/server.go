// =============================================================================
// Roof Adjustment Engine - HTTP Adapter
// =============================================================================
//
// This module exposes the engine over HTTP for the estimate review frontend.
// The request and response shapes match the serverless function the frontend
// was written against, so it can point at either one.
//
// ROUTES:
//   POST /process-claim     Run a claim. Accepts {line_items, roof_measurements}
//                           or a {"body": "<json string>"} envelope.
//   GET  /catalog/search    Fuzzy search of the price catalog (?q=&limit=)
//   GET  /healthz           Liveness and catalog status
//
// RESPONSES:
//   Success: 200 {"success": true, "data": <result>}
//   Failure: 4xx/5xx {"success": false, "error": "<message>"}
//
// CATALOG RELOAD:
//   The engine is held behind an atomic pointer. When the catalog file is
//   rewritten a new engine is built and swapped in; requests already running
//   finish against the catalog they started with.
//
// =============================================================================

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ginjaninja78/roof-adjustment-engine/internal/catalog"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/engine"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/logging"
	"github.com/ginjaninja78/roof-adjustment-engine/internal/types"
)

// DefaultSearchLimit is used when /catalog/search is called without limit.
const DefaultSearchLimit = 10

// ErrTimeout is reported when a claim does not finish within the request
// timeout.
var ErrTimeout = errors.New("processing timed out")

// =============================================================================
// SERVER STRUCTURE
// =============================================================================

// Server serves the engine over HTTP.
type Server struct {
	engine     atomic.Pointer[engine.Engine]
	engineOpts []engine.Option
	timeout    time.Duration
	log        logging.Logger
	router     *gin.Engine
}

// Options configures a Server.
type Options struct {
	// Timeout bounds a single /process-claim run. Zero disables it.
	Timeout time.Duration

	// Logger receives request and reload logs. Nil discards them.
	Logger logging.Logger

	// EngineOptions are applied every time an engine is built, including
	// after a catalog reload.
	EngineOptions []engine.Option
}

// New creates a server pricing against cat.
func New(cat *catalog.Catalog, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	s := &Server{
		engineOpts: opts.EngineOptions,
		timeout:    opts.Timeout,
		log:        logging.Named(opts.Logger, "server"),
	}
	s.SetCatalog(cat)

	router := gin.New()
	router.Use(gin.Recovery(), s.requestLog(), cors())

	router.POST("/process-claim", s.processClaim)
	router.OPTIONS("/process-claim", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/catalog/search", s.searchCatalog)
	router.GET("/healthz", s.health)

	s.router = router
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Engine returns the engine currently serving requests.
func (s *Server) Engine() *engine.Engine { return s.engine.Load() }

// SetCatalog builds an engine over cat and makes it current.
func (s *Server) SetCatalog(cat *catalog.Catalog) {
	s.engine.Store(engine.New(cat, s.engineOpts...))
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
		s.log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down: %w", err)
		}
		return nil
	}
}

// =============================================================================
// HANDLERS
// =============================================================================

type response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func fail(c *gin.Context, status int, err error) {
	c.JSON(status, response{Success: false, Error: err.Error()})
}

func (s *Server) processClaim(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		fail(c, http.StatusBadRequest, fmt.Errorf("failed to read request body: %w", err))
		return
	}

	claim, err := engine.DecodeClaim(body)
	if err != nil {
		fail(c, http.StatusBadRequest, fmt.Errorf("invalid claim: %w", err))
		return
	}

	result, err := s.run(c.Request.Context(), claim)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrTimeout) {
			status = http.StatusGatewayTimeout
		}
		var ruleErr *engine.RuleError
		if errors.As(err, &ruleErr) {
			s.log.Error("Rule %s failed: %v", ruleErr.RuleID, ruleErr.Err)
		}
		fail(c, status, err)
		return
	}

	c.JSON(http.StatusOK, response{Success: true, Data: result})
}

// run processes a claim on the current engine, giving up when the request
// timeout expires or the client goes away. The run itself cannot be
// interrupted; its result is discarded.
func (s *Server) run(ctx context.Context, claim *types.Claim) (*types.Result, error) {
	e := s.engine.Load()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	type outcome struct {
		result *types.Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := e.Process(claim)
		done <- outcome{result, err}
	}()

	select {
	case out := <-done:
		return out.result, out.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ctx.Err()
	}
}

func (s *Server) searchCatalog(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		fail(c, http.StatusBadRequest, errors.New("query parameter q is required"))
		return
	}

	limit := DefaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			fail(c, http.StatusBadRequest, fmt.Errorf("limit must be a positive integer (got %q)", raw))
			return
		}
		limit = n
	}

	matches := s.engine.Load().Catalog().Suggest(query, limit)
	if matches == nil {
		matches = []catalog.Entry{}
	}
	c.JSON(http.StatusOK, response{Success: true, Data: gin.H{"query": query, "results": matches}})
}

func (s *Server) health(c *gin.Context) {
	cat := s.engine.Load().Catalog()
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"catalog_source": cat.Source(),
		"catalog_items":  cat.Len(),
	})
}

// =============================================================================
// MIDDLEWARE
// =============================================================================

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Next()
	}
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Millisecond))
	}
}
