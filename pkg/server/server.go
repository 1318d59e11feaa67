// Package server implements the boxscene preview server.
//
// The server renders TOML diagrams posted to it, which makes it convenient
// for editor integrations and live previews:
//
//	curl --data-binary @diagram.toml 'localhost:8080/render?format=svg'
//
// Routes:
//   - GET  /healthz  liveness and build version
//   - POST /render   render the body to ?format= (svg, png, pdf, json, dot)
//   - POST /tree     ownership tree as DOT, or Graphviz SVG with ?format=svg
//
// Every request gets an X-Request-ID, is access-logged, and passes a shared
// token-bucket limiter; exhausted buckets answer 429.
package server

import (
	"context"
	goerrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/matzehuels/boxscene/pkg/pipeline"
)

// Defaults for Config.
const (
	DefaultAddr           = "127.0.0.1:8080"
	DefaultRateLimit      = 10.0
	DefaultBurst          = 20
	DefaultMaxBodyBytes   = 1 << 20
	DefaultRequestTimeout = 30 * time.Second
	shutdownTimeout       = 5 * time.Second
)

// Config configures the server.
type Config struct {
	Addr           string
	RateLimit      float64 // requests per second across all clients
	Burst          int
	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

// SetDefaults fills in unset fields.
func (c *Config) SetDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.RateLimit <= 0 {
		c.RateLimit = DefaultRateLimit
	}
	if c.Burst <= 0 {
		c.Burst = DefaultBurst
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
}

// Server serves diagram previews.
type Server struct {
	cfg     Config
	runner  *pipeline.Runner
	logger  *log.Logger
	limiter *rate.Limiter
	router  chi.Router
}

// New creates a server. The runner is shared across requests; each request
// builds its own scene.
func New(runner *pipeline.Runner, logger *log.Logger, cfg Config) *Server {
	cfg.SetDefaults()
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		cfg:     cfg,
		runner:  runner,
		logger:  logger.WithPrefix("server"),
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Group(func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Use(middleware.Timeout(s.cfg.RequestTimeout))
		r.Post("/render", s.handleRender)
		r.Post("/tree", s.handleTree)
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if goerrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !goerrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
