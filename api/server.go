package api

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonwraymond/waterjug/health"
	"github.com/jonwraymond/waterjug/observe"
	"github.com/jonwraymond/waterjug/resilience"
)

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	// Addr is the listen address. Default: ":8000".
	Addr string

	// ReadTimeout bounds reading a request. Default: 10s.
	ReadTimeout time.Duration

	// WriteTimeout bounds writing a response. Default: 60s.
	WriteTimeout time.Duration

	// RateLimit is the sustained solve requests per second. Zero
	// disables rate limiting.
	RateLimit float64

	// RateBurst is the rate limiter burst size. Default: 10 when
	// RateLimit is set.
	RateBurst int

	// MaxConcurrent caps in-flight solves. Zero disables the bulkhead.
	MaxConcurrent int

	// SolveTimeout bounds one solve. Zero disables the timeout guard.
	SolveTimeout time.Duration
}

func (c *ServerConfig) applyDefaults() {
	if c.Addr == "" {
		c.Addr = ":8000"
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 60 * time.Second
	}
}

// Server is the HTTP front of the solver service.
type Server struct {
	httpServer *http.Server
	logger     observe.Logger
}

// NewServer wires the solve handler, health probes and the metrics
// endpoint into one server.
func NewServer(cfg ServerConfig, solve observe.SolveFunc, agg *health.Aggregator, logger observe.Logger) *Server {
	cfg.applyDefaults()
	if logger == nil {
		logger = observe.NopLogger()
	}

	var limiter *resilience.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = resilience.NewRateLimiter(resilience.RateLimiterConfig{
			Rate:  cfg.RateLimit,
			Burst: cfg.RateBurst,
		})
	}
	var bulkhead *resilience.Bulkhead
	if cfg.MaxConcurrent > 0 {
		bulkhead = resilience.NewBulkhead(resilience.BulkheadConfig{
			MaxConcurrent: cfg.MaxConcurrent,
		})
	}
	var timeout *resilience.Timeout
	if cfg.SolveTimeout > 0 {
		timeout = resilience.NewTimeout(cfg.SolveTimeout)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/solve", NewSolveHandler(solve, limiter, bulkhead, timeout, logger.WithComponent("api")))
	mux.Handle("/metrics", promhttp.Handler())
	if agg != nil {
		health.RegisterHandlers(mux, agg)
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      CORS(mux),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		logger: logger.WithComponent("server"),
	}
}

// Handler exposes the composed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe blocks serving requests until Shutdown or a listener
// error.
func (s *Server) ListenAndServe() error {
	s.logger.Info(context.Background(), "listening",
		observe.Field{Key: "addr", Value: s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "shutting down")
	return s.httpServer.Shutdown(ctx)
}
