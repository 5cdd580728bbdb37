// Command waterjugd serves the two jug measuring puzzle over HTTP.
//
// POST /api/solve answers with the shortest pour sequence, memoized
// across requests. The daemon also exposes health probes and
// Prometheus metrics.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonwraymond/waterjug/api"
	"github.com/jonwraymond/waterjug/cache"
	"github.com/jonwraymond/waterjug/health"
	"github.com/jonwraymond/waterjug/observe"
	"github.com/jonwraymond/waterjug/solver"
)

const version = "1.0.0"

func main() {
	var (
		addr        = flag.String("addr", "", "listen address (overrides config)")
		configPath  = flag.String("config", "", "path to YAML config file")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("waterjugd %s\n", version)
		return
	}

	if err := run(*addr, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "waterjugd: %v\n", err)
		os.Exit(1)
	}
}

func run(addr, configPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}

	obs, err := observe.NewObserver(ctx, observe.Config{
		ServiceName: "waterjugd",
		Version:     version,
		Tracing: observe.TracingConfig{
			Enabled:   true,
			Exporter:  cfg.Telemetry.TracingExporter,
			SamplePct: cfg.Telemetry.SamplePct,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  true,
			Exporter: cfg.Telemetry.MetricsExporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   cfg.Telemetry.LogLevel,
		},
	})
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = obs.Shutdown(shutCtx)
	}()

	logger := obs.Logger().WithComponent("waterjugd")

	cacheMetrics, err := observe.NewCacheMetrics(obs.Meter())
	if err != nil {
		return fmt.Errorf("init cache metrics: %w", err)
	}

	store := cache.NewMemoryStore(cache.Policy{MaxEntries: cfg.Cache.MaxEntries})
	cached, err := cache.NewCachedSolver(store, solver.Solve, cache.WithEvents(cacheMetrics))
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}

	mw, err := observe.MiddlewareFromObserver(obs)
	if err != nil {
		return fmt.Errorf("init middleware: %w", err)
	}
	solve := mw.Wrap(func(ctx context.Context, capacityX, capacityY, target int) solver.Solution {
		return cached.Solve(ctx, capacityX, capacityY, target)
	})

	agg := health.NewAggregator()
	agg.Register("cache", health.NewCacheChecker(store, store.MaxEntries()))
	agg.Register("memory", health.NewMemoryChecker(health.MemoryCheckerConfig{}))

	srv := api.NewServer(api.ServerConfig{
		Addr:          cfg.Addr,
		RateLimit:     cfg.Limits.RateLimit,
		RateBurst:     cfg.Limits.RateBurst,
		MaxConcurrent: cfg.Limits.MaxConcurrent,
		SolveTimeout:  cfg.Limits.SolveTimeout.Std(),
	}, solve, agg, obs.Logger())

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	logger.Info(ctx, "started",
		observe.Field{Key: "version", Value: version},
		observe.Field{Key: "addr", Value: cfg.Addr},
		observe.Field{Key: "cache_max_entries", Value: cfg.Cache.MaxEntries},
	)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info(context.Background(), "stopped")
	return nil
}
