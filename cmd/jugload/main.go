// Command jugload drives synthetic traffic against a waterjugd
// instance and reports latency statistics.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

type options struct {
	url         string
	concurrency int
	interval    time.Duration
	duration    time.Duration
}

func main() {
	var opts options
	flag.StringVar(&opts.url, "url", "http://localhost:8000/api/solve", "solve endpoint URL")
	flag.IntVar(&opts.concurrency, "concurrency", 8, "number of concurrent workers")
	flag.DurationVar(&opts.interval, "interval", 5*time.Second, "reporting interval")
	flag.DurationVar(&opts.duration, "duration", 0, "total run time (0 = until interrupted)")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "jugload: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.duration)
		defer cancel()
	}

	client := &http.Client{Timeout: 30 * time.Second}
	stats := newCollector()

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < opts.concurrency; i++ {
		seed := time.Now().UnixNano() + int64(i)
		g.Go(func() error {
			return worker(ctx, client, opts.url, rand.New(rand.NewSource(seed)), stats)
		})
	}
	g.Go(func() error {
		return reporter(ctx, opts.interval, stats)
	})

	err := g.Wait()
	stats.report(os.Stdout)
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

type solveRequest struct {
	XCapacity     int `json:"x_capacity"`
	YCapacity     int `json:"y_capacity"`
	ZAmountWanted int `json:"z_amount_wanted"`
}

func worker(ctx context.Context, client *http.Client, url string, rng *rand.Rand, stats *collector) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		body, _ := json.Marshal(solveRequest{
			XCapacity:     rng.Intn(50) + 1,
			YCapacity:     rng.Intn(50) + 1,
			ZAmountWanted: rng.Intn(50) + 1,
		})

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		start := time.Now()
		resp, err := client.Do(req)
		elapsed := time.Since(start)

		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			stats.record(elapsed, false)
			continue
		}
		resp.Body.Close()

		// 200 and 400 are both valid solver answers; anything else
		// counts as a failure.
		ok := resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusBadRequest
		stats.record(elapsed, ok)
	}
}

func reporter(ctx context.Context, interval time.Duration, stats *collector) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			stats.report(os.Stdout)
		}
	}
}

// collector accumulates request outcomes across workers.
type collector struct {
	mu        sync.Mutex
	start     time.Time
	latencies []time.Duration
	success   int
	failure   int
}

func newCollector() *collector {
	return &collector{start: time.Now()}
}

func (c *collector) record(d time.Duration, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latencies = append(c.latencies, d)
	if ok {
		c.success++
	} else {
		c.failure++
	}
}

func (c *collector) report(w *os.File) {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.success + c.failure
	if total == 0 {
		fmt.Fprintln(w, "no requests completed yet")
		return
	}

	sorted := make([]time.Duration, len(c.latencies))
	copy(sorted, c.latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum time.Duration
	for _, d := range sorted {
		sum += d
	}

	elapsed := time.Since(c.start)
	fmt.Fprintf(w, "requests=%d rps=%.1f success=%d fail=%d fastest=%s slowest=%s avg=%s median=%s\n",
		total,
		float64(total)/elapsed.Seconds(),
		c.success,
		c.failure,
		sorted[0],
		sorted[len(sorted)-1],
		sum/time.Duration(len(sorted)),
		sorted[len(sorted)/2],
	)
}
