package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/tradingpost"
	"github.com/etnz/tradingpost/config"
	"github.com/etnz/tradingpost/metrics"
	"github.com/etnz/tradingpost/renderer"
	"github.com/google/subcommands"
	"github.com/prometheus/client_golang/prometheus"
)

type watchCmd struct {
	polls    int
	interval time.Duration
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "poll the prices and value the portfolio periodically" }
func (*watchCmd) Usage() string {
	return `tp watch [-n <polls>] [-interval <duration>]

  Polls the prices of the held and tracked items, and prints the portfolio
  report and the tracked prices after each poll, until interrupted.

  When metrics.addr is configured, the valuation is also served as
  Prometheus metrics on http://<addr>/metrics.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.polls, "n", 0, "Number of polls, 0 to poll until interrupted")
	f.DurationVar(&c.interval, "interval", 0, "Time between polls (default watch.interval of the configuration)")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.polls < 0 || c.interval < 0 {
		fmt.Fprintln(os.Stderr, "Error: -n and -interval cannot be negative.")
		return subcommands.ExitUsageError
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return withStore(ctx, func(cfg *config.Config, store *tradingpost.Store) subcommands.ExitStatus {
		interval := cfg.Watch.Interval.Duration
		if c.interval > 0 {
			interval = c.interval
		}

		var m *metrics.Metrics
		if cfg.Metrics.Addr != "" {
			reg := prometheus.NewRegistry()
			m = metrics.New(reg)
			srv := serveMetrics(cfg.Metrics.Addr, reg)
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					log.Printf("metrics server shutdown: %v", err)
				}
			}()
		}

		client := newClient(cfg)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for n := 1; ; n++ {
			tracked, err := store.TrackedItems()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading tracked items: %v\n", err)
				return subcommands.ExitFailure
			}
			snap, err := takeSnapshot(ctx, cfg, store, client, tracked)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error valuing portfolio: %v\n", err)
				return subcommands.ExitFailure
			}
			if ctx.Err() != nil {
				return subcommands.ExitSuccess
			}
			warnQuoteErrors(snap.Err)
			if m != nil {
				m.Observe(snap.Report, snap.Elapsed, snap.Err)
			}
			printMarkdown(renderer.RenderReport(snap.Report, snap.Time, snap.Names) + "\n" +
				renderer.PricesMarkdown(tracked, snap.Quotes, snap.Names))

			if c.polls > 0 && n >= c.polls {
				return subcommands.ExitSuccess
			}
			select {
			case <-ctx.Done():
				return subcommands.ExitSuccess
			case <-ticker.C:
			}
		}
	})
}

// serveMetrics serves the metrics of reg on addr until shut down.
func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		log.Printf("serving metrics on http://%s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "Error serving metrics: %v\n", err)
		}
	}()
	return srv
}
