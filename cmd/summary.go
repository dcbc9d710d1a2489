package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/etnz/tradingpost"
	"github.com/etnz/tradingpost/config"
	"github.com/etnz/tradingpost/gw2"
	"github.com/etnz/tradingpost/renderer"
	"github.com/google/subcommands"
)

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "value the portfolio at the current prices" }
func (*summaryCmd) Usage() string {
	return `tp summary

  Fetches the current price of every held item and reports the cost basis,
  the market value net of the trading post fee, and the profit of each.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withStore(ctx, func(cfg *config.Config, store *tradingpost.Store) subcommands.ExitStatus {
		snap, err := takeSnapshot(ctx, cfg, store, newClient(cfg), nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error valuing portfolio: %v\n", err)
			return subcommands.ExitFailure
		}
		warnQuoteErrors(snap.Err)
		printMarkdown(renderer.RenderReport(snap.Report, snap.Time, snap.Names))
		return subcommands.ExitSuccess
	})
}

// snapshot is the valuation of the portfolio at a point in time.
type snapshot struct {
	Time    time.Time
	Elapsed time.Duration // to fetch the quotes
	Report  *tradingpost.Report
	Quotes  map[tradingpost.ItemID]tradingpost.Quote
	Names   renderer.Names
	Err     error // quote failures, the snapshot misses those items
}

// takeSnapshot fetches the quotes of the held items and of extra, in one
// pass, and values the ledger.
func takeSnapshot(ctx context.Context, cfg *config.Config, store *tradingpost.Store, client *gw2.Client, extra []tradingpost.ItemID) (*snapshot, error) {
	ledger, err := store.Ledger()
	if err != nil {
		return nil, err
	}
	ids := append(ledger.Items(), extra...)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	start := time.Now()
	quotes, qerr := tradingpost.FetchQuotes(ctx, client, ids, cfg.API.Concurrency)
	snap := &snapshot{
		Time:    start,
		Elapsed: time.Since(start),
		Report:  tradingpost.NewReport(ledger, quotes),
		Quotes:  quotes,
		Names:   itemNames(ctx, store, client, ids),
		Err:     qerr,
	}
	return snap, nil
}
