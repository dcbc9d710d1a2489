package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradingpost"
	"github.com/etnz/tradingpost/config"
	"github.com/etnz/tradingpost/renderer"
	"github.com/google/subcommands"
)

type itemsCmd struct{}

func (*itemsCmd) Name() string     { return "items" }
func (*itemsCmd) Synopsis() string { return "show the current prices of the tracked items" }
func (*itemsCmd) Usage() string {
	return `tp items

  Shows the highest buy order, the lowest sell listing and the sell price net
  of the trading post fee of every tracked item.
`
}

func (c *itemsCmd) SetFlags(f *flag.FlagSet) {}

func (c *itemsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withStore(ctx, func(cfg *config.Config, store *tradingpost.Store) subcommands.ExitStatus {
		ids, err := store.TrackedItems()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading tracked items: %v\n", err)
			return subcommands.ExitFailure
		}
		client := newClient(cfg)
		quotes, qerr := tradingpost.FetchQuotes(ctx, client, ids, cfg.API.Concurrency)
		warnQuoteErrors(qerr)
		printMarkdown(renderer.PricesMarkdown(ids, quotes, itemNames(ctx, store, client, ids)))
		return subcommands.ExitSuccess
	})
}
