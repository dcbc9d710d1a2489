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

type lotsCmd struct {
	item int
}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "list the lots of an item" }
func (*lotsCmd) Usage() string {
	return `tp lots -i <id>

  Lists the lots of the item with their index, and the resulting position.
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.item, "i", 0, "Item id (required)")
}

func (c *lotsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.item == 0 {
		fmt.Fprintln(os.Stderr, "Error: -i flag is required.")
		return subcommands.ExitUsageError
	}
	id := tradingpost.ItemID(c.item)

	return withStore(ctx, func(cfg *config.Config, store *tradingpost.Store) subcommands.ExitStatus {
		ledger, err := store.Ledger()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
			return subcommands.ExitFailure
		}
		names := itemNames(ctx, store, newClient(cfg), []tradingpost.ItemID{id})
		printMarkdown(renderer.RenderLots(id, ledger.Lots(id), ledger.Position(id), names))
		return subcommands.ExitSuccess
	})
}
