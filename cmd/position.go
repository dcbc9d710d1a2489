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

type positionCmd struct {
	item int
}

func (*positionCmd) Name() string     { return "position" }
func (*positionCmd) Synopsis() string { return "show the position in an item" }
func (*positionCmd) Usage() string {
	return `tp position -i <id>

  Shows the quantity held and the average unit price of the item.
`
}

func (c *positionCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.item, "i", 0, "Item id (required)")
}

func (c *positionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.item == 0 {
		fmt.Fprintln(os.Stderr, "Error: -i flag is required.")
		return subcommands.ExitUsageError
	}
	id := tradingpost.ItemID(c.item)

	return withStore(ctx, func(cfg *config.Config, store *tradingpost.Store) subcommands.ExitStatus {
		pos, err := store.Position(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading position: %v\n", err)
			return subcommands.ExitFailure
		}
		names := itemNames(ctx, store, newClient(cfg), []tradingpost.ItemID{id})
		printMarkdown(renderer.RenderPosition(id, pos, names))
		return subcommands.ExitSuccess
	})
}
