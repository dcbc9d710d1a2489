package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradingpost"
	"github.com/etnz/tradingpost/config"
	"github.com/google/subcommands"
)

type deleteCmd struct {
	item  int
	index int
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a lot of an item" }
func (*deleteCmd) Usage() string {
	return `tp delete -i <id> -n <index>

  Deletes the lot at index (from 0, see 'tp lots'). The next lots are
  renumbered, and the item is removed with its last lot. Nothing changes if
  the item has no such lot.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.item, "i", 0, "Item id (required)")
	f.IntVar(&c.index, "n", -1, "Index of the lot (required)")
}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.item == 0 || c.index < 0 {
		fmt.Fprintln(os.Stderr, "Error: -i and -n flags are required.")
		return subcommands.ExitUsageError
	}
	id := tradingpost.ItemID(c.item)

	return withStore(ctx, func(_ *config.Config, store *tradingpost.Store) subcommands.ExitStatus {
		changed, err := store.DeleteLot(id, c.index)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting lot: %v\n", err)
			return subcommands.ExitFailure
		}
		if !changed {
			fmt.Fprintf(os.Stderr, "Warning: item %v has no lot %d, nothing changed\n", id, c.index)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "Deleted lot %d of item %v\n", c.index, id)
		return subcommands.ExitSuccess
	})
}
