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

type editCmd struct {
	item     int
	index    int
	quantity int
	price    string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "replace a lot of an item" }
func (*editCmd) Usage() string {
	return `tp edit -i <id> -n <index> -q <quantity> -p <price>

  Replaces the quantity and unit price of the lot at index (from 0, see
  'tp lots'). Nothing changes if the item has no such lot.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.item, "i", 0, "Item id (required)")
	f.IntVar(&c.index, "n", -1, "Index of the lot (required)")
	f.IntVar(&c.quantity, "q", 0, "New quantity (required)")
	f.StringVar(&c.price, "p", "", "New unit price (required)")
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.item == 0 || c.index < 0 || c.quantity == 0 || c.price == "" {
		fmt.Fprintln(os.Stderr, "Error: -i, -n, -q and -p flags are required.")
		return subcommands.ExitUsageError
	}
	price, err := tradingpost.ParseGold(c.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
		return subcommands.ExitUsageError
	}
	id := tradingpost.ItemID(c.item)

	return withStore(ctx, func(_ *config.Config, store *tradingpost.Store) subcommands.ExitStatus {
		changed, err := store.EditLot(id, c.index, c.quantity, price)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error editing lot: %v\n", err)
			return subcommands.ExitFailure
		}
		if !changed {
			fmt.Fprintf(os.Stderr, "Warning: item %v has no lot %d, nothing changed\n", id, c.index)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "Lot %d of item %v is now %d × %s\n", c.index, id, c.quantity, price.Format())
		return subcommands.ExitSuccess
	})
}
