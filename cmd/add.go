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

type addCmd struct {
	item     int
	quantity int
	price    string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record the purchase of an item" }
func (*addCmd) Usage() string {
	return `tp add -i <id> -q <quantity> -p <price>

  Appends a lot to the item's lots. The price is per unit, either in gold
  ("1.2345") or in denominations ("1g 23s 45c").
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.item, "i", 0, "Item id (required)")
	f.IntVar(&c.quantity, "q", 1, "Quantity bought")
	f.StringVar(&c.price, "p", "", "Unit price (required)")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.item == 0 || c.price == "" {
		fmt.Fprintln(os.Stderr, "Error: -i and -p flags are required.")
		return subcommands.ExitUsageError
	}
	price, err := tradingpost.ParseGold(c.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
		return subcommands.ExitUsageError
	}
	id := tradingpost.ItemID(c.item)

	return withStore(ctx, func(_ *config.Config, store *tradingpost.Store) subcommands.ExitStatus {
		if err := store.AddLot(id, c.quantity, price); err != nil {
			fmt.Fprintf(os.Stderr, "Error adding lot: %v\n", err)
			return subcommands.ExitFailure
		}
		pos, err := store.Position(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading position: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "Added %d × %s of item %v, now holding %d at %s\n", c.quantity, price.Format(), id, pos.Quantity, pos.Average.Format())
		return subcommands.ExitSuccess
	})
}
