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

type trackCmd struct{}

func (*trackCmd) Name() string     { return "track" }
func (*trackCmd) Synopsis() string { return "add items to the tracked items" }
func (*trackCmd) Usage() string {
	return `tp track <id>...

  Adds the items to the tracked items shown by 'tp items' and 'tp watch'.
  Use 'tp search' to find the id of an item.
`
}

func (c *trackCmd) SetFlags(f *flag.FlagSet) {}

func (c *trackCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return editTracked(ctx, f.Args(), (*tradingpost.Store).Track, "Tracking %v\n", "Item %v is already tracked\n")
}

type untrackCmd struct{}

func (*untrackCmd) Name() string     { return "untrack" }
func (*untrackCmd) Synopsis() string { return "remove items from the tracked items" }
func (*untrackCmd) Usage() string {
	return `tp untrack <id>...

  Removes the items from the tracked items. Their lots are kept.
`
}

func (c *untrackCmd) SetFlags(f *flag.FlagSet) {}

func (c *untrackCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return editTracked(ctx, f.Args(), (*tradingpost.Store).Untrack, "Stopped tracking %v\n", "Item %v was not tracked\n")
}

// editTracked applies op to every item of args.
func editTracked(ctx context.Context, args []string, op func(*tradingpost.Store, tradingpost.ItemID) (bool, error), done, noop string) subcommands.ExitStatus {
	ids, err := parseItemIDs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withStore(ctx, func(_ *config.Config, store *tradingpost.Store) subcommands.ExitStatus {
		for _, id := range ids {
			changed, err := op(store, id)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error updating tracked items: %v\n", err)
				return subcommands.ExitFailure
			}
			if changed {
				fmt.Fprintf(stdout, done, id)
			} else {
				fmt.Fprintf(stdout, noop, id)
			}
		}
		return subcommands.ExitSuccess
	})
}
