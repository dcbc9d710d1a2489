package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/tradingpost"
	"github.com/etnz/tradingpost/config"
	"github.com/etnz/tradingpost/renderer"
	"github.com/google/subcommands"
)

type refreshItemsCmd struct{}

func (*refreshItemsCmd) Name() string     { return "refresh-items" }
func (*refreshItemsCmd) Synopsis() string { return "download the catalog of tradable items" }
func (*refreshItemsCmd) Usage() string {
	return `tp refresh-items

  Downloads the id and name of every tradable item, used by 'tp search' and
  to name items in reports. It takes a while: the names are fetched by
  batches of 200.
`
}

func (c *refreshItemsCmd) SetFlags(f *flag.FlagSet) {}

func (c *refreshItemsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withStore(ctx, func(cfg *config.Config, store *tradingpost.Store) subcommands.ExitStatus {
		items, err := newClient(cfg).Catalog(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error downloading catalog: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := store.SaveCatalog(items); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving catalog: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "Saved %d tradable items\n", len(items))
		return subcommands.ExitSuccess
	})
}

type searchCmd struct{}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search the catalog by item name" }
func (*searchCmd) Usage() string {
	return `tp search <text>

  Lists the tradable items whose name contains text, ignoring case. Run
  'tp refresh-items' first to download the catalog.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	query := strings.Join(f.Args(), " ")
	if strings.TrimSpace(query) == "" {
		fmt.Fprintln(os.Stderr, "Error: a search text is required.")
		return subcommands.ExitUsageError
	}
	return withStore(ctx, func(_ *config.Config, store *tradingpost.Store) subcommands.ExitStatus {
		catalog, err := store.Catalog()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
			return subcommands.ExitFailure
		}
		if len(catalog) == 0 {
			fmt.Fprintln(os.Stderr, "Warning: the catalog is empty, run 'tp refresh-items' first.")
		}
		printMarkdown(renderer.RenderSearch(query, tradingpost.Search(catalog, query)))
		return subcommands.ExitSuccess
	})
}
