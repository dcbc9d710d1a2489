// Package cmd implements the tp command-line application.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/tradingpost"
	"github.com/etnz/tradingpost/config"
	"github.com/etnz/tradingpost/gw2"
	"github.com/etnz/tradingpost/renderer"
	"github.com/etnz/tradingpost/storage"
	"github.com/etnz/tradingpost/storage/redis"
	"github.com/etnz/tradingpost/storage/sqlite"
	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "help")
	c.Register(c.FlagsCommand(), "help")
	c.Register(c.CommandsCommand(), "help")
	c.Register(&topicCmd{}, "help")

	c.Register(&addCmd{}, "ledger")
	c.Register(&editCmd{}, "ledger")
	c.Register(&deleteCmd{}, "ledger")
	c.Register(&lotsCmd{}, "ledger")
	c.Register(&positionCmd{}, "ledger")

	c.Register(&summaryCmd{}, "market")
	c.Register(&itemsCmd{}, "market")
	c.Register(&trackCmd{}, "market")
	c.Register(&untrackCmd{}, "market")
	c.Register(&watchCmd{}, "market")

	c.Register(&refreshItemsCmd{}, "catalog")
	c.Register(&searchCmd{}, "catalog")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the TOML configuration file (default $TP_CONFIG or tp.toml if present)")
var backend = flag.String("backend", "", "Storage backend: file, sqlite or redis (overrides the configuration)")
var dataDir = flag.String("data-dir", "", "Directory of the file backend (overrides the configuration)")
var plain = flag.Bool("plain", false, "Print raw markdown instead of rendering it for the terminal")

// Verbose enables the operational logs.
var Verbose = flag.Bool("v", false, "Log requests and writes to stderr")

// stdout receives the output of every command.
var stdout io.Writer = os.Stdout

// defaultConfigFile is read when no configuration file is given.
const defaultConfigFile = "tp.toml"

// loadConfig loads and validates the configuration, with the command-line
// overrides.
func loadConfig() (*config.Config, error) {
	path := *configFile
	if path == "" {
		path = os.Getenv("TP_CONFIG")
	}
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("cannot load configuration %q: %w", path, err)
	}
	if *backend != "" {
		cfg.Storage.Backend = *backend
	}
	if *dataDir != "" {
		cfg.Storage.DataDir = *dataDir
	}
	cfg.Storage.Backend = strings.ToLower(cfg.Storage.Backend)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OpenStore opens the store of the configured backend. The returned function
// releases the backend.
func OpenStore(ctx context.Context, cfg *config.Config) (*tradingpost.Store, func() error, error) {
	switch cfg.Storage.Backend {
	case config.BackendFile:
		b, err := storage.NewFile(cfg.Storage.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return tradingpost.NewStore(b), func() error { return nil }, nil
	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.Storage.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return tradingpost.NewStore(db), db.Close, nil
	case config.BackendRedis:
		b, err := redis.New(ctx, redis.ClientConfig{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
			Prefix:   cfg.Storage.Redis.Prefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return tradingpost.NewStore(b), b.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// withStore runs fn with the configuration and the opened store, and reports
// setup errors.
func withStore(ctx context.Context, fn func(*config.Config, *tradingpost.Store) subcommands.ExitStatus) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	store, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		return subcommands.ExitFailure
	}
	defer func() {
		if err := closeStore(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing storage: %v\n", err)
		}
	}()
	return fn(cfg, store)
}

// newClient returns the API client of the configuration.
func newClient(cfg *config.Config) *gw2.Client {
	return gw2.New(cfg.API.BaseURL, gw2.WithLang(cfg.API.Lang), gw2.WithTimeout(cfg.API.Timeout.Duration))
}

// itemNames resolves the names of ids from the saved catalog, then from the
// API for the items the catalog lacks. Names that cannot be resolved are
// left out.
func itemNames(ctx context.Context, store *tradingpost.Store, client *gw2.Client, ids []tradingpost.ItemID) renderer.Names {
	catalog, err := store.Catalog()
	if err != nil {
		log.Printf("cannot read the catalog (ignored): %v", err)
	}
	names := renderer.Names(tradingpost.Names(catalog))

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(4)
	for _, id := range ids {
		if _, ok := names[id]; ok {
			continue
		}
		g.Go(func() error {
			item, err := client.Item(ctx, id)
			if err != nil {
				log.Printf("cannot resolve the name of %v (ignored): %v", id, err)
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			names[id] = item.Name
			return nil
		})
	}
	g.Wait()
	return names
}

// parseItemIDs parses item identifiers given as arguments.
func parseItemIDs(args []string) ([]tradingpost.ItemID, error) {
	if len(args) == 0 {
		return nil, errors.New("at least one item id is required")
	}
	ids := make([]tradingpost.ItemID, 0, len(args))
	for _, arg := range args {
		id, err := tradingpost.ParseItemID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// warnQuoteErrors prints each quote failure joined in err.
func warnQuoteErrors(err error) {
	if err == nil {
		return
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", e)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
}

// printMarkdown renders md for the terminal, or prints it as is with -plain.
func printMarkdown(md string) {
	if *plain {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err != nil {
		log.Printf("cannot create markdown renderer (ignored): %v", err)
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		log.Printf("cannot render markdown (ignored): %v", err)
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
