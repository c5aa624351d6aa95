package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio"
	"github.com/etnz/folio/store"
	"github.com/google/subcommands"
)

// importCmd copies a JSONL ledger and a prices file into the SQLite store.
type importCmd struct {
	in     string
	prices string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a JSONL ledger into the SQLite store" }
func (*importCmd) Usage() string {
	return `fol -db <database> import -in <ledger.jsonl> [-prices <prices.json>]

  Imports the transactions of a ledger file into the store. Transactions already
  present (same id) are skipped, so importing twice is harmless.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.in, "in", "", "Ledger file to import.")
	f.StringVar(&c.prices, "prices", "", "Optional prices file to import as quotes.")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.in == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		return fail("loading configuration", err)
	}
	if cfg.DatabasePath == "" {
		fmt.Fprintln(os.Stderr, "Error: -db or $FOLIO_DB is required.")
		return subcommands.ExitUsageError
	}
	log := newLogger(cfg)

	ledger, err := folio.LedgerFile{Path: c.in, Normalizer: normalizer(cfg)}.Load()
	if err != nil {
		return fail("loading ledger", err)
	}
	s, err := store.Open(ctx, cfg.DatabasePath, normalizer(cfg), log)
	if err != nil {
		return fail("opening store", err)
	}
	defer s.Close()

	n, err := s.ImportLedger(ctx, ledger.All())
	if err != nil {
		return fail("importing ledger", err)
	}
	fmt.Fprintf(stdout, "Imported %d of %d transactions into %s\n", n, ledger.Len(), cfg.DatabasePath)

	if c.prices == "" {
		return subcommands.ExitSuccess
	}
	prices, err := folio.PricesFile{Path: c.prices}.Prices(ctx)
	if err != nil {
		return fail("loading prices", err)
	}
	for instrument, q := range prices {
		if err := s.PutQuote(ctx, instrument, q); err != nil {
			return fail("importing prices", err)
		}
	}
	fmt.Fprintf(stdout, "Imported %d quotes\n", len(prices))
	return subcommands.ExitSuccess
}
