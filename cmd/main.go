// Package cmd implements the fol command line application.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/etnz/folio"
	"github.com/etnz/folio/config"
	"github.com/etnz/folio/date"
	"github.com/etnz/folio/logger"
	"github.com/etnz/folio/store"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Commands are the fol subcommands, by group.
var Commands = []struct {
	Group   string
	Command subcommands.Command
}{
	{"transactions", &recordCmd{typ: folio.Buy}},
	{"transactions", &recordCmd{typ: folio.Sell}},
	{"transactions", &recordCmd{typ: folio.Deposit}},
	{"transactions", &recordCmd{typ: folio.Withdraw}},
	{"transactions", &recordCmd{typ: folio.Dividend}},
	{"transactions", &txCmd{}},
	{"transactions", &importCmd{}},
	{"reports", &positionsCmd{}},
	{"reports", &liquidityCmd{}},
	{"scoring", &scoreCmd{}},
	{"server", &serveCmd{}},
}

// Register the subcommands.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd.Command, cmd.Group)
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	ledgerFile     = flag.String("ledger-file", "", "Path to the ledger file (JSONL format). Defaults to $FOLIO_LEDGER_FILE.")
	pricesFile     = flag.String("prices-file", "", "Path to the current prices file (JSON). Defaults to $FOLIO_PRICES_FILE.")
	attributesFile = flag.String("attributes-file", "", "Path to the screener attributes file (JSON). Defaults to $FOLIO_ATTRIBUTES_FILE.")
	databasePath   = flag.String("db", "", "Path to the SQLite store, used instead of the files. Defaults to $FOLIO_DB.")
	currency       = flag.String("currency", "", "Reporting and default transaction currency. Defaults to $FOLIO_CURRENCY.")
	special        = flag.String("special", "", "Comma separated instruments valued by net cashflow. Defaults to $FOLIO_SPECIAL.")
	verbose        = flag.Bool("v", false, "Verbose logging.")
)

// loadConfig reads the environment then applies the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if *ledgerFile != "" {
		cfg.LedgerFile = *ledgerFile
	}
	if *pricesFile != "" {
		cfg.PricesFile = *pricesFile
	}
	if *attributesFile != "" {
		cfg.AttributesFile = *attributesFile
	}
	if *databasePath != "" {
		cfg.DatabasePath = *databasePath
	}
	if *currency != "" {
		cfg.Currency = strings.ToUpper(*currency)
	}
	if *special != "" {
		cfg.Special = strings.Split(*special, ",")
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg *config.Config) zerolog.Logger {
	l := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobal(l)
	return l
}

func normalizer(cfg *config.Config) folio.Normalizer {
	return folio.Normalizer{Currency: cfg.Currency, Now: time.Now}
}

// workspace gathers the sources a command works on.
type workspace struct {
	cfg    *config.Config
	log    zerolog.Logger
	ledger folio.TransactionSource
	sink   folio.TransactionSink
	prices interface {
		Prices(ctx context.Context) (folio.PriceMap, error)
	}
	close func() error
}

// openWorkspace opens the SQLite store when configured, the JSONL ledger and
// the prices file otherwise.
func openWorkspace(ctx context.Context) (*workspace, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	w := &workspace{cfg: cfg, log: newLogger(cfg), close: func() error { return nil }}
	if cfg.DatabasePath != "" {
		s, err := store.Open(ctx, cfg.DatabasePath, normalizer(cfg), w.log)
		if err != nil {
			return nil, err
		}
		w.ledger, w.sink, w.prices, w.close = s, s, s, s.Close
		return w, nil
	}
	f := folio.LedgerFile{Path: cfg.LedgerFile, Normalizer: normalizer(cfg)}
	w.ledger, w.sink = f, f
	w.prices = folio.PricesFile{Path: cfg.PricesFile}
	return w, nil
}

// transactions loads the ledger.
func (w *workspace) transactions(ctx context.Context) ([]folio.Transaction, error) {
	txs, err := w.ledger.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	w.log.Debug().Int("transactions", len(txs)).Msg("ledger loaded")
	return txs, nil
}

// options returns the reconstruction options, the growth curve reads today's date.
func (w *workspace) options() []folio.Option { return w.cfg.Options(date.Today) }

// fail reports err on stderr.
func fail(what string, err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
	return subcommands.ExitFailure
}
