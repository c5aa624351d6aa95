package cmd

import (
	"context"
	"flag"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

// positionsCmd reports the open positions.
type positionsCmd struct {
	strict bool
}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "display the open positions and their unrealized P&L" }
func (*positionsCmd) Usage() string {
	return `fol positions [-strict]

  Replays the ledger into open positions, valued at the current prices, or at
  their average cost when no price is known.
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.strict, "strict", false, "Fail when a sale exceeds the quantity held, overriding $FOLIO_OVERSELL.")
}

func (c *positionsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail("opening ledger", err)
	}
	defer w.close()

	txs, err := w.transactions(ctx)
	if err != nil {
		return fail("loading ledger", err)
	}
	prices, err := w.prices.Prices(ctx)
	if err != nil {
		return fail("loading prices", err)
	}
	opts := w.options()
	if c.strict {
		opts = append(opts, folio.WithOversellPolicy(folio.Strict))
	}
	pf, err := folio.Aggregate(txs, w.cfg.SpecialSet(), prices, opts...)
	if err != nil {
		return fail("computing positions", err)
	}
	if err := printMarkdown("Portfolio", renderer.RenderPositions(renderer.NewPositions("Portfolio", pf))); err != nil {
		return fail("rendering positions", err)
	}
	return subcommands.ExitSuccess
}
