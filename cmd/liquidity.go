package cmd

import (
	"context"
	"flag"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

type liquidityCmd struct{}

func (*liquidityCmd) Name() string     { return "liquidity" }
func (*liquidityCmd) Synopsis() string { return "display the cash balance of the account" }
func (*liquidityCmd) Usage() string {
	return `fol liquidity

  Sums deposits, withdrawals, trades, dividends and commissions into the cash balance.
`
}

func (*liquidityCmd) SetFlags(*flag.FlagSet) {}

func (*liquidityCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail("opening ledger", err)
	}
	defer w.close()

	txs, err := w.transactions(ctx)
	if err != nil {
		return fail("loading ledger", err)
	}
	report := folio.Liquidity(txs, w.cfg.Currency)
	if err := printMarkdown("Liquidity", renderer.RenderLiquidity(renderer.NewLiquidity("Liquidity", report))); err != nil {
		return fail("rendering liquidity", err)
	}
	return subcommands.ExitSuccess
}
