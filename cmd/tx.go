package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	instrument string
	start      string
	end        string
	head       int
	tail       int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the transactions of the ledger" }
func (*txCmd) Usage() string {
	return `fol tx [-s <instrument>] [-from <date>] [-to <date>] [-head <n>] [-tail <n>]

  Lists transactions in ledger order, with options for filtering and limiting the output.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.instrument, "s", "", "Only list the transactions of this instrument.")
	f.StringVar(&c.start, "from", "", "First day to list (inclusive).")
	f.StringVar(&c.end, "to", "", "Last day to list (inclusive).")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N transactions.")
}

func (c *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}
	var from, to date.Date
	var err error
	if c.start != "" {
		if from, err = date.Parse(c.start); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if c.end != "" {
		if to, err = date.Parse(c.end); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	w, err := openWorkspace(ctx)
	if err != nil {
		return fail("opening ledger", err)
	}
	defer w.close()
	all, err := w.transactions(ctx)
	if err != nil {
		return fail("loading ledger", err)
	}

	var transactions []folio.Transaction
	for _, tx := range all {
		day := date.FromTime(tx.When)
		switch {
		case c.instrument != "" && tx.Instrument != c.instrument:
		case !from.IsZero() && day.Before(from):
		case !to.IsZero() && day.After(to):
		default:
			transactions = append(transactions, tx)
		}
	}
	if c.head > 0 && len(transactions) > c.head {
		transactions = transactions[:c.head]
	}
	if c.tail > 0 && len(transactions) > c.tail {
		transactions = transactions[len(transactions)-c.tail:]
	}

	if err := printMarkdown("Transactions", renderer.RenderTransactions(renderer.NewTransactions("Transactions", transactions))); err != nil {
		return fail("rendering transactions", err)
	}
	return subcommands.ExitSuccess
}
