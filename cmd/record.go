package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/google/subcommands"
)

// recordCmd appends one transaction of type typ to the ledger.
type recordCmd struct {
	typ        folio.TxType
	date       string
	instrument string
	quantity   string
	price      string
	currency   string
	commission string
	memo       string
}

func (c *recordCmd) Name() string { return c.typ.String() }

func (c *recordCmd) Synopsis() string {
	switch c.typ {
	case folio.Buy:
		return "purchase shares to open or add to a position"
	case folio.Sell:
		return "sell shares to trim or close a position"
	case folio.Deposit:
		return "deposit cash into the account"
	case folio.Withdraw:
		return "withdraw cash from the account"
	default:
		return "record a dividend payment for an instrument"
	}
}

func (c *recordCmd) Usage() string {
	switch c.typ {
	case folio.Buy, folio.Sell:
		return fmt.Sprintf(`fol %s -s <instrument> -q <quantity> -p <price> [-d <date>] [-c <currency>] [-fee <commission>] [-m <memo>]

  Records a %s of an instrument. Lots are matched first in, first out.
`, c.typ, c.typ)
	case folio.Dividend:
		return `fol dividend -s <instrument> -a <amount> [-d <date>] [-c <currency>] [-m <memo>]

  Records a dividend payment. The amount is credited to the cash balance.
`
	default:
		return fmt.Sprintf(`fol %s -a <amount> [-d <date>] [-c <currency>] [-m <memo>]

  Records a cash %s.
`, c.typ, c.typ)
	}
}

func (c *recordCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD) or time (RFC 3339)")
	f.StringVar(&c.currency, "c", "", "Currency, defaults to the configured currency")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
	switch c.typ {
	case folio.Buy, folio.Sell:
		f.StringVar(&c.instrument, "s", "", "Instrument ticker")
		f.StringVar(&c.quantity, "q", "", "Number of shares")
		f.StringVar(&c.price, "p", "", "Price per share")
		f.StringVar(&c.commission, "fee", "", "Commission paid")
	case folio.Dividend:
		f.StringVar(&c.instrument, "s", "", "Instrument paying the dividend")
		f.StringVar(&c.price, "a", "", "Total dividend amount received")
	default:
		f.StringVar(&c.price, "a", "", "Amount")
	}
}

func (c *recordCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.price == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail("opening ledger", err)
	}
	defer w.close()

	tx, err := normalizer(w.cfg).Normalize(folio.RawTransaction{
		Instrument: c.instrument,
		Type:       c.typ.String(),
		Quantity:   c.quantity,
		UnitPrice:  c.price,
		Currency:   c.currency,
		Commission: c.commission,
		Time:       c.date,
		Memo:       c.memo,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := w.sink.AppendTransaction(ctx, tx); err != nil {
		return fail("appending transaction", err)
	}
	w.log.Debug().Str("id", tx.ID).Str("type", tx.Type.String()).Msg("transaction appended")
	fmt.Fprintf(stdout, "Recorded %s\n", tx.ID)
	return subcommands.ExitSuccess
}
