package folio

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidTransaction is wrapped by every Normalizer rejection.
	ErrInvalidTransaction = errors.New("invalid transaction")
	// ErrOversell is returned by a Strict LotTracker when a Sell exceeds the open lots.
	ErrOversell = errors.New("sell exceeds open lots")
	// ErrUnknownInstrument is returned when an instrument has no transaction.
	ErrUnknownInstrument = errors.New("unknown instrument")
	// ErrCurrencyMismatch is returned when an instrument is traded in several currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// Transaction is an immutable ledger entry.
//
// Trades (Buy and Sell) move Quantity units of Instrument at UnitPrice.
// Cash movements (Deposit, Withdraw and Dividend) move Quantity × UnitPrice
// of cash, Instrument is then optional.
type Transaction struct {
	ID         string
	Instrument string
	Type       TxType
	Quantity   Quantity
	UnitPrice  Money
	Commission Money
	When       time.Time
	Memo       string

	seq int // insertion order, breaks ties on When
}

// Currency returns the currency the transaction is settled in.
func (tx Transaction) Currency() string { return tx.UnitPrice.Currency() }

// Gross returns Quantity × UnitPrice.
func (tx Transaction) Gross() Money { return tx.UnitPrice.Mul(tx.Quantity) }

// Cashflow returns the signed effect of tx on the cash balance.
// Commissions always reduce the balance.
func (tx Transaction) Cashflow() Money {
	gross := tx.Gross()
	switch tx.Type {
	case Buy, Withdraw:
		gross = gross.Neg()
	case Sell, Deposit, Dividend:
	default:
		return M(0, tx.Currency())
	}
	return gross.Sub(tx.Commission)
}

// before orders transactions by time then insertion order.
func (tx Transaction) before(other Transaction) bool {
	if !tx.When.Equal(other.When) {
		return tx.When.Before(other.When)
	}
	return tx.seq < other.seq
}

// TransactionSource provides the full list of transactions of a ledger.
type TransactionSource interface {
	Transactions(ctx context.Context) ([]Transaction, error)
}

// TransactionSink records new transactions.
type TransactionSink interface {
	AppendTransaction(ctx context.Context, tx Transaction) error
}
