package renderer

import (
	"fmt"

	"github.com/etnz/folio"
)

// Transaction describes a transaction in one sentence.
func Transaction(tx folio.Transaction) string {
	switch tx.Type {
	case folio.Buy:
		return fmt.Sprintf("Bought %v of %s at %v", tx.Quantity, tx.Instrument, tx.UnitPrice)
	case folio.Sell:
		return fmt.Sprintf("Sold %v of %s at %v", tx.Quantity, tx.Instrument, tx.UnitPrice)
	case folio.Dividend:
		return fmt.Sprintf("Dividend of %v from %s", tx.Gross(), tx.Instrument)
	case folio.Deposit:
		return fmt.Sprintf("Deposited %v", tx.Gross())
	case folio.Withdraw:
		return fmt.Sprintf("Withdrew %v", tx.Gross())
	default:
		return tx.Type.String()
	}
}

// TransactionRow is one line of the transactions table.
type TransactionRow struct {
	Time        string
	Type        string
	Description string
	Commission  string
	Memo        string
}

// Transactions is the view of a list of transactions.
type Transactions struct {
	Title string
	Rows  []TransactionRow
}

// NewTransactions formats txs.
func NewTransactions(title string, txs []folio.Transaction) *Transactions {
	t := &Transactions{Title: title}
	for _, tx := range txs {
		commission := ""
		if !tx.Commission.IsZero() {
			commission = tx.Commission.String()
		}
		t.Rows = append(t.Rows, TransactionRow{
			Time:        tx.When.Format("2006-01-02 15:04"),
			Type:        tx.Type.String(),
			Description: Transaction(tx),
			Commission:  commission,
			Memo:        tx.Memo,
		})
	}
	return t
}

// RenderTransactions renders the transactions report.
func RenderTransactions(t *Transactions) string {
	return renderTemplate("transactions", "transactions.md", map[string]string{"title": "title.md"}, t)
}
