package folio

import (
	"context"
	"slices"
)

// Ledger is the list of transactions in chronological order.
//
// Transactions with the same time keep their insertion order. This order is
// the FIFO contract of the LotTracker.
type Ledger struct {
	transactions []Transaction
	next         int
}

// NewLedger creates a ledger holding txs, in insertion order.
func NewLedger(txs ...Transaction) *Ledger {
	l := &Ledger{}
	l.Append(txs...)
	return l
}

// Append records txs and keeps the ledger sorted.
func (l *Ledger) Append(txs ...Transaction) {
	for _, tx := range txs {
		tx.seq = l.next
		l.next++
		l.transactions = append(l.transactions, tx)
	}
	l.stableSort()
}

// stableSort sorts the transactions by time, keeping insertion order for ties.
func (l *Ledger) stableSort() {
	slices.SortStableFunc(l.transactions, func(a, b Transaction) int {
		switch {
		case a.before(b):
			return -1
		case b.before(a):
			return 1
		}
		return 0
	})
}

// Len returns the number of transactions.
func (l *Ledger) Len() int { return len(l.transactions) }

// All returns a copy of the transactions in ledger order.
func (l *Ledger) All() []Transaction { return slices.Clone(l.transactions) }

// Transactions implements TransactionSource.
func (l *Ledger) Transactions(context.Context) ([]Transaction, error) { return l.All(), nil }

// Instruments returns the sorted list of instruments that have been traded.
func (l *Ledger) Instruments() []string {
	set := make(InstrumentSet)
	for _, tx := range l.transactions {
		if tx.Instrument != "" && tx.Type.IsTrade() {
			set[tx.Instrument] = struct{}{}
		}
	}
	return set.Sorted()
}

// ByInstrument returns the transactions of instrument, in ledger order.
func (l *Ledger) ByInstrument(instrument string) []Transaction {
	var res []Transaction
	for _, tx := range l.transactions {
		if tx.Instrument == instrument {
			res = append(res, tx)
		}
	}
	return res
}
