package folio

import (
	"testing"
	"time"
)

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// day returns midnight UTC of the given day of January 2025.
func day(d int) time.Time { return time.Date(2025, time.January, d, 0, 0, 0, 0, time.UTC) }

// tx is a compact constructor for valid transactions.
func tx(when time.Time, typ TxType, instrument string, quantity, price float64) Transaction {
	return Transaction{
		ID:         instrument + "-" + when.Format("0102"),
		Instrument: instrument,
		Type:       typ,
		Quantity:   Q(quantity),
		UnitPrice:  EUR(price),
		When:       when,
	}
}

func assertMoney(t *testing.T, name string, got, want Money) {
	t.Helper()
	if !got.Amount().Equal(want.Amount()) {
		t.Errorf("%s = %v, want %v", name, got.Amount(), want.Amount())
	}
}
