package folio

import (
	"errors"
	"testing"

	"github.com/etnz/folio/date"
)

func TestReconstructPosition_Standard(t *testing.T) {
	txs := []Transaction{
		tx(day(1), Buy, "ACME", 10, 100),
		tx(day(2), Buy, "ACME", 10, 200),
		tx(day(3), Sell, "ACME", 15, 250),
	}
	pos, err := ReconstructPosition(txs, nil)
	if err != nil {
		t.Fatalf("ReconstructPosition() error = %v", err)
	}
	if pos.Mode != StandardLots {
		t.Errorf("Mode = %v, want %v", pos.Mode, StandardLots)
	}
	if got, want := pos.Quantity, Q(5); !got.Equal(want) {
		t.Errorf("Quantity = %v, want %v", got, want)
	}
	assertMoney(t, "AverageCost", pos.AverageCost, EUR(200))
	assertMoney(t, "CostBasis", pos.CostBasis, EUR(1000))
	// Unpriced positions fall back to their average cost.
	assertMoney(t, "Price", pos.Price, EUR(200))
	assertMoney(t, "PnL", pos.PnL, EUR(0))
	if pos.Priced {
		t.Error("Priced = true, want false")
	}
}

func TestReconstructPosition_SortsByTime(t *testing.T) {
	// Given out of order, the buy of day 1 is still the first lot consumed.
	txs := []Transaction{
		tx(day(2), Buy, "ACME", 10, 200),
		tx(day(3), Sell, "ACME", 10, 250),
		tx(day(1), Buy, "ACME", 10, 100),
	}
	pos, err := ReconstructPosition(txs, nil)
	if err != nil {
		t.Fatalf("ReconstructPosition() error = %v", err)
	}
	assertMoney(t, "AverageCost", pos.AverageCost, EUR(200))
}

func TestReconstructPosition_Special(t *testing.T) {
	txs := []Transaction{
		tx(day(1), Buy, "FUND", 1, 1000),
		tx(day(2), Buy, "FUND", 1, 500),
		tx(day(3), Sell, "FUND", 1, 300),
	}
	pos, err := ReconstructPosition(txs, NewInstrumentSet("FUND"))
	if err != nil {
		t.Fatalf("ReconstructPosition() error = %v", err)
	}
	if pos.Mode != NetCashflow {
		t.Errorf("Mode = %v, want %v", pos.Mode, NetCashflow)
	}
	if got, want := pos.Quantity, Q(1); !got.Equal(want) {
		t.Errorf("Quantity = %v, want %v", got, want)
	}
	assertMoney(t, "AverageCost", pos.AverageCost, EUR(1200))
	assertMoney(t, "TotalValue", pos.TotalValue, EUR(1200))
	if len(pos.Lots) != 0 {
		t.Errorf("Lots = %v, want none", pos.Lots)
	}
}

func TestReconstructPosition_GrowthCurve(t *testing.T) {
	txs := []Transaction{tx(day(1), Buy, "FUND", 1, 1000)}
	curve := GrowthCurve{AnchorDate: date.New(2025, 1, 1), AnchorValue: EUR(1000), AnnualRate: 0.05}
	clock := func() date.Date { return date.New(2026, 1, 1) }

	pos, err := ReconstructPosition(txs, NewInstrumentSet("FUND"), WithGrowthCurve("FUND", curve), WithClock(clock))
	if err != nil {
		t.Fatalf("ReconstructPosition() error = %v", err)
	}
	if !pos.Priced {
		t.Error("Priced = false, want true")
	}
	if got := pos.TotalValue.Float(); got < 1049.999 || got > 1050.001 {
		t.Errorf("TotalValue = %v, want 1050", got)
	}
	if got := pos.PnLPercent; !got.Equal(5) {
		t.Errorf("PnLPercent = %v, want 5%%", got)
	}
}

func TestReconstructPosition_Errors(t *testing.T) {
	if _, err := ReconstructPosition(nil, nil); !errors.Is(err, ErrUnknownInstrument) {
		t.Errorf("ReconstructPosition(nil) error = %v, want ErrUnknownInstrument", err)
	}

	mixed := []Transaction{tx(day(1), Buy, "A", 1, 1), tx(day(1), Buy, "B", 1, 1)}
	if _, err := ReconstructPosition(mixed, nil); err == nil {
		t.Error("ReconstructPosition(mixed) want error")
	}

	oversold := []Transaction{tx(day(1), Buy, "A", 1, 1), tx(day(2), Sell, "A", 2, 1)}
	if _, err := ReconstructPosition(oversold, nil, WithOversellPolicy(Strict)); !errors.Is(err, ErrOversell) {
		t.Errorf("ReconstructPosition(strict) error = %v, want ErrOversell", err)
	}
	if _, err := ReconstructPosition(oversold, nil); err != nil {
		t.Errorf("ReconstructPosition(tolerant) error = %v", err)
	}
}

func TestReconstructPosition_CurrencyMismatch(t *testing.T) {
	usd := tx(day(1), Buy, "AAPL", 1, 100)
	usd.UnitPrice = USD(100)
	eur := tx(day(2), Buy, "AAPL", 1, 90)

	for _, special := range []InstrumentSet{nil, NewInstrumentSet("AAPL")} {
		_, err := ReconstructPosition([]Transaction{usd, eur}, special)
		if !errors.Is(err, ErrCurrencyMismatch) {
			t.Errorf("ReconstructPosition(%v) error = %v, want ErrCurrencyMismatch", special, err)
		}
	}

	// a dividend paid in another currency does not change the trading currency
	div := tx(day(3), Dividend, "AAPL", 1, 5)
	div.UnitPrice = USD(5)
	eur2 := tx(day(4), Buy, "AAPL", 1, 95)
	if _, err := ReconstructPosition([]Transaction{eur, div, eur2}, nil); err != nil {
		t.Errorf("ReconstructPosition(dividend in USD) error = %v", err)
	}
}
