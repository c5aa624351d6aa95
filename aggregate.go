package folio

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Portfolio is the set of open positions and their totals.
type Portfolio struct {
	Positions []Position `json:"positions"`
	Totals    Totals     `json:"totals"`
}

// Totals are plain sums over positions, without currency conversion. They
// are labelled with the reporting currency.
type Totals struct {
	Value      Money   `json:"value"`
	Cost       Money   `json:"cost"`
	PnL        Money   `json:"pnl"`
	PnLPercent Percent `json:"pnlPercent"`
}

// Position returns the open position of instrument.
func (p Portfolio) Position(instrument string) (Position, bool) {
	for _, pos := range p.Positions {
		if pos.Instrument == instrument {
			return pos, true
		}
	}
	return Position{}, false
}

// Aggregate reconstructs every instrument of txs, prices it from prices and
// rolls the open positions into totals.
//
// A position is open when its quantity is above the epsilon (1e-8 unless
// WithEpsilon). Instruments without a quote keep their average cost as price.
// Positions are sorted by instrument.
func Aggregate(txs []Transaction, special InstrumentSet, prices PriceMap, opts ...Option) (Portfolio, error) {
	o := newOptions(opts)
	ledger := NewLedger(txs...)

	var pf Portfolio
	value, cost := decimal.Zero, decimal.Zero
	for _, instrument := range ledger.Instruments() {
		pos, err := reconstruct(ledger.ByInstrument(instrument), special, o)
		if err != nil {
			return Portfolio{}, fmt.Errorf("reconstruct %s: %w", instrument, err)
		}
		if !pos.Quantity.value.GreaterThan(o.epsilon) {
			continue
		}
		if quote, ok := prices[instrument]; ok && !pos.Priced {
			pos.reprice(quote.Money(), true)
		}
		pf.Positions = append(pf.Positions, pos)
		value = value.Add(pos.TotalValue.Amount())
		cost = cost.Add(pos.CostBasis.Amount())
	}
	pf.Totals.Value = M(value, o.currency)
	pf.Totals.Cost = M(cost, o.currency)
	pf.Totals.PnL = pf.Totals.Value.Sub(pf.Totals.Cost)
	pf.Totals.PnLPercent = pf.Totals.PnL.Percent(pf.Totals.Cost)
	return pf, nil
}
