package folio

import (
	"fmt"
	"slices"
)

// Position is the current holding of one instrument, derived from its
// transactions and a current price.
type Position struct {
	Instrument  string         `json:"instrument"`
	Mode        AccountingMode `json:"mode"`
	Quantity    Quantity       `json:"quantity"`
	AverageCost Money          `json:"averageCost"`
	CostBasis   Money          `json:"costBasis"`
	Price       Money          `json:"price"`  // current price, AverageCost when unknown
	Priced      bool           `json:"priced"` // true when Price comes from a quote or a growth curve
	TotalValue  Money          `json:"totalValue"`
	PnL         Money          `json:"pnl"`
	PnLPercent  Percent        `json:"pnlPercent"`
	Lots        []Lot          `json:"lots,omitempty"` // open lots, StandardLots only
}

// Currency returns the position's currency.
func (p Position) Currency() string { return p.AverageCost.Currency() }

// reprice sets the current price and everything that derives from it.
func (p *Position) reprice(price Money, priced bool) {
	p.Price = price.In(p.Currency())
	p.Priced = priced
	p.TotalValue = p.Price.Mul(p.Quantity)
	p.PnL = p.TotalValue.Sub(p.CostBasis)
	p.PnLPercent = p.PnL.Percent(p.CostBasis)
}

// ReconstructPosition replays the transactions of a single instrument.
//
// Instruments in special are valued with the NetCashflowValuator, the others
// through a FIFO LotTracker. The returned position is priced at its average
// cost, or at its growth curve when one is configured.
func ReconstructPosition(txs []Transaction, special InstrumentSet, opts ...Option) (Position, error) {
	o := newOptions(opts)
	return reconstruct(txs, special, o)
}

func reconstruct(txs []Transaction, special InstrumentSet, o options) (Position, error) {
	if len(txs) == 0 {
		return Position{}, ErrUnknownInstrument
	}
	instrument := txs[0].Instrument
	currency := ""
	for _, tx := range txs {
		if tx.Instrument != instrument {
			return Position{}, fmt.Errorf("mixed instruments %q and %q", instrument, tx.Instrument)
		}
		if !tx.Type.IsTrade() {
			continue
		}
		switch {
		case currency == "":
			currency = tx.Currency()
		case tx.Currency() != currency:
			return Position{}, fmt.Errorf("%w: %s traded in %s and %s", ErrCurrencyMismatch, instrument, currency, tx.Currency())
		}
	}
	// Ledger order is the FIFO contract, whatever the order we are given.
	txs = slices.Clone(txs)
	slices.SortStableFunc(txs, func(a, b Transaction) int { return a.When.Compare(b.When) })

	p := Position{Instrument: instrument, Mode: special.Mode(instrument)}
	switch p.Mode {
	case NetCashflow:
		p.Quantity, p.AverageCost = NetCashflowValuator{}.Value(txs)
		p.CostBasis = p.AverageCost.Mul(p.Quantity)
	default:
		tracker := NewLotTracker(instrument, o.policy)
		for _, tx := range txs {
			if err := tracker.Apply(tx); err != nil {
				return Position{}, err
			}
		}
		p.Quantity = tracker.Quantity()
		p.AverageCost = tracker.AverageCost()
		p.CostBasis = tracker.CostBasis()
		p.Lots = tracker.Lots()
	}
	p.AverageCost = p.AverageCost.In(currency)
	p.CostBasis = p.CostBasis.In(currency)

	if curve, ok := o.growth[instrument]; ok && p.Mode == NetCashflow && p.Quantity.IsPositive() {
		p.reprice(curve.Value(o.clock), true)
	} else {
		p.reprice(p.AverageCost, false)
	}
	return p, nil
}
