package folio

import "fmt"

// Lot is an unconsumed purchase tranche.
type Lot struct {
	Quantity  Quantity `json:"quantity"`
	UnitPrice Money    `json:"unitPrice"`
}

type lots []Lot

// quantity returns the sum of the lots quantities.
func (l lots) quantity() Quantity {
	var total Quantity
	for _, lot := range l {
		total = total.Add(lot.Quantity)
	}
	return total
}

// cost returns Σ quantity × unit price.
func (l lots) cost() Money {
	var total Money
	for _, lot := range l {
		total = total.Add(lot.UnitPrice.Mul(lot.Quantity))
	}
	return total
}

// sell consumes quantityToSell from the oldest lots and returns the remaining
// lots and the quantity that could not be matched.
func (l lots) sell(quantityToSell Quantity) (lots, Quantity) {
	for len(l) > 0 && quantityToSell.IsPositive() {
		head := l[0]
		if head.Quantity.GreaterThan(quantityToSell) {
			// Partial consumption of the oldest lot.
			remaining := make(lots, len(l))
			copy(remaining, l)
			remaining[0].Quantity = head.Quantity.Sub(quantityToSell)
			return remaining, Quantity{}
		}
		quantityToSell = quantityToSell.Sub(head.Quantity)
		l = l[1:]
	}
	return l, quantityToSell
}

// LotTracker maintains the FIFO queue of open lots of one instrument.
type LotTracker struct {
	instrument string
	policy     OversellPolicy
	open       lots
}

// NewLotTracker returns an empty tracker for instrument.
func NewLotTracker(instrument string, policy OversellPolicy) *LotTracker {
	return &LotTracker{instrument: instrument, policy: policy}
}

// Buy appends a new lot at the tail of the queue. Lots are never merged.
func (t *LotTracker) Buy(quantity Quantity, unitPrice Money) {
	t.open = append(t.open, Lot{Quantity: quantity, UnitPrice: unitPrice})
}

// Sell consumes quantity from the head of the queue.
//
// With the Tolerant policy an oversell empties the queue and the excess is
// dropped. With the Strict policy it returns ErrOversell and leaves the queue
// unchanged.
func (t *LotTracker) Sell(quantity Quantity) error {
	if t.policy == Strict {
		if held := t.open.quantity(); quantity.GreaterThan(held) {
			return fmt.Errorf("%w: %s holds %v, sell %v", ErrOversell, t.instrument, held, quantity)
		}
	}
	t.open, _ = t.open.sell(quantity)
	return nil
}

// Apply replays tx. Cash movements do not change the lots.
func (t *LotTracker) Apply(tx Transaction) error {
	switch tx.Type {
	case Buy:
		t.Buy(tx.Quantity, tx.UnitPrice)
	case Sell:
		if err := t.Sell(tx.Quantity); err != nil {
			return fmt.Errorf("sell on %s: %w", tx.When.Format("2006-01-02"), err)
		}
	}
	return nil
}

// Quantity returns the sum of open lot quantities.
func (t *LotTracker) Quantity() Quantity { return t.open.quantity() }

// CostBasis returns the cost of the open lots.
func (t *LotTracker) CostBasis() Money { return t.open.cost() }

// AverageCost returns CostBasis / Quantity, or zero when nothing is held.
func (t *LotTracker) AverageCost() Money {
	q := t.Quantity()
	if !q.IsPositive() {
		return Money{cur: t.CostBasis().cur}
	}
	return t.CostBasis().Div(q)
}

// Lots returns a copy of the open lots, oldest first.
func (t *LotTracker) Lots() []Lot {
	res := make([]Lot, len(t.open))
	copy(res, t.open)
	return res
}
