package folio

import (
	"math"

	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

// NetCashflowValuator values instruments whose buys and sells are
// contributions and withdrawals of value rather than units.
//
// Only unit prices are summed: net = Σ buy prices − Σ sell prices. The
// instrument is held (quantity 1) while net is positive, and its average cost
// is |net|.
type NetCashflowValuator struct{}

// Value returns the quantity (0 or 1) and average cost of the instrument.
func (NetCashflowValuator) Value(txs []Transaction) (Quantity, Money) {
	var net Money
	for _, tx := range txs {
		switch tx.Type {
		case Buy:
			net = net.Add(tx.UnitPrice)
		case Sell:
			net = net.Sub(tx.UnitPrice)
		}
	}
	if net.IsPositive() {
		return Q(1), net
	}
	return Q(0), net.Abs()
}

// Clock returns the current date.
type Clock func() date.Date

// GrowthCurve compounds a value daily from an anchor:
//
//	value(d) = AnchorValue × (1+AnnualRate)^(days(d−AnchorDate)/365)
//
// Dates before the anchor have the anchor value.
type GrowthCurve struct {
	AnchorDate  date.Date
	AnchorValue Money
	AnnualRate  float64
}

// ValueOn returns the value of the curve on day.
func (g GrowthCurve) ValueOn(day date.Date) Money {
	days := day.Sub(g.AnchorDate)
	if days <= 0 {
		return g.AnchorValue
	}
	factor := math.Pow(1+g.AnnualRate, float64(days)/365)
	return g.AnchorValue.Scale(decimal.NewFromFloat(factor))
}

// Value returns the value of the curve today according to clock.
// Without a clock the curve stays at its anchor value.
func (g GrowthCurve) Value(clock Clock) Money {
	if clock == nil {
		return g.AnchorValue
	}
	return g.ValueOn(clock())
}
