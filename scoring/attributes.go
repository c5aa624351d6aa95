// Package scoring ranks instruments with a deterministic six factor
// investment score computed from a snapshot of technical and fundamental
// attributes.
//
// Every attribute is optional. A missing attribute (nil, NaN or infinite)
// makes its factor score 0, it is never an error: the score of a partial
// snapshot is always defined.
package scoring

import "math"

// Attributes is the market snapshot of one instrument. JSON names follow the
// columns of the screener exports.
type Attributes struct {
	Name       string   `json:"name"`
	Price      *float64 `json:"close"`
	RSI        *float64 `json:"RSI"`
	MACD       *float64 `json:"MACD.macd"`
	MACDSignal *float64 `json:"MACD.signal"`
	SMA50      *float64 `json:"SMA50"`
	SMA200     *float64 `json:"SMA200"`
	Volatility *float64 `json:"Volatility.D"` // daily, in percent
	TechRating *float64 `json:"Recommend.All"`
	MarketCap  *float64 `json:"market_cap_basic"`

	// Extra columns used by screener filters and reports only.
	Volume    *float64 `json:"volume,omitempty"`
	RelVolume *float64 `json:"relative_volume_10d_calc,omitempty"`
	Change    *float64 `json:"change,omitempty"`
	PE        *float64 `json:"price_earnings_ttm,omitempty"`
	PerfW     *float64 `json:"Perf.W,omitempty"`
	Perf1M    *float64 `json:"Perf.1M,omitempty"`
}

// F returns a pointer to v, for building Attributes literals.
func F(v float64) *float64 { return &v }

// value returns the attribute and whether it is usable.
func value(p *float64) (float64, bool) {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return 0, false
	}
	return *p, true
}
