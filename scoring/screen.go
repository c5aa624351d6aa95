package scoring

import (
	"fmt"
	"slices"
	"strings"
)

// Filter selects the instruments worth scoring.
type Filter struct {
	Name  string
	Match func(Attributes) bool
}

// between reports whether p is usable and lo <= *p <= hi.
func between(p *float64, lo, hi float64) bool {
	v, ok := value(p)
	return ok && v >= lo && v <= hi
}

// above reports whether p is usable and *p > lo.
func above(p *float64, lo float64) bool {
	v, ok := value(p)
	return ok && v > lo
}

// below reports whether p is usable and *p < hi.
func below(p *float64, hi float64) bool {
	v, ok := value(p)
	return ok && v < hi
}

// greater reports whether both are usable and *a > *b.
func greater(a, b *float64) bool {
	y, ok := value(b)
	return ok && above(a, y)
}

// baseFilter keeps large, actively traded instruments in an uptrend with a
// healthy momentum.
func baseFilter(a Attributes) bool {
	return between(a.MarketCap, 10e9, 200e12) &&
		above(a.RelVolume, 0.7) &&
		greater(a.Price, a.SMA50) &&
		greater(a.Price, a.SMA200) &&
		between(a.RSI, 30, 80) &&
		greater(a.MACD, a.MACDSignal) &&
		above(a.Volatility, 0.2) &&
		above(a.TechRating, 0.1)
}

// Filters are the screener presets.
var Filters = []Filter{
	{Name: "all", Match: baseFilter},
	{Name: "top_score", Match: func(a Attributes) bool {
		return baseFilter(a) && between(a.RSI, 50, 70) && above(a.TechRating, 0.3)
	}},
	{Name: "value", Match: func(a Attributes) bool {
		return baseFilter(a) && above(a.PE, 5) && below(a.PE, 20)
	}},
	{Name: "growth", Match: func(a Attributes) bool {
		return baseFilter(a) && above(a.Perf1M, 5) && below(a.RSI, 70)
	}},
	// no dividend column in the snapshots yet, same as all
	{Name: "dividend", Match: baseFilter},
	{Name: "momentum", Match: func(a Attributes) bool {
		return baseFilter(a) && above(a.RSI, 50) && above(a.TechRating, 0.3)
	}},
}

// FilterNames lists the preset names.
func FilterNames() []string {
	names := make([]string, 0, len(Filters))
	for _, f := range Filters {
		names = append(names, f.Name)
	}
	return names
}

// ParseFilter returns the preset named s, "all" when s is empty.
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		s = "all"
	}
	i := slices.IndexFunc(Filters, func(f Filter) bool { return f.Name == strings.ToLower(s) })
	if i < 0 {
		return Filter{}, fmt.Errorf("unknown filter %q, want one of %v", s, FilterNames())
	}
	return Filters[i], nil
}

// Apply returns the snapshots matched by f, in order.
func (f Filter) Apply(attrs []Attributes) []Attributes {
	var res []Attributes
	for _, a := range attrs {
		if f.Match(a) {
			res = append(res, a)
		}
	}
	return res
}
