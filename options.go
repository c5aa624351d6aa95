package folio

import "github.com/shopspring/decimal"

// DefaultEpsilon is the quantity under which a position is considered closed.
var DefaultEpsilon = decimal.New(1, -8)

type options struct {
	policy   OversellPolicy
	epsilon  decimal.Decimal
	growth   map[string]GrowthCurve
	clock    Clock
	currency string
}

func newOptions(opts []Option) options {
	o := options{epsilon: DefaultEpsilon}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures position reconstruction and aggregation.
type Option func(*options)

// WithOversellPolicy sets the policy of the LotTrackers. Default is Tolerant.
func WithOversellPolicy(p OversellPolicy) Option { return func(o *options) { o.policy = p } }

// WithEpsilon sets the inclusion threshold of positions. Default is 1e-8.
func WithEpsilon(eps float64) Option {
	return func(o *options) { o.epsilon = decimal.NewFromFloat(eps) }
}

// WithGrowthCurve prices a held NetCashflow instrument with curve.
func WithGrowthCurve(instrument string, curve GrowthCurve) Option {
	return func(o *options) {
		if o.growth == nil {
			o.growth = make(map[string]GrowthCurve)
		}
		o.growth[instrument] = curve
	}
}

// WithClock sets the clock used by growth curves.
func WithClock(c Clock) Option { return func(o *options) { o.clock = c } }

// WithCurrency sets the reporting currency of portfolio totals.
func WithCurrency(cur string) Option { return func(o *options) { o.currency = cur } }
