package scoring

import "strings"

// Components holds the factor scores, each in [0, 10].
type Components struct {
	RSI        int `json:"rsi"`
	MACD       int `json:"macd"`
	Trend      int `json:"trend"`
	TechRating int `json:"techRating"`
	Volatility int `json:"volatility"`
	MarketCap  int `json:"marketCap"`
}

// weighted returns Σ score × weight, with weights in percent.
func (c Components) weighted() int {
	return c.RSI*WeightRSI +
		c.MACD*WeightMACD +
		c.Trend*WeightTrend +
		c.TechRating*WeightTechRating +
		c.Volatility*WeightVolatility +
		c.MarketCap*WeightMarketCap
}

// ScoredInstrument is the result of Score.
type ScoredInstrument struct {
	Attributes      Attributes `json:"attributes"`
	Components      Components `json:"components"`
	InvestmentScore int        `json:"investmentScore"` // in [0, 100]
	Rationale       string     `json:"rationale"`
	Rating          string     `json:"rating"` // label of the technical rating
}

type options struct {
	techRating ThresholdTable
}

// Option configures Score.
type Option func(*options)

// WithTechRatingTable replaces the default TechRatingFiveBand table.
func WithTechRatingTable(t ThresholdTable) Option {
	return func(o *options) { o.techRating = t }
}

// Score computes the factor scores and the investment score of a.
//
// The investment score is round(100 × Σ(score × weight) / 10). It is computed
// in integers so that equal inputs always give equal scores.
func Score(a Attributes, opts ...Option) ScoredInstrument {
	o := options{techRating: TechRatingFiveBand}
	for _, opt := range opts {
		opt(&o)
	}

	c := Components{
		RSI:        rsiScore(a),
		MACD:       macdScore(a),
		Trend:      trendScore(a),
		Volatility: volatilityScore(a),
		MarketCap:  marketCapScore(a),
	}
	if rating, ok := value(a.TechRating); ok {
		c.TechRating = o.techRating.Score(rating)
	}

	// weighted is in [0, 1000]: 100 × Σ(score × weight%/100) / 10 = weighted / 10
	score := (c.weighted() + 5) / 10
	return ScoredInstrument{
		Attributes:      a,
		Components:      c,
		InvestmentScore: score,
		Rationale:       rationale(c),
		Rating:          FormatTechnicalRating(a.TechRating),
	}
}

// InsufficientSignal is the rationale when no factor stands out.
const InsufficientSignal = "Insufficient signal"

// rationale lists the first three strong factors.
func rationale(c Components) string {
	var labels []string
	add := func(ok bool, label string) {
		if ok && len(labels) < 3 {
			labels = append(labels, label)
		}
	}
	add(c.RSI >= 8, "RSI optimal")
	add(c.MACD >= 7, "MACD positive")
	add(c.Trend >= 8, "Strong uptrend")
	add(c.TechRating >= 8, "Positive technical analysis")
	add(c.Volatility >= 7, "Controlled volatility")
	if len(labels) == 0 {
		return InsufficientSignal
	}
	return strings.Join(labels, ", ")
}

// FormatTechnicalRating labels a technical rating in [-1, 1].
func FormatTechnicalRating(rating *float64) string {
	v, ok := value(rating)
	switch {
	case !ok:
		return "N/A"
	case v > 0.5:
		return "Strong Buy"
	case v > 0.1:
		return "Buy"
	case v > -0.1:
		return "Neutral"
	case v > -0.5:
		return "Sell"
	default:
		return "Strong Sell"
	}
}
