package scoring

// Factor weights in percent of the composite score.
const (
	WeightRSI        = 20
	WeightMACD       = 15
	WeightTrend      = 25
	WeightTechRating = 20
	WeightVolatility = 10
	WeightMarketCap  = 10
)

// MaxFactorScore is the best score of a single factor.
const MaxFactorScore = 10

func rsiScore(a Attributes) int {
	rsi, ok := value(a.RSI)
	switch {
	case !ok:
		return 0
	case rsi >= 50 && rsi <= 70:
		return 10
	case rsi >= 40 && rsi < 50:
		return 7
	case rsi >= 30 && rsi < 40:
		return 5
	case rsi > 80:
		return 2
	default:
		return 1
	}
}

func macdScore(a Attributes) int {
	macd, ok := value(a.MACD)
	signal, ok2 := value(a.MACDSignal)
	if !ok || !ok2 {
		return 0
	}
	switch diff := macd - signal; {
	case diff > 0.05:
		return 10
	case diff > 0:
		return 7
	case diff > -0.05:
		return 4
	default:
		return 1
	}
}

func trendScore(a Attributes) int {
	price, hasPrice := value(a.Price)
	sma50, has50 := value(a.SMA50)
	sma200, has200 := value(a.SMA200)
	if !hasPrice || !has50 || !has200 {
		return 0
	}
	score := 0
	if price > sma50 {
		score += 5
	}
	if price > sma200 {
		score += 3
	}
	if sma50 > sma200 {
		score += 2
	}
	return score
}

func volatilityScore(a Attributes) int {
	v, ok := value(a.Volatility)
	switch {
	case !ok:
		return 0
	case v >= 0.5 && v <= 2.0:
		return 10
	case v >= 0.3 && v < 0.5:
		return 7
	case v > 2.0 && v <= 3.0:
		return 6
	case v > 3.0:
		return 3
	default:
		return 2
	}
}

func marketCapScore(a Attributes) int {
	const (
		million = 1e6
		billion = 1e9
	)
	m, ok := value(a.MarketCap)
	switch {
	case !ok:
		return 0
	case m >= 1*billion && m <= 50*billion:
		return 10
	case m > 50*billion && m <= 200*billion:
		return 8
	case m >= 500*million && m < 1*billion:
		return 6
	default:
		return 4
	}
}
