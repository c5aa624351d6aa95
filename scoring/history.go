package scoring

import (
	"math"

	"github.com/markcheno/go-talib"
	"gonum.org/v1/gonum/stat"
)

// Periods of the indicators derived by FromHistory.
const (
	RSIPeriod        = 14
	MACDFast         = 12
	MACDSlow         = 26
	MACDSignalPeriod = 9
	VolatilityWindow = 20
)

// FromHistory derives the technical attributes of an instrument from its
// daily closes, oldest first. Indicators without enough history stay nil.
// The technical rating and market capitalization are not derivable and stay
// nil too.
func FromHistory(name string, closes []float64) Attributes {
	a := Attributes{Name: name}
	if len(closes) == 0 {
		return a
	}
	a.Price = F(closes[len(closes)-1])
	if len(closes) > RSIPeriod {
		a.RSI = last(talib.Rsi(closes, RSIPeriod))
	}
	if len(closes) >= MACDSlow+MACDSignalPeriod {
		macd, signal, _ := talib.Macd(closes, MACDFast, MACDSlow, MACDSignalPeriod)
		a.MACD, a.MACDSignal = last(macd), last(signal)
	}
	if len(closes) >= 50 {
		a.SMA50 = last(talib.Sma(closes, 50))
	}
	if len(closes) >= 200 {
		a.SMA200 = last(talib.Sma(closes, 200))
	}
	a.Volatility = dailyVolatility(closes, VolatilityWindow)
	if len(closes) > 1 {
		prev := closes[len(closes)-2]
		if prev != 0 {
			a.Change = F((closes[len(closes)-1]/prev - 1) * 100)
		}
	}
	return a
}

// last returns the last value of series, nil when it is NaN.
func last(series []float64) *float64 {
	if len(series) == 0 {
		return nil
	}
	v := series[len(series)-1]
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// dailyVolatility is the standard deviation of the last window daily
// returns, in percent.
func dailyVolatility(closes []float64, window int) *float64 {
	if len(closes) < window+1 {
		return nil
	}
	tail := closes[len(closes)-window-1:]
	returns := make([]float64, 0, window)
	for i := 1; i < len(tail); i++ {
		if tail[i-1] == 0 {
			return nil
		}
		returns = append(returns, (tail[i]/tail[i-1]-1)*100)
	}
	return F(stat.StdDev(returns, nil))
}
