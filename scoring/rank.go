package scoring

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// DefaultTop is the number of picks returned by Top when n is not positive.
const DefaultTop = 5

// ScoreAll scores every snapshot, in order.
func ScoreAll(attrs []Attributes, opts ...Option) []ScoredInstrument {
	res := make([]ScoredInstrument, 0, len(attrs))
	for _, a := range attrs {
		res = append(res, Score(a, opts...))
	}
	return res
}

// Rank sorts scored instruments by decreasing investment score. Ties keep
// their input order.
func Rank(scored []ScoredInstrument) []ScoredInstrument {
	res := slices.Clone(scored)
	slices.SortStableFunc(res, func(a, b ScoredInstrument) int {
		return cmp.Compare(b.InvestmentScore, a.InvestmentScore)
	})
	return res
}

// Top returns the n best ranked instruments.
func Top(scored []ScoredInstrument, n int) []ScoredInstrument {
	if n <= 0 {
		n = DefaultTop
	}
	ranked := Rank(scored)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Summary describes the distribution of investment scores of a universe.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
	Median float64 `json:"median"`
	Max    int     `json:"max"`
}

// Summarize computes the Summary of scored.
func Summarize(scored []ScoredInstrument) Summary {
	if len(scored) == 0 {
		return Summary{}
	}
	scores := make([]float64, 0, len(scored))
	s := Summary{Count: len(scored)}
	for _, x := range scored {
		scores = append(scores, float64(x.InvestmentScore))
		s.Max = max(s.Max, x.InvestmentScore)
	}
	slices.Sort(scores)
	s.Mean = stat.Mean(scores, nil)
	if len(scores) > 1 {
		s.StdDev = stat.StdDev(scores, nil)
	}
	s.Median = stat.Quantile(0.5, stat.Empirical, scores, nil)
	return s
}
