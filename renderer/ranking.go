package renderer

import (
	"fmt"

	"github.com/etnz/folio/scoring"
)

// RankingRow is one line of the ranking table.
type RankingRow struct {
	Rank       int
	Name       string
	Score      int
	Rating     string
	Components string
	Rationale  string
}

// Ranking is the view of a ranked universe.
type Ranking struct {
	Title   string
	Filter  string
	Rows    []RankingRow
	Summary scoring.Summary
}

// NewRanking formats ranked, which is expected in rank order.
func NewRanking(title, filter string, ranked []scoring.ScoredInstrument, summary scoring.Summary) *Ranking {
	r := &Ranking{Title: title, Filter: filter, Summary: summary}
	for i, s := range ranked {
		c := s.Components
		r.Rows = append(r.Rows, RankingRow{
			Rank:       i + 1,
			Name:       s.Attributes.Name,
			Score:      s.InvestmentScore,
			Rating:     s.Rating,
			Components: fmt.Sprintf("%d/%d/%d/%d/%d/%d", c.RSI, c.MACD, c.Trend, c.TechRating, c.Volatility, c.MarketCap),
			Rationale:  s.Rationale,
		})
	}
	return r
}

// RenderRanking renders the ranking report.
func RenderRanking(r *Ranking) string {
	return renderTemplate("ranking", "ranking.md", map[string]string{"title": "title.md"}, r)
}
