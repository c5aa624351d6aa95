package scoring

import (
	"fmt"
	"strings"
)

// Band scores every value greater than or equal to Min.
type Band struct {
	Min   float64
	Score int
}

// ThresholdTable maps a value to the score of the first band it reaches.
// Bands are listed from the highest Min. Values below every band score Else.
type ThresholdTable struct {
	Name  string
	Bands []Band
	Else  int
}

// Score returns the score of v.
func (t ThresholdTable) Score(v float64) int {
	for _, b := range t.Bands {
		if v >= b.Min {
			return b.Score
		}
	}
	return t.Else
}

var (
	// TechRatingFiveBand is the default technical rating table.
	TechRatingFiveBand = ThresholdTable{
		Name:  "five-band",
		Bands: []Band{{0.5, 10}, {0.3, 8}, {0.1, 6}, {-0.1, 4}},
		Else:  2,
	}
	// TechRatingFourBand has no intermediate band between 0.3 and -0.1.
	TechRatingFourBand = ThresholdTable{
		Name:  "four-band",
		Bands: []Band{{0.5, 10}, {0.3, 8}, {-0.1, 4}},
		Else:  2,
	}
)

// ParseThresholdTable returns the technical rating table named s.
func ParseThresholdTable(s string) (ThresholdTable, error) {
	switch strings.ToLower(s) {
	case "", TechRatingFiveBand.Name:
		return TechRatingFiveBand, nil
	case TechRatingFourBand.Name:
		return TechRatingFourBand, nil
	default:
		return ThresholdTable{}, fmt.Errorf("unknown technical rating table: %q", s)
	}
}
