package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilters(t *testing.T) {
	base := strong() // passes the base filter, RSI 60, rating 0.6
	value := strong()
	value.Name = "VALUE"
	value.PE = F(12)
	growth := strong()
	growth.Name = "GROWTH"
	growth.Perf1M = F(8)
	weak := strong()
	weak.Name = "WEAK"
	weak.MACD = F(0.5) // below signal
	hot := strong()
	hot.Name = "HOT"
	hot.RSI = F(75)
	hot.TechRating = F(0.2)

	small := strong()
	small.Name = "SMALL"
	small.MarketCap = F(5e9)
	quiet := strong()
	quiet.Name = "QUIET"
	quiet.RelVolume = F(0.7) // must be above
	unknownVolume := strong()
	unknownVolume.Name = "NOVOL"
	unknownVolume.RelVolume = nil

	universe := []Attributes{base, value, growth, weak, hot, small, quiet, unknownVolume}
	tests := []struct {
		filter string
		want   []string
	}{
		{"", []string{"ACME", "VALUE", "GROWTH", "HOT"}},
		{"top_score", []string{"ACME", "VALUE", "GROWTH"}},
		{"value", []string{"VALUE"}},
		{"growth", []string{"GROWTH"}},
		{"momentum", []string{"ACME", "VALUE", "GROWTH"}},
		{"dividend", []string{"ACME", "VALUE", "GROWTH", "HOT"}},
	}
	for _, tt := range tests {
		f, err := ParseFilter(tt.filter)
		require.NoError(t, err)
		var got []string
		for _, a := range f.Apply(universe) {
			got = append(got, a.Name)
		}
		assert.Equal(t, tt.want, got, "filter %q", tt.filter)
	}
}

func TestParseFilter_Unknown(t *testing.T) {
	_, err := ParseFilter("dividend_kings")
	assert.ErrorContains(t, err, "unknown filter")
	assert.Contains(t, FilterNames(), "momentum")
}
