package folio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// Quote is the current price of an instrument.
type Quote struct {
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency,omitempty"`
}

// Money returns the quote as Money.
func (q Quote) Money() Money { return M(q.Price, q.Currency) }

// PriceMap maps an instrument to its current quote.
type PriceMap map[string]Quote

// DecodePrices reads a JSON object mapping instruments to quotes:
//
//	{"AAPL": {"price": 190.1, "currency": "USD"}}
//
// A bare number is accepted as a price without currency.
func DecodePrices(r io.Reader) (PriceMap, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("cannot decode prices: %w", err)
	}
	prices := make(PriceMap, len(raw))
	for instrument, msg := range raw {
		var q Quote
		if s := strings.TrimSpace(string(msg)); strings.HasPrefix(s, "{") {
			if err := json.Unmarshal(msg, &q); err != nil {
				return nil, fmt.Errorf("invalid quote for %q: %w", instrument, err)
			}
		} else if err := json.Unmarshal(msg, &q.Price); err != nil {
			return nil, fmt.Errorf("invalid price for %q: %w", instrument, err)
		}
		if q.Price.IsNegative() {
			return nil, fmt.Errorf("negative price for %q: %v", instrument, q.Price)
		}
		prices[instrument] = q
	}
	return prices, nil
}

// PricesFile is a JSON price file on disk, see DecodePrices. A missing file
// has no price.
type PricesFile struct {
	Path string
}

// Prices reads the whole file.
func (f PricesFile) Prices(context.Context) (PriceMap, error) {
	file, err := os.Open(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return PriceMap{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open prices file %q: %w", f.Path, err)
	}
	defer file.Close()
	return DecodePrices(file)
}
