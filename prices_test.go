package folio

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodePrices(t *testing.T) {
	prices, err := DecodePrices(strings.NewReader(`{"AAPL": {"price": 190.1, "currency": "USD"}, "BTP": 98.5}`))
	if err != nil {
		t.Fatalf("DecodePrices() error = %v", err)
	}
	if got, want := prices["AAPL"].Money(), USD(190.1); !got.Equal(want) {
		t.Errorf("AAPL = %v, want %v", got, want)
	}
	if got := prices["BTP"].Price.InexactFloat64(); got != 98.5 {
		t.Errorf("BTP = %v, want 98.5", got)
	}
	if got := prices["BTP"].Currency; got != "" {
		t.Errorf("BTP currency = %q, want none", got)
	}
}

func TestDecodePrices_Errors(t *testing.T) {
	for _, in := range []string{`[]`, `{"A": "x"}`, `{"A": -1}`, `{"A": {"price": "nope"}}`} {
		if _, err := DecodePrices(strings.NewReader(in)); err == nil {
			t.Errorf("DecodePrices(%s) want error", in)
		}
	}
}

func TestPricesFile(t *testing.T) {
	dir := t.TempDir()
	missing := PricesFile{Path: filepath.Join(dir, "none.json")}
	prices, err := missing.Prices(context.Background())
	if err != nil || len(prices) != 0 {
		t.Fatalf("Prices() on missing file = %v, %v", prices, err)
	}

	path := filepath.Join(dir, "prices.json")
	if err := os.WriteFile(path, []byte(`{"ACME": 12}`), 0644); err != nil {
		t.Fatal(err)
	}
	prices, err = PricesFile{Path: path}.Prices(context.Background())
	if err != nil {
		t.Fatalf("Prices() error = %v", err)
	}
	if got := prices["ACME"].Price.IntPart(); got != 12 {
		t.Errorf("ACME = %v, want 12", got)
	}
}
