package scoring

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
)

// DefaultFields maps each attribute to its JSONPath in a screener row.
var DefaultFields = map[string]string{
	"name":       `$.name`,
	"price":      `$.close`,
	"rsi":        `$.RSI`,
	"macd":       `$["MACD.macd"]`,
	"macdSignal": `$["MACD.signal"]`,
	"sma50":      `$.SMA50`,
	"sma200":     `$.SMA200`,
	"volatility": `$["Volatility.D"]`,
	"techRating": `$["Recommend.All"]`,
	"marketCap":  `$.market_cap_basic`,
	"volume":     `$.volume`,
	"relVolume":  `$.relative_volume_10d_calc`,
	"change":     `$.change`,
	"pe":         `$.price_earnings_ttm`,
	"perfW":      `$["Perf.W"]`,
	"perf1M":     `$["Perf.1M"]`,
}

// Decoder reads attribute snapshots from any JSON document.
//
// Rows is the JSONPath of the list of rows in the document, each row is then
// read with the Fields paths. Fields missing from the map use DefaultFields.
type Decoder struct {
	Rows   string
	Fields map[string]string
}

// Decode reads the whole document from r.
func (d Decoder) Decode(r io.Reader) ([]Attributes, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot decode attributes: %w", err)
	}
	rowsPath := d.Rows
	if rowsPath == "" {
		rowsPath = "$"
	}
	jrows, err := jsonpath.Get(rowsPath, doc)
	if err != nil {
		return nil, fmt.Errorf("error reading rows %q: %w", rowsPath, err)
	}
	rows, ok := jrows.([]any)
	if !ok {
		// a single row
		rows = []any{jrows}
	}

	res := make([]Attributes, 0, len(rows))
	for i, row := range rows {
		a, err := d.decodeRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		res = append(res, a)
	}
	return res, nil
}

func (d Decoder) path(field string) string {
	if p, ok := d.Fields[field]; ok {
		return p
	}
	return DefaultFields[field]
}

func (d Decoder) decodeRow(row any) (Attributes, error) {
	var a Attributes
	if name, ok := get(d.path("name"), row).(string); ok {
		a.Name = name
	}
	targets := []struct {
		field string
		dst   **float64
	}{
		{"price", &a.Price},
		{"rsi", &a.RSI},
		{"macd", &a.MACD},
		{"macdSignal", &a.MACDSignal},
		{"sma50", &a.SMA50},
		{"sma200", &a.SMA200},
		{"volatility", &a.Volatility},
		{"techRating", &a.TechRating},
		{"marketCap", &a.MarketCap},
		{"volume", &a.Volume},
		{"relVolume", &a.RelVolume},
		{"change", &a.Change},
		{"pe", &a.PE},
		{"perfW", &a.PerfW},
		{"perf1M", &a.Perf1M},
	}
	for _, t := range targets {
		v, err := number(get(d.path(t.field), row))
		if err != nil {
			return Attributes{}, fmt.Errorf("field %s: %w", t.field, err)
		}
		*t.dst = v
	}
	return a, nil
}

// get evaluates path on row. Unknown keys are nil.
func get(path string, row any) any {
	if path == "" {
		return nil
	}
	jval, err := jsonpath.Get(path, row)
	if err != nil {
		return nil
	}
	// jsonpath returns a list for wildcard paths: keep the first answer.
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return nil
		}
		jval = jlist[0]
	}
	return jval
}

// number converts a JSON value into an optional float.
func number(jval any) (*float64, error) {
	switch v := jval.(type) {
	case nil:
		return nil, nil
	case float64:
		return F(v), nil
	case string:
		if v == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", v)
		}
		return F(f), nil
	default:
		return nil, fmt.Errorf("not a number: %v", v)
	}
}
