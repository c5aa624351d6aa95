package folio

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/etnz/folio/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RawTransaction is a transaction as entered by a user or read from a file,
// before any validation.
type RawTransaction struct {
	ID         string `json:"id"`
	Instrument string `json:"instrument"`
	Type       string `json:"type"`
	Quantity   string `json:"quantity"`
	UnitPrice  string `json:"price"`
	Currency   string `json:"currency"`
	Commission string `json:"commission"`
	Time       string `json:"time"`
	Memo       string `json:"memo"`
}

// UnmarshalJSON accepts numeric fields written either as JSON numbers or as strings.
func (r *RawTransaction) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	text := func(key string) (string, error) {
		raw, ok := fields[key]
		if !ok || string(raw) == "null" {
			return "", nil
		}
		if len(raw) > 0 && raw[0] == '"' {
			var s string
			err := json.Unmarshal(raw, &s)
			return s, err
		}
		return string(raw), nil
	}
	targets := map[string]*string{
		"id":         &r.ID,
		"instrument": &r.Instrument,
		"type":       &r.Type,
		"quantity":   &r.Quantity,
		"price":      &r.UnitPrice,
		"currency":   &r.Currency,
		"commission": &r.Commission,
		"time":       &r.Time,
		"memo":       &r.Memo,
	}
	for key, target := range targets {
		v, err := text(key)
		if err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		*target = v
	}
	return nil
}

// ValidationError lists every problem found in a RawTransaction.
type ValidationError struct {
	Raw RawTransaction
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s transaction %q: %v", e.Raw.Type, e.Raw.Instrument, e.Err)
}

func (e *ValidationError) Unwrap() []error { return []error{ErrInvalidTransaction, e.Err} }

// Normalizer validates raw records into typed Transactions.
//
// The zero value is usable: missing currencies are rejected, missing ids are
// generated and missing times are rejected.
type Normalizer struct {
	Currency string           // default currency when the record has none
	Now      func() time.Time // default time when the record has none
}

// timeFormats are tried in order when parsing a transaction time.
var timeFormats = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02T15:04:05"}

// Normalize validates r. All problems are reported at once in a *ValidationError.
func (n Normalizer) Normalize(r RawTransaction) (Transaction, error) {
	var errs []error
	tx := Transaction{
		ID:         strings.TrimSpace(r.ID),
		Instrument: strings.TrimSpace(r.Instrument),
		Memo:       strings.TrimSpace(r.Memo),
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	typ, err := ParseTxType(r.Type)
	if err != nil {
		errs = append(errs, err)
	}
	tx.Type = typ
	if typ.IsTrade() || typ == Dividend {
		if tx.Instrument == "" {
			errs = append(errs, errors.New("missing instrument"))
		}
	}

	currency := strings.ToUpper(strings.TrimSpace(r.Currency))
	if currency == "" {
		currency = n.Currency
	}
	switch {
	case currency == "":
		errs = append(errs, errors.New("missing currency"))
	case money.GetCurrency(currency) == nil:
		errs = append(errs, fmt.Errorf("unknown currency %q", currency))
	}

	quantity, err := parseNumber("quantity", r.Quantity, !typ.IsTrade())
	if err != nil {
		errs = append(errs, err)
	} else if typ.IsTrade() && !quantity.IsPositive() {
		errs = append(errs, fmt.Errorf("quantity must be positive, got %v", quantity))
	}
	tx.Quantity = Q(quantity)

	price, err := parseNumber("price", r.UnitPrice, false)
	if err != nil {
		errs = append(errs, err)
	}
	tx.UnitPrice = M(price, currency)

	commission, err := parseNumber("commission", r.Commission, true)
	if err != nil {
		errs = append(errs, err)
	}
	tx.Commission = M(commission, currency)

	when, err := n.parseTime(r.Time)
	if err != nil {
		errs = append(errs, err)
	}
	tx.When = when

	if len(errs) > 0 {
		return Transaction{}, &ValidationError{Raw: r, Err: errors.Join(errs...)}
	}
	return tx, nil
}

// parseNumber parses a non negative decimal. An empty optional value is 0,
// except for quantities of cash movements which default to 1.
func parseNumber(field, s string, optional bool) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		if !optional {
			return decimal.Zero, fmt.Errorf("missing %s", field)
		}
		if field == "quantity" {
			return decimal.NewFromInt(1), nil
		}
		return decimal.Zero, nil
	}
	// decimal rejects NaN and infinities.
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q", field, s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative %s %q", field, s)
	}
	return d, nil
}

func (n Normalizer) parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		if n.Now == nil {
			return time.Time{}, errors.New("missing time")
		}
		return n.Now().UTC(), nil
	}
	for _, layout := range timeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	d, err := date.Parse(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q", s)
	}
	return d.Time(), nil
}

// Raw returns the record Normalize would turn back into tx.
func (tx Transaction) Raw() RawTransaction {
	r := RawTransaction{
		ID:         tx.ID,
		Instrument: tx.Instrument,
		Type:       tx.Type.String(),
		Quantity:   tx.Quantity.String(),
		UnitPrice:  tx.UnitPrice.Amount().String(),
		Currency:   tx.Currency(),
		Time:       tx.When.UTC().Format(time.RFC3339Nano),
		Memo:       tx.Memo,
	}
	if !tx.Commission.IsZero() {
		r.Commission = tx.Commission.Amount().String()
	}
	return r
}
