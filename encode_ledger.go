package folio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// MarshalJSON writes the transaction with a stable field order.
func (tx Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", tx.ID)
	w.Append("time", tx.When.UTC().Format(time.RFC3339Nano))
	w.Append("type", tx.Type)
	w.Optional("instrument", tx.Instrument, tx.Instrument != "")
	w.Append("quantity", tx.Quantity)
	w.Append("price", tx.UnitPrice.Amount())
	w.Append("currency", tx.Currency())
	w.Optional("commission", tx.Commission.Amount(), !tx.Commission.IsZero())
	w.Optional("memo", tx.Memo, tx.Memo != "")
	return w.MarshalJSON()
}

// EncodeTransaction writes tx as a single JSON line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	b, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("could not encode transaction %s: %w", tx.ID, err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// EncodeLedger writes every transaction of l in ledger order, one per line.
func EncodeLedger(w io.Writer, l *Ledger) error {
	for _, tx := range l.transactions {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// DecodeLedger reads a JSONL stream of transactions. Every line goes through
// n, the first invalid line aborts the decoding.
func DecodeLedger(r io.Reader, n Normalizer) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		var raw RawTransaction
		if err := json.Unmarshal(lineBytes, &raw); err != nil {
			return nil, fmt.Errorf("line %d: could not decode %q: %w", line, string(lineBytes), err)
		}
		tx, err := n.Normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ledger.Append(tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ledger: %w", err)
	}
	return ledger, nil
}
