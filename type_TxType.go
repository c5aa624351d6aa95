package folio

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TxType is the kind of a Transaction.
type TxType int

const (
	Buy TxType = iota + 1
	Sell
	Deposit
	Withdraw
	Dividend
)

// TxTypes lists all valid transaction types.
var TxTypes = []TxType{Buy, Sell, Deposit, Withdraw, Dividend}

func (t TxType) String() string {
	switch t {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	case Deposit:
		return "deposit"
	case Withdraw:
		return "withdraw"
	case Dividend:
		return "dividend"
	default:
		return "unknown"
	}
}

// IsTrade reports whether t moves units of an instrument.
func (t TxType) IsTrade() bool { return t == Buy || t == Sell }

// ParseTxType parses a transaction type, case insensitive.
func ParseTxType(s string) (TxType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	case "deposit":
		return Deposit, nil
	case "withdraw":
		return Withdraw, nil
	case "dividend":
		return Dividend, nil
	default:
		return 0, fmt.Errorf("unknown transaction type: %q", s)
	}
}

func (t TxType) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

func (t *TxType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseTxType(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
