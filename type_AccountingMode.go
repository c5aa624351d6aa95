package folio

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// AccountingMode selects how an instrument's transactions become a position.
type AccountingMode int

const (
	// StandardLots replays trades through a FIFO LotTracker.
	StandardLots AccountingMode = iota
	// NetCashflow treats buys and sells as contributions and withdrawals of value.
	NetCashflow
)

func (m AccountingMode) String() string {
	switch m {
	case StandardLots:
		return "lots"
	case NetCashflow:
		return "net-cashflow"
	default:
		return "unknown"
	}
}

func (m AccountingMode) MarshalJSON() ([]byte, error) { return json.Marshal(m.String()) }

// InstrumentSet is the static allow-list of instruments valued with NetCashflow.
type InstrumentSet map[string]struct{}

// NewInstrumentSet returns the set of the given instruments.
func NewInstrumentSet(instruments ...string) InstrumentSet {
	s := make(InstrumentSet, len(instruments))
	for _, i := range instruments {
		if i = strings.TrimSpace(i); i != "" {
			s[i] = struct{}{}
		}
	}
	return s
}

// ParseInstrumentSet parses a comma separated list of instruments.
func ParseInstrumentSet(list string) InstrumentSet {
	return NewInstrumentSet(strings.Split(list, ",")...)
}

// Contains reports whether instrument is in the set. A nil set is empty.
func (s InstrumentSet) Contains(instrument string) bool {
	_, ok := s[instrument]
	return ok
}

// Mode resolves the AccountingMode of instrument.
func (s InstrumentSet) Mode(instrument string) AccountingMode {
	if s.Contains(instrument) {
		return NetCashflow
	}
	return StandardLots
}

// Sorted returns the instruments in lexical order.
func (s InstrumentSet) Sorted() []string {
	res := make([]string, 0, len(s))
	for i := range s {
		res = append(res, i)
	}
	slices.Sort(res)
	return res
}

func (s InstrumentSet) String() string { return fmt.Sprint(s.Sorted()) }
