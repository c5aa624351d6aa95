package folio

import "fmt"

// OversellPolicy defines what happens when a Sell exceeds the open lots.
type OversellPolicy int

const (
	// Tolerant empties the lot queue and discards the unmatched quantity.
	Tolerant OversellPolicy = iota
	// Strict rejects the Sell with ErrOversell.
	Strict
)

func (p OversellPolicy) String() string {
	switch p {
	case Tolerant:
		return "tolerant"
	case Strict:
		return "strict"
	default:
		return "unknown"
	}
}

// ParseOversellPolicy parses a string into an OversellPolicy.
func ParseOversellPolicy(s string) (OversellPolicy, error) {
	switch s {
	case "tolerant", "":
		return Tolerant, nil
	case "strict":
		return Strict, nil
	default:
		return 0, fmt.Errorf("unknown oversell policy: %q", s)
	}
}
