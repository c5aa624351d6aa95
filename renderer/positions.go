package renderer

import (
	"github.com/etnz/folio"
)

// PositionRow is one line of the positions table.
type PositionRow struct {
	Instrument  string
	Mode        string
	Quantity    string
	AverageCost string
	Price       string
	Priced      bool
	Value       string
	PnL         string
	PnLPercent  string
}

// Positions is the view of a folio.Portfolio.
type Positions struct {
	Title      string
	Rows       []PositionRow
	Value      string
	Cost       string
	PnL        string
	PnLPercent string
	Unpriced   bool // at least one row has no quote
}

// NewPositions formats pf.
func NewPositions(title string, pf folio.Portfolio) *Positions {
	p := &Positions{
		Title:      title,
		Value:      pf.Totals.Value.String(),
		Cost:       pf.Totals.Cost.String(),
		PnL:        pf.Totals.PnL.SignedString(),
		PnLPercent: pf.Totals.PnLPercent.SignedString(),
	}
	for _, pos := range pf.Positions {
		p.Rows = append(p.Rows, PositionRow{
			Instrument:  pos.Instrument,
			Mode:        pos.Mode.String(),
			Quantity:    pos.Quantity.String(),
			AverageCost: pos.AverageCost.String(),
			Price:       pos.Price.String(),
			Priced:      pos.Priced,
			Value:       pos.TotalValue.String(),
			PnL:         pos.PnL.SignedString(),
			PnLPercent:  pos.PnLPercent.SignedString(),
		})
		p.Unpriced = p.Unpriced || !pos.Priced
	}
	return p
}

// RenderPositions renders the positions report.
func RenderPositions(p *Positions) string {
	partials := map[string]string{
		"title":           "title.md",
		"positions_table": "positions_table.md",
	}
	return renderTemplate("positions", "positions.md", partials, p)
}
