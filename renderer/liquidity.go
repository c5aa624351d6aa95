package renderer

import "github.com/etnz/folio"

// Liquidity is the view of a folio.CashReport.
type Liquidity struct {
	Title            string
	Deposits         string
	Withdrawals      string
	Purchases        string
	Sales            string
	Dividends        string
	Commissions      string
	NetContributions string
	Balance          string
}

// NewLiquidity formats c.
func NewLiquidity(title string, c folio.CashReport) *Liquidity {
	return &Liquidity{
		Title:            title,
		Deposits:         c.Deposits.String(),
		Withdrawals:      c.Withdrawals.String(),
		Purchases:        c.Purchases.String(),
		Sales:            c.Sales.String(),
		Dividends:        c.Dividends.String(),
		Commissions:      c.Commissions.String(),
		NetContributions: c.NetContributions().String(),
		Balance:          c.Balance.String(),
	}
}

// RenderLiquidity renders the cash report.
func RenderLiquidity(l *Liquidity) string {
	return renderTemplate("liquidity", "liquidity.md", map[string]string{"title": "title.md"}, l)
}
