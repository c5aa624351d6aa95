package folio

import "github.com/shopspring/decimal"

// CashReport breaks down the cash balance of a ledger.
type CashReport struct {
	Deposits    Money `json:"deposits"`
	Withdrawals Money `json:"withdrawals"`
	Purchases   Money `json:"purchases"` // gross amount bought
	Sales       Money `json:"sales"`     // gross amount sold
	Dividends   Money `json:"dividends"`
	Commissions Money `json:"commissions"`
	Balance     Money `json:"balance"` // liquidity available
}

// NetContributions returns what was put in the account, ignoring trades:
// deposits and dividends minus withdrawals.
func (c CashReport) NetContributions() Money {
	return c.Deposits.Add(c.Dividends).Sub(c.Withdrawals)
}

// Liquidity sums the cash flows of txs. Amounts are summed without currency
// conversion and labelled with currency.
func Liquidity(txs []Transaction, currency string) CashReport {
	var dep, wd, buy, sell, div, com, bal decimal.Decimal
	for _, tx := range txs {
		gross := tx.Gross().Amount()
		switch tx.Type {
		case Deposit:
			dep = dep.Add(gross)
		case Withdraw:
			wd = wd.Add(gross)
		case Buy:
			buy = buy.Add(gross)
		case Sell:
			sell = sell.Add(gross)
		case Dividend:
			div = div.Add(gross)
		}
		com = com.Add(tx.Commission.Amount())
		bal = bal.Add(tx.Cashflow().Amount())
	}
	return CashReport{
		Deposits:    M(dep, currency),
		Withdrawals: M(wd, currency),
		Purchases:   M(buy, currency),
		Sales:       M(sell, currency),
		Dividends:   M(div, currency),
		Commissions: M(com, currency),
		Balance:     M(bal, currency),
	}
}
