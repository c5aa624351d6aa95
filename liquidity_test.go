package folio

import "testing"

func TestLiquidity(t *testing.T) {
	buy := tx(day(2), Buy, "ACME", 10, 100)
	buy.Commission = EUR(5)
	sell := tx(day(3), Sell, "ACME", 4, 150)
	sell.Commission = EUR(2)
	txs := []Transaction{
		tx(day(1), Deposit, "", 1, 5000),
		buy,
		sell,
		tx(day(4), Dividend, "ACME", 6, 0.5),
		tx(day(5), Withdraw, "", 1, 300),
	}

	got := Liquidity(txs, "EUR")
	assertMoney(t, "Deposits", got.Deposits, EUR(5000))
	assertMoney(t, "Withdrawals", got.Withdrawals, EUR(300))
	assertMoney(t, "Purchases", got.Purchases, EUR(1000))
	assertMoney(t, "Sales", got.Sales, EUR(600))
	assertMoney(t, "Dividends", got.Dividends, EUR(3))
	assertMoney(t, "Commissions", got.Commissions, EUR(7))
	// 5000 - 1005 + 598 + 3 - 300
	assertMoney(t, "Balance", got.Balance, EUR(4296))
	assertMoney(t, "NetContributions", got.NetContributions(), EUR(4703))
	if got.Balance.Currency() != "EUR" {
		t.Errorf("Balance currency = %q, want EUR", got.Balance.Currency())
	}
}

func TestTransaction_Cashflow(t *testing.T) {
	tests := []struct {
		tx   Transaction
		want Money
	}{
		{tx(day(1), Buy, "A", 2, 10), EUR(-20)},
		{tx(day(1), Sell, "A", 2, 10), EUR(20)},
		{tx(day(1), Deposit, "", 1, 10), EUR(10)},
		{tx(day(1), Withdraw, "", 1, 10), EUR(-10)},
		{tx(day(1), Dividend, "A", 1, 10), EUR(10)},
	}
	for _, tt := range tests {
		assertMoney(t, tt.tx.Type.String(), tt.tx.Cashflow(), tt.want)
	}
}
