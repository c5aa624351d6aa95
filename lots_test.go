package folio

import (
	"errors"
	"testing"
)

func TestLotTracker_FIFO(t *testing.T) {
	tr := NewLotTracker("ACME", Tolerant)
	tr.Buy(Q(10), EUR(100))
	tr.Buy(Q(10), EUR(200))
	if err := tr.Sell(Q(15)); err != nil {
		t.Fatalf("Sell() error = %v", err)
	}

	lots := tr.Lots()
	if len(lots) != 1 {
		t.Fatalf("len(Lots()) = %d, want 1", len(lots))
	}
	if got, want := lots[0].Quantity, Q(5); !got.Equal(want) {
		t.Errorf("lot quantity = %v, want %v", got, want)
	}
	assertMoney(t, "lot price", lots[0].UnitPrice, EUR(200))
	if got, want := tr.Quantity(), Q(5); !got.Equal(want) {
		t.Errorf("Quantity() = %v, want %v", got, want)
	}
	assertMoney(t, "AverageCost()", tr.AverageCost(), EUR(200))
	assertMoney(t, "CostBasis()", tr.CostBasis(), EUR(1000))
}

func TestLotTracker_NeverMerges(t *testing.T) {
	tr := NewLotTracker("ACME", Tolerant)
	tr.Buy(Q(1), EUR(10))
	tr.Buy(Q(1), EUR(10))
	if got := len(tr.Lots()); got != 2 {
		t.Errorf("len(Lots()) = %d, want 2", got)
	}
}

func TestLotTracker_FullLiquidation(t *testing.T) {
	tr := NewLotTracker("ACME", Tolerant)
	tr.Buy(Q(3), EUR(10))
	tr.Buy(Q(7), EUR(20))
	if err := tr.Sell(Q(10)); err != nil {
		t.Fatalf("Sell() error = %v", err)
	}
	if got := len(tr.Lots()); got != 0 {
		t.Errorf("len(Lots()) = %d, want 0", got)
	}
	if !tr.Quantity().IsZero() {
		t.Errorf("Quantity() = %v, want 0", tr.Quantity())
	}
	if !tr.AverageCost().IsZero() {
		t.Errorf("AverageCost() = %v, want 0", tr.AverageCost())
	}
}

func TestLotTracker_ExactLotBoundary(t *testing.T) {
	tr := NewLotTracker("ACME", Tolerant)
	tr.Buy(Q(10), EUR(100))
	tr.Buy(Q(10), EUR(200))
	tr.Sell(Q(10))
	lots := tr.Lots()
	if len(lots) != 1 || !lots[0].Quantity.Equal(Q(10)) {
		t.Fatalf("Lots() = %v, want one lot of 10", lots)
	}
	assertMoney(t, "remaining price", lots[0].UnitPrice, EUR(200))
}

func TestLotTracker_Oversell(t *testing.T) {
	tests := []struct {
		policy  OversellPolicy
		wantErr bool
		wantQty Quantity
	}{
		{policy: Tolerant, wantErr: false, wantQty: Q(0)},
		{policy: Strict, wantErr: true, wantQty: Q(5)},
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			tr := NewLotTracker("ACME", tt.policy)
			tr.Buy(Q(5), EUR(10))
			err := tr.Sell(Q(8))
			if got := errors.Is(err, ErrOversell); got != tt.wantErr {
				t.Errorf("Sell() error = %v, want ErrOversell: %v", err, tt.wantErr)
			}
			if got := tr.Quantity(); !got.Equal(tt.wantQty) {
				t.Errorf("Quantity() = %v, want %v", got, tt.wantQty)
			}
		})
	}
}

func TestLotTracker_ApplyIgnoresCash(t *testing.T) {
	tr := NewLotTracker("ACME", Strict)
	for _, x := range []Transaction{
		tx(day(1), Buy, "ACME", 2, 50),
		tx(day(2), Dividend, "ACME", 1, 3),
		tx(day(3), Deposit, "ACME", 1, 1000),
	} {
		if err := tr.Apply(x); err != nil {
			t.Fatalf("Apply(%v) error = %v", x.Type, err)
		}
	}
	if got, want := tr.Quantity(), Q(2); !got.Equal(want) {
		t.Errorf("Quantity() = %v, want %v", got, want)
	}
}

func TestParseOversellPolicy(t *testing.T) {
	for _, p := range []OversellPolicy{Tolerant, Strict} {
		got, err := ParseOversellPolicy(p.String())
		if err != nil || got != p {
			t.Errorf("ParseOversellPolicy(%q) = %v, %v", p.String(), got, err)
		}
	}
	if _, err := ParseOversellPolicy("lenient"); err == nil {
		t.Error("ParseOversellPolicy(\"lenient\") want error")
	}
}
