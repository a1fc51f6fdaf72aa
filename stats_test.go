package stockbook

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeStats(t *testing.T) {
	txs := []Transaction{
		NewBuy(day(0), "ABC", D(100), D(10)).WithFees(D(10), D(0), D(0), D(0)),
		NewSell(day(30), "ABC", D(50), D(12)).WithFees(D(5), D(0), D(0), D(0)),
		NewBuy(day(31), "XYZ", D(10), D(50)),
		NewDividend(day(40), "ABC", D(50), D(1)).WithTax(D(7.5)),
	}
	r := Replay(txs, Options{
		CombineBrokers: true,
		Quotes:         map[string]decimal.Decimal{"ABC": D(11), "XYZ": D(45)},
	})
	s := r.Stats()

	assertDecimal(t, "TotalValue", s.TotalValue, 1000)   // 50*11 + 10*45
	assertDecimal(t, "TotalCost", s.TotalCost, 1005)     // 50*10.1 + 10*50
	assertDecimal(t, "UnrealizedPL", s.UnrealizedPL, -5) // 1000-1005
	assertDecimal(t, "RealizedPL", s.RealizedPL, 90)
	assertDecimal(t, "TotalDividends", s.TotalDividends, 42.5)
	assertDecimal(t, "TotalReturn()", s.TotalReturn(), 127.5)
	assertClose(t, "UnrealizedPLPercent", s.UnrealizedPLPercent, -0.4975124378, 1e-9)
}

func TestComputeStats_NoPositiveCost(t *testing.T) {
	testCases := []struct {
		name     string
		holdings []Holding
	}{
		{"no holdings", nil},
		{"free shares", []Holding{{Key: Key{Ticker: "FREE"}, Quantity: D(10), AvgPrice: D(0), CurrentPrice: D(5)}}},
		{"negative cost", []Holding{{Key: Key{Ticker: "BAD"}, Quantity: D(10), AvgPrice: D(-5), CurrentPrice: D(10)}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := ComputeStats(tc.holdings, nil, decimal.Zero)
			if !s.UnrealizedPLPercent.IsZero() {
				t.Errorf("UnrealizedPLPercent = %s, want 0", s.UnrealizedPLPercent)
			}
		})
	}
}

func TestHolding_Values(t *testing.T) {
	h := Holding{Quantity: D(4), AvgPrice: D(25), CurrentPrice: D(30)}
	assertDecimal(t, "MarketValue()", h.MarketValue(), 120)
	assertDecimal(t, "Cost()", h.Cost(), 100)
	assertDecimal(t, "UnrealizedPL()", h.UnrealizedPL(), 20)
	assertDecimal(t, "UnrealizedPLPercent()", h.UnrealizedPLPercent(), 20)

	h.AvgPrice = D(-5)
	assertDecimal(t, "UnrealizedPL() with a negative cost", h.UnrealizedPL(), 140)
	assertDecimal(t, "UnrealizedPLPercent() with a negative cost", h.UnrealizedPLPercent(), 0)
}
