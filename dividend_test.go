package stockbook

import (
	"testing"
)

func TestReplay_DividendScenario(t *testing.T) {
	txs := []Transaction{
		NewDividend(day(0), "ABC", D(100), D(2)).WithTax(D(30)),
	}
	r := Replay(txs, Options{})
	assertDecimal(t, "NetDividends", r.NetDividends, 170)
	if len(r.Dividends) != 1 {
		t.Fatalf("len(Dividends) = %d, want 1", len(r.Dividends))
	}
	d := r.Dividends[0]
	assertDecimal(t, "Gross", d.Gross, 200)
	assertDecimal(t, "Tax", d.Tax, 30)
	assertDecimal(t, "Net", d.Net, 170)
	if d.Payments != 1 {
		t.Errorf("Payments = %d, want 1", d.Payments)
	}
}

func TestReplay_DividendOrderInvariance(t *testing.T) {
	a := NewDividend(day(0), "ABC", D(100), D(0.5)).WithTax(D(7.5))
	b := NewDividend(day(30), "XYZ", D(12), D(1.25))
	c := NewDividend(day(60), "ABC", D(80), D(0.55)).WithTax(D(6.6))

	testCases := []struct {
		name string
		txs  []Transaction
	}{
		{"abc", []Transaction{a, b, c}},
		{"cba", []Transaction{c, b, a}},
		{"bac", []Transaction{b, a, c}},
		{"cab", []Transaction{c, a, b}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := Replay(tc.txs, Options{})
			// 50-7.5 + 15 + 44-6.6
			assertDecimal(t, "NetDividends", r.NetDividends, 94.9)
			if len(r.Dividends) != 2 || r.Dividends[0].Ticker != "ABC" || r.Dividends[1].Ticker != "XYZ" {
				t.Fatalf("Dividends = %v, want ABC then XYZ", r.Dividends)
			}
			assertDecimal(t, "ABC Net", r.Dividends[0].Net, 79.9)
			assertDecimal(t, "XYZ Net", r.Dividends[1].Net, 15)
		})
	}
}

func TestReplay_DividendsDoNotChangeCostBasis(t *testing.T) {
	txs := []Transaction{
		NewBuy(day(0), "ABC", D(10), D(10)),
		NewDividend(day(1), "ABC", D(10), D(3)),
	}
	r := Replay(txs, Options{CombineBrokers: true})
	h, _ := r.Holding(Key{Ticker: "ABC"})
	assertDecimal(t, "AvgPrice", h.AvgPrice, 10)
	assertDecimal(t, "Quantity", h.Quantity, 10)
}
