package stockbook

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/etnz/stockbook/date"
)

func TestTransaction_Amount(t *testing.T) {
	testCases := []struct {
		name string
		tx   Transaction
		want float64
	}{
		{"deposit", NewDeposit(day(0), D(1000)), 1000},
		{"charge", NewCharge(day(0), TxAnnualFee, "", D(25)), 25},
		{"quantity times price", Transaction{Type: TxOther, Quantity: D(3), Price: D(2.5)}, 7.5},
		{"buy", NewBuy(day(0), "ABC", D(10), D(3)), 30},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assertDecimal(t, "Amount()", tc.tx.Amount(), tc.want)
		})
	}
}

func TestTransaction_Fees(t *testing.T) {
	tx := NewBuy(day(0), "ABC", D(1), D(1)).WithFees(D(1), D(2), D(3), D(4))
	// other fees stay out of the cost basis.
	assertDecimal(t, "Fees()", tx.Fees(), 6)
}

func TestTransaction_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		tx      Transaction
		wantErr string
	}{
		{"valid buy", NewBuy(day(0), "ABC", D(1), D(10)), ""},
		{"valid deposit", NewDeposit(day(0), D(10)), ""},
		{"unknown type", Transaction{Type: "SPLIT", Date: day(0)}, "unknown transaction type"},
		{"missing date", Transaction{Type: TxDeposit, Price: D(1)}, "date is missing"},
		{"missing ticker", NewBuy(day(0), "", D(1), D(10)), "ticker is missing"},
		{"zero quantity", NewSell(day(0), "ABC", D(0), D(10)), "quantity must be positive"},
		{"negative fee", NewBuy(day(0), "ABC", D(1), D(10)).WithFees(D(-1), D(0), D(0), D(0)), "commission must not be negative"},
		{"dividend without ticker", NewDividend(day(0), "", D(1), D(1)), "ticker is missing"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.tx.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestTransaction_JSON(t *testing.T) {
	tx := NewSell(date.New(2025, 3, 14), "ABC", D(50), D(12)).
		WithID("t1").
		WithBroker("alpha").
		WithPortfolio("main").
		WithFees(D(5), D(0.5), D(0), D(0)).
		WithNotes("trim")

	data, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"id":"t1","date":"2025-03-14","type":"SELL","portfolioId":"main","broker":"alpha","ticker":"ABC","quantity":50,"price":12,"commission":5,"tax":0.5,"notes":"trim"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var got Transaction
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !got.Equal(tx) {
		t.Errorf("Unmarshal() = %+v, want %+v", got, tx)
	}
}

func TestTransaction_UnmarshalJSONErrors(t *testing.T) {
	testCases := []string{
		`{"date":"2025-01-01","ticker":"ABC"}`,
		`{"date":"2025-01-01","type":"SPLIT"}`,
		`{"date":"-1d","type":"BUY"}`,
		`{"date":"2025-01-01","type":"BUY","quantity":"ten"}`,
	}
	for _, in := range testCases {
		var tx Transaction
		if err := json.Unmarshal([]byte(in), &tx); err == nil {
			t.Errorf("Unmarshal(%s) error = nil, want an error", in)
		}
	}
}
