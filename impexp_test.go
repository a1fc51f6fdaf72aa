package stockbook

import (
	"strings"
	"testing"
)

func TestImportCSV(t *testing.T) {
	csvData := `Trade Date,Action,Symbol,Qty,Price,Commission,CDC,Broker,Comment
2025-01-10,buy,abc,100,10,10,0.5,alpha,ignored
2025-02-10,Sell,ABC,50,12,5,,alpha,
2025-03-01,dividend,ABC,50,"1,000.5",,,alpha,
2025-03-02,annual fee,,,25,,,,
`
	txs, err := ImportCSV(strings.NewReader(csvData), "main")
	if err != nil {
		t.Fatalf("ImportCSV() error = %v", err)
	}
	if len(txs) != 4 {
		t.Fatalf("ImportCSV() returned %d transactions, want 4", len(txs))
	}

	buy := txs[0]
	if buy.Type != TxBuy || buy.Ticker != "ABC" || buy.Broker != "alpha" || buy.PortfolioID != "main" {
		t.Errorf("ImportCSV() first row = %+v", buy)
	}
	assertDecimal(t, "buy.Commission", buy.Commission, 10)
	assertDecimal(t, "buy.CDCCharges", buy.CDCCharges, 0.5)
	assertDecimal(t, "dividend.Price", txs[2].Price, 1000.5)
	if txs[3].Type != TxAnnualFee {
		t.Errorf("ImportCSV() last row type = %s, want %s", txs[3].Type, TxAnnualFee)
	}
}

func TestImportCSV_Amount(t *testing.T) {
	csvData := `Date,Type,Symbol,Qty,Price,Amount
2024-01-02,BUY,ABC,10,100,1000
2024-01-03,SELL,ABC,4,,480
2024-01-04,DEPOSIT,,,,2500
2024-01-05,DIVIDEND,ABC,6,,"1,200"
`
	txs, err := ImportCSV(strings.NewReader(csvData), "")
	if err != nil {
		t.Fatalf("ImportCSV() error = %v", err)
	}
	if len(txs) != 4 {
		t.Fatalf("ImportCSV() returned %d transactions, want 4", len(txs))
	}
	assertDecimal(t, "buy.Price", txs[0].Price, 100)
	assertDecimal(t, "sell.Price", txs[1].Price, 120)
	assertDecimal(t, "deposit.Amount()", txs[2].Amount(), 2500)
	assertDecimal(t, "dividend.Price", txs[3].Price, 200)
}

func TestImportCSV_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		csv     string
		wantErr []string
	}{
		{
			name:    "missing type column",
			csv:     "date,ticker\n2025-01-01,ABC\n",
			wantErr: []string{"must have at least a date and a type column"},
		},
		{
			name:    "bad rows are all reported",
			csv:     "date,type,ticker,quantity,price\n2025-01-01,buy,ABC,ten,1\n2025-01-02,split,ABC,1,1\n2025-01-03,sell,,1,1\n",
			wantErr: []string{"line 2", "invalid quantity", "line 3", "unknown transaction type", "line 4", "ticker is missing"},
		},
		{
			name:    "dates must be ISO",
			csv:     "date,type,ticker,quantity,price\n20240115,buy,ABC,1,1\n-1d,buy,ABC,1,1\n01-15,buy,ABC,1,1\n",
			wantErr: []string{"line 2", `invalid date "20240115"`, "line 3", `invalid date "-1d"`, "line 4", `invalid date "01-15"`},
		},
		{
			name:    "bad amount",
			csv:     "date,type,ticker,quantity,amount\n2024-01-02,buy,ABC,1,lots\n",
			wantErr: []string{"line 2", `invalid amount "lots"`},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ImportCSV(strings.NewReader(tc.csv), "")
			if err == nil {
				t.Fatalf("ImportCSV() error = nil, want an error")
			}
			for _, want := range tc.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("ImportCSV() error = %v, want it to contain %q", err, want)
				}
			}
		})
	}
}

func TestExportImportCSV(t *testing.T) {
	txs := []Transaction{
		NewBuy(day(0), "ABC", D(100), D(10)).WithID("1").WithBroker("alpha").WithFees(D(10), D(0), D(0.5), D(0)),
		NewDividend(day(5), "ABC", D(100), D(0.2)).WithID("2").WithTax(D(3)).WithNotes("Q1, interim"),
		NewCharge(day(9), TxOther, "", D(4)).WithID("3").WithCategory("transfer"),
	}
	var sb strings.Builder
	if err := ExportCSV(&sb, txs); err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}
	got, err := ImportCSV(strings.NewReader(sb.String()), "")
	if err != nil {
		t.Fatalf("ImportCSV(ExportCSV()) error = %v\n%s", err, sb.String())
	}
	if len(got) != len(txs) {
		t.Fatalf("ImportCSV(ExportCSV()) returned %d transactions, want %d", len(got), len(txs))
	}
	for i := range txs {
		if !got[i].Equal(txs[i]) {
			t.Errorf("transaction %d = %+v, want %+v", i, got[i], txs[i])
		}
	}
}
