package stockbook

import (
	"bytes"
	"strings"
	"testing"

	"github.com/etnz/stockbook/date"
)

func TestDecodeTransactions(t *testing.T) {
	jsonlStream := `
{"id":"1","date":"2025-08-01","type":"BUY","ticker":"AAPL","quantity":10,"price":195.5,"commission":1}
{"id":"2","date":"2025-08-02","type":"DEPOSIT","price":5000}

{"id":"3","date":"2025-08-02","type":"SELL","ticker":"AAPL","quantity":5,"price":200}
{"id":"4","date":"2025-08-03","type":"DIVIDEND","ticker":"AAPL","quantity":5,"price":0.25,"tax":0.19}
{"id":"5","date":"2025-08-04","type":"annual_fee","price":12}
`
	txs, err := DecodeTransactions(strings.NewReader(jsonlStream))
	if err != nil {
		t.Fatalf("DecodeTransactions() returned an unexpected error: %v", err)
	}

	wantTypes := []TxType{TxBuy, TxDeposit, TxSell, TxDividend, TxAnnualFee}
	if len(txs) != len(wantTypes) {
		t.Fatalf("DecodeTransactions() decoded %d transactions, want %d", len(txs), len(wantTypes))
	}
	for i, tx := range txs {
		if tx.Type != wantTypes[i] {
			t.Errorf("transaction %d type = %s, want %s", i+1, tx.Type, wantTypes[i])
		}
	}
	assertDecimal(t, "txs[3].Tax", txs[3].Tax, 0.19)
}

func TestDecodeTransactions_Error(t *testing.T) {
	jsonlStream := `{"id":"1","date":"2025-08-01","type":"BUY","ticker":"AAPL","quantity":10,"price":195.5}
{"id":"2","date":"2025-08-02","type":"TRANSFER"}
`
	_, err := DecodeTransactions(strings.NewReader(jsonlStream))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("DecodeTransactions() error = %v, want an error on line 2", err)
	}
}

func TestEncodeTransactions(t *testing.T) {
	// Deliberately unsorted. The sell and the buy of August 1st are
	// reordered by type, the deposit stays after them.
	txs := []Transaction{
		NewBuy(date.New(2025, 8, 3), "AAPL", D(1), D(10)).WithID("a"),
		NewSell(date.New(2025, 8, 1), "GOOG", D(1), D(10)).WithID("b"),
		NewDeposit(date.New(2025, 8, 1), D(1000)).WithID("c"),
		NewBuy(date.New(2025, 8, 1), "GOOG", D(1), D(9)).WithID("d"),
	}

	var buf bytes.Buffer
	if err := EncodeTransactions(&buf, txs); err != nil {
		t.Fatalf("EncodeTransactions() error = %v", err)
	}

	want := `{"id":"d","date":"2025-08-01","type":"BUY","ticker":"GOOG","quantity":1,"price":9}
{"id":"b","date":"2025-08-01","type":"SELL","ticker":"GOOG","quantity":1,"price":10}
{"id":"c","date":"2025-08-01","type":"DEPOSIT","price":1000}
{"id":"a","date":"2025-08-03","type":"BUY","ticker":"AAPL","quantity":1,"price":10}
`
	if got := buf.String(); got != want {
		t.Errorf("EncodeTransactions() =\n%s\nwant\n%s", got, want)
	}
	if txs[0].ID != "a" {
		t.Errorf("EncodeTransactions() modified its input")
	}

	// Decoding the output gives back the same transactions, in file order.
	decoded, err := DecodeTransactions(&buf)
	if err != nil {
		t.Fatalf("DecodeTransactions() error = %v", err)
	}
	if len(decoded) != len(txs) || !decoded[0].Equal(txs[3]) || !decoded[3].Equal(txs[0]) {
		t.Errorf("DecodeTransactions(EncodeTransactions()) = %v", decoded)
	}
}
