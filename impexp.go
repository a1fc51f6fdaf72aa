package stockbook

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/stockbook/date"
	"github.com/shopspring/decimal"
)

// this file contains the CSV import/export of transactions.
// Broker exports differ in column names and order, so columns are mapped
// from the header line.

// csvColumns maps normalized header names to transaction fields.
var csvColumns = map[string]string{
	"id":          "id",
	"date":        "date",
	"tradedate":   "date",
	"type":        "type",
	"action":      "type",
	"ticker":      "ticker",
	"symbol":      "ticker",
	"quantity":    "quantity",
	"qty":         "quantity",
	"shares":      "quantity",
	"price":       "price",
	"amount":      "amount",
	"total":       "amount",
	"commission":  "commission",
	"brokerage":   "commission",
	"tax":         "tax",
	"cdc":         "cdcCharges",
	"cdccharges":  "cdcCharges",
	"otherfees":   "otherFees",
	"other":       "otherFees",
	"broker":      "broker",
	"portfolio":   "portfolioId",
	"portfolioid": "portfolioId",
	"notes":       "notes",
	"note":        "notes",
	"category":    "category",
}

// normalizeHeader lowercases s and drops spaces, dashes and underscores.
func normalizeHeader(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}

// ImportCSV reads transactions from CSV data with a header line.
//
// Recognized columns are matched case-insensitively (e.g. "Symbol" or
// "ticker", "Qty" or "quantity"); unknown columns are ignored. Every row is
// validated, and all the errors are reported together with their line
// number. portfolioID is used for rows that have no portfolio column.
func ImportCSV(r io.Reader, portfolioID string) ([]Transaction, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV header: %w", err)
	}
	fields := make([]string, len(header))
	for i, h := range header {
		fields[i] = csvColumns[normalizeHeader(h)]
	}
	if !containsAll(fields, "date", "type") {
		return nil, fmt.Errorf("CSV header %q must have at least a date and a type column", header)
	}

	var txs []Transaction
	var errs []error
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)
		tx := Transaction{PortfolioID: portfolioID}
		if err := tx.setFields(fields, record); err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		if err := tx.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		txs = append(txs, tx)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return txs, nil
}

// setFields sets t's fields from a CSV record.
//
// An amount column is the total of the row: it is only used when the row has
// no price, and divided by the quantity when there is one.
func (t *Transaction) setFields(fields, record []string) error {
	var errs []error
	var amount string
	hasPrice := false
	for i, value := range record {
		if i >= len(fields) || fields[i] == "" {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		switch fields[i] {
		case "amount":
			amount = value
			continue
		case "price":
			hasPrice = true
		}
		if err := t.setField(fields[i], value); err != nil {
			errs = append(errs, err)
		}
	}
	if !hasPrice && amount != "" {
		total, err := parseCSVDecimal(amount)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("invalid amount %q: %w", amount, err))
		case t.Quantity.IsPositive():
			t.Price = total.Div(t.Quantity)
		default:
			t.Price = total
		}
	}
	return errors.Join(errs...)
}

func (t *Transaction) setField(field, value string) error {
	var err error
	switch field {
	case "id":
		t.ID = value
	case "date":
		t.Date, err = date.ParseStrict(value)
	case "type":
		t.Type, err = ParseTxType(value)
	case "ticker":
		t.Ticker = strings.ToUpper(value)
	case "broker":
		t.Broker = value
	case "portfolioId":
		t.PortfolioID = value
	case "notes":
		t.Notes = value
	case "category":
		t.Category = value
	case "quantity":
		t.Quantity, err = parseCSVDecimal(value)
	case "price":
		t.Price, err = parseCSVDecimal(value)
	case "commission":
		t.Commission, err = parseCSVDecimal(value)
	case "tax":
		t.Tax, err = parseCSVDecimal(value)
	case "cdcCharges":
		t.CDCCharges, err = parseCSVDecimal(value)
	case "otherFees":
		t.OtherFees, err = parseCSVDecimal(value)
	}
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return nil
}

// parseCSVDecimal parses a number, ignoring thousands separators.
func parseCSVDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
}

func containsAll(fields []string, want ...string) bool {
	for _, w := range want {
		found := false
		for _, f := range fields {
			found = found || f == w
		}
		if !found {
			return false
		}
	}
	return true
}

// csvHeader is the header written by ExportCSV.
var csvHeader = []string{"id", "date", "type", "portfolioId", "broker", "ticker", "quantity", "price", "commission", "tax", "cdcCharges", "otherFees", "category", "notes"}

// ExportCSV writes txs as CSV, in replay order, with a header line that
// ImportCSV reads back.
func ExportCSV(w io.Writer, txs []Transaction) error {
	sorted := make([]Transaction, len(txs))
	copy(sorted, txs)
	SortTransactions(sorted)

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	dec := func(d decimal.Decimal) string {
		if d.IsZero() {
			return ""
		}
		return d.String()
	}
	for _, tx := range sorted {
		record := []string{tx.ID, tx.Date.String(), tx.Type.String(), tx.PortfolioID, tx.Broker, tx.Ticker,
			dec(tx.Quantity), dec(tx.Price), dec(tx.Commission), dec(tx.Tax), dec(tx.CDCCharges), dec(tx.OtherFees),
			tx.Category, tx.Notes}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
