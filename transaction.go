package stockbook

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/etnz/stockbook/date"
	"github.com/shopspring/decimal"
)

// UnknownBroker is the broker used for transactions that do not name one.
const UnknownBroker = "Unknown"

// Transaction is a single immutable record of the portfolio's history.
//
// All numeric fields are plain decimals; a field that is not set is zero.
// Transactions are built with the New* constructors and the With* copy
// modifiers, they are never mutated in place: an edit replaces the whole
// record in the Book.
type Transaction struct {
	ID          string          `json:"id"`
	Ticker      string          `json:"ticker"`
	Type        TxType          `json:"type"`
	Date        date.Date       `json:"date"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"` // per unit, or gross dividend per share
	Commission  decimal.Decimal `json:"commission"`
	Tax         decimal.Decimal `json:"tax"`
	CDCCharges  decimal.Decimal `json:"cdcCharges"`
	OtherFees   decimal.Decimal `json:"otherFees"`
	Broker      string          `json:"broker"`
	PortfolioID string          `json:"portfolioId"`
	Notes       string          `json:"notes"`
	Category    string          `json:"category"` // sub-type for OTHER
}

// NewBuy creates a BUY of quantity units of ticker at price per unit.
func NewBuy(day date.Date, ticker string, quantity, price decimal.Decimal) Transaction {
	return Transaction{Type: TxBuy, Date: day, Ticker: ticker, Quantity: quantity, Price: price}
}

// NewSell creates a SELL of quantity units of ticker at price per unit.
func NewSell(day date.Date, ticker string, quantity, price decimal.Decimal) Transaction {
	return Transaction{Type: TxSell, Date: day, Ticker: ticker, Quantity: quantity, Price: price}
}

// NewDividend creates a DIVIDEND paid on quantity shares of ticker with a
// gross amount of perShare each. Withholding tax is set using WithTax.
func NewDividend(day date.Date, ticker string, quantity, perShare decimal.Decimal) Transaction {
	return Transaction{Type: TxDividend, Date: day, Ticker: ticker, Quantity: quantity, Price: perShare}
}

// NewDeposit creates a cash DEPOSIT of amount.
func NewDeposit(day date.Date, amount decimal.Decimal) Transaction {
	return Transaction{Type: TxDeposit, Date: day, Price: amount}
}

// NewWithdrawal creates a cash WITHDRAWAL of amount.
func NewWithdrawal(day date.Date, amount decimal.Decimal) Transaction {
	return Transaction{Type: TxWithdrawal, Date: day, Price: amount}
}

// NewCharge creates a non-trading row (TAX, ANNUAL_FEE, HISTORY or OTHER) of amount.
// ticker is optional.
func NewCharge(day date.Date, typ TxType, ticker string, amount decimal.Decimal) Transaction {
	return Transaction{Type: typ, Date: day, Ticker: ticker, Price: amount}
}

// WithID returns a copy of t with the given id.
func (t Transaction) WithID(id string) Transaction { t.ID = id; return t }

// WithBroker returns a copy of t held at broker.
func (t Transaction) WithBroker(broker string) Transaction { t.Broker = broker; return t }

// WithPortfolio returns a copy of t owned by portfolio id.
func (t Transaction) WithPortfolio(id string) Transaction { t.PortfolioID = id; return t }

// WithNotes returns a copy of t with notes.
func (t Transaction) WithNotes(notes string) Transaction { t.Notes = notes; return t }

// WithCategory returns a copy of t with category.
func (t Transaction) WithCategory(category string) Transaction { t.Category = category; return t }

// WithTax returns a copy of t with tax. For dividends this is the withholding tax.
func (t Transaction) WithTax(tax decimal.Decimal) Transaction { t.Tax = tax; return t }

// WithFees returns a copy of t with all its fees set.
func (t Transaction) WithFees(commission, tax, cdc, other decimal.Decimal) Transaction {
	t.Commission, t.Tax, t.CDCCharges, t.OtherFees = commission, tax, cdc, other
	return t
}

// Fees returns the fees that enter the cost basis: commission, tax and CDC charges.
func (t Transaction) Fees() decimal.Decimal {
	return t.Commission.Add(t.Tax).Add(t.CDCCharges)
}

// Gross returns quantity times price.
func (t Transaction) Gross() decimal.Decimal { return t.Quantity.Mul(t.Price) }

// Amount returns the cash amount of a non-instrument row: quantity*price
// when a quantity is set, price otherwise.
func (t Transaction) Amount() decimal.Decimal {
	if t.Quantity.IsPositive() {
		return t.Gross()
	}
	return t.Price
}

// BrokerOrUnknown returns the broker, or UnknownBroker when there is none.
func (t Transaction) BrokerOrUnknown() string {
	if t.Broker == "" {
		return UnknownBroker
	}
	return t.Broker
}

// Equal reports whether t and o are the same record.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID && t.Ticker == o.Ticker && t.Type == o.Type && t.Date == o.Date &&
		t.Quantity.Equal(o.Quantity) && t.Price.Equal(o.Price) &&
		t.Commission.Equal(o.Commission) && t.Tax.Equal(o.Tax) &&
		t.CDCCharges.Equal(o.CDCCharges) && t.OtherFees.Equal(o.OtherFees) &&
		t.Broker == o.Broker && t.PortfolioID == o.PortfolioID &&
		t.Notes == o.Notes && t.Category == o.Category
}

// Validate checks a transaction at ingestion time.
//
// The ledger replay never calls it: replay is total over any input. It is
// meant for the Book and the command line, to refuse obviously malformed
// records before they are persisted.
func (t Transaction) Validate() error {
	var errs []error
	if !t.Type.IsValid() {
		errs = append(errs, fmt.Errorf("unknown transaction type %q", t.Type))
	}
	if t.Date.IsZero() {
		errs = append(errs, errors.New("transaction date is missing"))
	}
	if t.Type.IsInstrument() && t.Ticker == "" {
		errs = append(errs, fmt.Errorf("%s transaction ticker is missing", t.Type))
	}
	if t.Type.IsTrade() && !t.Quantity.IsPositive() {
		errs = append(errs, fmt.Errorf("%s transaction quantity must be positive, got %s", t.Type, t.Quantity))
	}
	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"quantity", t.Quantity},
		{"price", t.Price},
		{"commission", t.Commission},
		{"tax", t.Tax},
		{"cdcCharges", t.CDCCharges},
		{"otherFees", t.OtherFees},
	} {
		if f.value.IsNegative() {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %s", f.name, f.value))
		}
	}
	return errors.Join(errs...)
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
// Fields are written in a stable order and zero fields are omitted.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("id", t.ID)
	w.Append("date", t.Date)
	w.Append("type", t.Type)
	w.Optional("portfolioId", t.PortfolioID)
	w.Optional("broker", t.Broker)
	w.Optional("ticker", t.Ticker)
	w.OptionalDecimal("quantity", t.Quantity)
	w.OptionalDecimal("price", t.Price)
	w.OptionalDecimal("commission", t.Commission)
	w.OptionalDecimal("tax", t.Tax)
	w.OptionalDecimal("cdcCharges", t.CDCCharges)
	w.OptionalDecimal("otherFees", t.OtherFees)
	w.Optional("category", t.Category)
	w.Optional("notes", t.Notes)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	// plain has the same fields without the methods, to avoid recursion.
	type plain Transaction
	var temp plain
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	if temp.Type == "" {
		return errors.New("transaction type is missing")
	}
	*t = Transaction(temp)
	return nil
}
