package stockbook

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TxType identifies the kind of a transaction.
type TxType string

// Transaction types. The set is closed: ParseTxType rejects anything else.
const (
	TxBuy        TxType = "BUY"
	TxSell       TxType = "SELL"
	TxDividend   TxType = "DIVIDEND"
	TxTax        TxType = "TAX"
	TxHistory    TxType = "HISTORY"
	TxDeposit    TxType = "DEPOSIT"
	TxWithdrawal TxType = "WITHDRAWAL"
	TxAnnualFee  TxType = "ANNUAL_FEE"
	TxOther      TxType = "OTHER"
)

// TxTypes lists all transaction types in their canonical order.
var TxTypes = []TxType{TxBuy, TxSell, TxDividend, TxTax, TxHistory, TxDeposit, TxWithdrawal, TxAnnualFee, TxOther}

func (t TxType) String() string { return string(t) }

// ParseTxType parses a transaction type. It is case insensitive and accepts
// '-' or ' ' in place of '_' ("annual-fee").
func ParseTxType(s string) (TxType, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	t := TxType(norm)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown transaction type: %q", s)
	}
	return t, nil
}

// IsValid reports whether t is one of the known transaction types.
func (t TxType) IsValid() bool {
	switch t {
	case TxBuy, TxSell, TxDividend, TxTax, TxHistory, TxDeposit, TxWithdrawal, TxAnnualFee, TxOther:
		return true
	}
	return false
}

// IsTrade reports whether t moves instrument quantity (BUY or SELL).
func (t TxType) IsTrade() bool { return t == TxBuy || t == TxSell }

// IsInstrument reports whether t relates to an instrument, and hence requires
// a ticker.
func (t TxType) IsInstrument() bool { return t.IsTrade() || t == TxDividend }

// priority orders same-day transactions: buys are reflected in the cost
// basis before dividends and sells of the same day.
func (t TxType) priority() int {
	switch t {
	case TxBuy:
		return 0
	case TxDividend:
		return 1
	case TxSell:
		return 2
	default:
		return 3
	}
}

// MarshalJSON implements the json.Marshaler interface for TxType.
func (t TxType) MarshalJSON() ([]byte, error) { return json.Marshal(string(t)) }

// UnmarshalJSON implements the json.Unmarshaler interface for TxType.
func (t *TxType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseTxType(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
