package stockbook

import "github.com/shopspring/decimal"

// Activity sums the rows that do not affect holdings.
//
// Amounts are read with Transaction.Amount. Taxes counts TAX rows only;
// withholding tax on dividends is accounted in the dividend income.
type Activity struct {
	Deposits    decimal.Decimal
	Withdrawals decimal.Decimal
	AnnualFees  decimal.Decimal
	Taxes       decimal.Decimal
	History     decimal.Decimal
	Other       decimal.Decimal
	Count       int
}

func (a *Activity) add(tx Transaction) {
	amount := tx.Amount()
	switch tx.Type {
	case TxDeposit:
		a.Deposits = a.Deposits.Add(amount)
	case TxWithdrawal:
		a.Withdrawals = a.Withdrawals.Add(amount)
	case TxAnnualFee:
		a.AnnualFees = a.AnnualFees.Add(amount)
	case TxTax:
		a.Taxes = a.Taxes.Add(amount)
	case TxHistory:
		a.History = a.History.Add(amount)
	default:
		a.Other = a.Other.Add(amount)
	}
	a.Count++
}

// NetDeposits returns deposits minus withdrawals.
func (a Activity) NetDeposits() decimal.Decimal { return a.Deposits.Sub(a.Withdrawals) }

// Charges returns annual fees, taxes and other charges together.
func (a Activity) Charges() decimal.Decimal { return a.AnnualFees.Add(a.Taxes).Add(a.Other) }
