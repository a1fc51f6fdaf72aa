package stockbook

import (
	"github.com/etnz/stockbook/date"
	"github.com/shopspring/decimal"
)

// RealizedTrade is the outcome of a single SELL.
type RealizedTrade struct {
	TransactionID string
	Key
	Date      date.Date
	Quantity  decimal.Decimal // actually sold, capped to the held quantity.
	BuyAvg    decimal.Decimal // average cost at the time of sale.
	SellPrice decimal.Decimal
	Fees      decimal.Decimal
	Profit    decimal.Decimal // quantity*(sellPrice-buyAvg) - fees.
}

// Proceeds returns the net cash received.
func (r RealizedTrade) Proceeds() decimal.Decimal {
	return r.Quantity.Mul(r.SellPrice).Sub(r.Fees)
}

// CostBasis returns the cost of the sold quantity.
func (r RealizedTrade) CostBasis() decimal.Decimal { return r.Quantity.Mul(r.BuyAvg) }

// TotalProfit sums the profit of trades.
func TotalProfit(trades []RealizedTrade) decimal.Decimal {
	total := decimal.Zero
	for _, t := range trades {
		total = total.Add(t.Profit)
	}
	return total
}

// RealizedIn returns the trades dated within r.
func RealizedIn(trades []RealizedTrade, r date.Range) []RealizedTrade {
	var in []RealizedTrade
	for _, t := range trades {
		if r.Contains(t.Date) {
			in = append(in, t)
		}
	}
	return in
}
