package stockbook

import (
	"github.com/shopspring/decimal"
)

// PriceSource tells where the current price of a holding comes from.
type PriceSource string

const (
	PriceManual PriceSource = "manual" // a manual override.
	PriceQuote  PriceSource = "quote"  // the price source.
	PriceCost   PriceSource = "cost"   // no price known, the average cost is used.
)

// Holding is an open position in an instrument, optionally at one broker.
type Holding struct {
	Key
	Quantity     decimal.Decimal
	AvgPrice     decimal.Decimal // average cost per unit, fees included.
	CurrentPrice decimal.Decimal
	PriceSource  PriceSource

	// Fees paid on buys, written down in proportion on each sell.
	TotalCommission decimal.Decimal
	TotalTax        decimal.Decimal
	TotalCDC        decimal.Decimal
}

// MarketValue returns quantity times current price.
func (h Holding) MarketValue() decimal.Decimal { return h.Quantity.Mul(h.CurrentPrice) }

// Cost returns quantity times average price.
func (h Holding) Cost() decimal.Decimal { return h.Quantity.Mul(h.AvgPrice) }

// UnrealizedPL returns market value minus cost.
func (h Holding) UnrealizedPL() decimal.Decimal { return h.MarketValue().Sub(h.Cost()) }

// UnrealizedPLPercent returns the unrealized P&L as a percentage of the cost,
// zero when the cost is not positive.
func (h Holding) UnrealizedPLPercent() decimal.Decimal {
	return percentOf(h.UnrealizedPL(), h.Cost())
}

// Fees returns the remaining accumulated fees.
func (h Holding) Fees() decimal.Decimal {
	return h.TotalCommission.Add(h.TotalTax).Add(h.TotalCDC)
}

// resolvePrice returns the current price of ticker: the manual override,
// then the quote, then the average cost.
func resolvePrice(ticker string, avg decimal.Decimal, opts Options) (decimal.Decimal, PriceSource) {
	if p, ok := opts.Prices[ticker]; ok {
		return p, PriceManual
	}
	if p, ok := opts.Quotes[ticker]; ok {
		return p, PriceQuote
	}
	return avg, PriceCost
}

var hundred = decimal.NewFromInt(100)

// percentOf returns 100*v/of, or zero when of is not positive.
func percentOf(v, of decimal.Decimal) decimal.Decimal {
	if !of.IsPositive() {
		return decimal.Zero
	}
	return v.Div(of).Mul(hundred)
}
