package renderer

import (
	"cmp"
	"slices"

	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/date"
	"github.com/shopspring/decimal"
)

// HoldingsReport is the data of the holdings report.
type HoldingsReport struct {
	Date      date.Date
	Portfolio string
	Currency  string
	Holdings  []stockbook.Holding
	Stats     stockbook.Stats
}

// NewHoldingsReport returns the holdings report of a replay.
func NewHoldingsReport(on date.Date, portfolio, currency string, r stockbook.Result) *HoldingsReport {
	return &HoldingsReport{
		Date:      on,
		Portfolio: portfolio,
		Currency:  currency,
		Holdings:  r.Holdings,
		Stats:     r.Stats(),
	}
}

// Estimated reports whether a holding is valued at its average cost.
func (r *HoldingsReport) Estimated() bool {
	return slices.ContainsFunc(r.Holdings, func(h stockbook.Holding) bool {
		return h.PriceSource == stockbook.PriceCost
	})
}

// GainsReport is the data of the realized gains report.
type GainsReport struct {
	Range     date.Range // zero for all time.
	Portfolio string
	Currency  string
	Trades    []stockbook.RealizedTrade
}

// TickerGain sums the realized trades of one instrument.
type TickerGain struct {
	Ticker   string
	Sales    int
	Quantity decimal.Decimal
	Profit   decimal.Decimal
}

// Total returns the total profit.
func (r *GainsReport) Total() decimal.Decimal { return stockbook.TotalProfit(r.Trades) }

// Fees returns the total sell fees.
func (r *GainsReport) Fees() decimal.Decimal {
	total := decimal.Zero
	for _, t := range r.Trades {
		total = total.Add(t.Fees)
	}
	return total
}

// ByTicker returns the gains per instrument, sorted by ticker.
func (r *GainsReport) ByTicker() []TickerGain {
	var gains []TickerGain
	for _, t := range r.Trades {
		i := slices.IndexFunc(gains, func(g TickerGain) bool { return g.Ticker == t.Ticker })
		if i < 0 {
			gains = append(gains, TickerGain{Ticker: t.Ticker})
			i = len(gains) - 1
		}
		gains[i].Sales++
		gains[i].Quantity = gains[i].Quantity.Add(t.Quantity)
		gains[i].Profit = gains[i].Profit.Add(t.Profit)
	}
	slices.SortFunc(gains, func(a, b TickerGain) int { return cmp.Compare(a.Ticker, b.Ticker) })
	return gains
}

// SummaryReport is the data of the portfolio summary.
type SummaryReport struct {
	Date      date.Date
	Portfolio string
	Currency  string
	Stats     stockbook.Stats
	XIRR      stockbook.XIRRResult
	Basis     stockbook.FlowBasis
	Dividends []stockbook.DividendIncome
	Activity  stockbook.Activity
}

// TransactionsReport is the data of the transactions list.
type TransactionsReport struct {
	Portfolio    string
	Currency     string
	Transactions []stockbook.Transaction
}
