package stockbook

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// DividendIncome is the dividend income received from one instrument.
type DividendIncome struct {
	Ticker   string
	Gross    decimal.Decimal
	Tax      decimal.Decimal // withheld.
	Net      decimal.Decimal
	Payments int
}

// dividendAggregator accumulates net dividends, per ticker and in total.
// The result does not depend on the order payments are added.
type dividendAggregator struct {
	byTicker map[string]*DividendIncome
	total    decimal.Decimal
}

func newDividendAggregator() *dividendAggregator {
	return &dividendAggregator{byTicker: make(map[string]*DividendIncome)}
}

func (a *dividendAggregator) add(tx Transaction) {
	gross := tx.Gross()
	net := gross.Sub(tx.Tax)
	d, ok := a.byTicker[tx.Ticker]
	if !ok {
		d = &DividendIncome{Ticker: tx.Ticker}
		a.byTicker[tx.Ticker] = d
	}
	d.Gross = d.Gross.Add(gross)
	d.Tax = d.Tax.Add(tx.Tax)
	d.Net = d.Net.Add(net)
	d.Payments++
	a.total = a.total.Add(net)
}

// incomes returns the income per ticker, sorted by ticker.
func (a *dividendAggregator) incomes() []DividendIncome {
	incomes := make([]DividendIncome, 0, len(a.byTicker))
	for _, d := range a.byTicker {
		incomes = append(incomes, *d)
	}
	slices.SortFunc(incomes, func(a, b DividendIncome) int {
		return cmp.Compare(a.Ticker, b.Ticker)
	})
	return incomes
}
