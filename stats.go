package stockbook

import "github.com/shopspring/decimal"

// Stats summarizes a portfolio.
type Stats struct {
	TotalValue          decimal.Decimal // market value of the holdings.
	TotalCost           decimal.Decimal // cost of the holdings.
	UnrealizedPL        decimal.Decimal
	UnrealizedPLPercent decimal.Decimal // zero when TotalCost is zero.
	RealizedPL          decimal.Decimal
	TotalDividends      decimal.Decimal // net of withholding tax.
}

// ComputeStats sums holdings, realized trades and net dividends into Stats.
func ComputeStats(holdings []Holding, realized []RealizedTrade, netDividends decimal.Decimal) Stats {
	var s Stats
	for _, h := range holdings {
		s.TotalValue = s.TotalValue.Add(h.MarketValue())
		s.TotalCost = s.TotalCost.Add(h.Cost())
	}
	s.UnrealizedPL = s.TotalValue.Sub(s.TotalCost)
	s.UnrealizedPLPercent = percentOf(s.UnrealizedPL, s.TotalCost)
	s.RealizedPL = TotalProfit(realized)
	s.TotalDividends = netDividends
	return s
}

// TotalReturn returns unrealized plus realized P&L plus dividends.
func (s Stats) TotalReturn() decimal.Decimal {
	return s.UnrealizedPL.Add(s.RealizedPL).Add(s.TotalDividends)
}
