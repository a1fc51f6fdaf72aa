// Package renderer renders portfolio reports as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/stockbook"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.md
var templates embed.FS

// RenderHoldings renders the holdings report.
func RenderHoldings(r *HoldingsReport) string {
	return renderTemplate("holdings.md", r.Currency, r)
}

// RenderGains renders the realized gains report.
func RenderGains(r *GainsReport) string {
	return renderTemplate("gains.md", r.Currency, r)
}

// RenderSummary renders the portfolio summary.
func RenderSummary(r *SummaryReport) string {
	return renderTemplate("summary.md", r.Currency, r)
}

// RenderTransactions renders a list of transactions.
func RenderTransactions(r *TransactionsReport) string {
	return renderTemplate("transactions.md", r.Currency, r)
}

// funcs returns the template functions, formatting amounts in currency.
func funcs(currency string) template.FuncMap {
	return template.FuncMap{
		"money":  func(d decimal.Decimal) string { return stockbook.M(d, currency).String() },
		"signed": func(d decimal.Decimal) string { return stockbook.M(d, currency).SignedString() },
		"optmoney": func(d decimal.Decimal) string {
			if d.IsZero() {
				return ""
			}
			return stockbook.M(d, currency).String()
		},
		"qty": func(d decimal.Decimal) string {
			if d.IsZero() {
				return ""
			}
			return d.String()
		},
		"pct":    func(d decimal.Decimal) string { return stockbook.Percent(d.InexactFloat64()).SignedString() },
		"xirr":   formatXIRR,
		"broker": func(b string) string { return cmpOr(b, "-") },
		"source": func(s stockbook.PriceSource) string {
			if s == stockbook.PriceCost {
				return " \\*"
			}
			return ""
		},
	}
}

// formatXIRR formats an XIRR result: "n/a" when there is no rate, "~" flags
// a rate that did not converge.
func formatXIRR(res stockbook.XIRRResult) string {
	switch {
	case res.Iterations == 0:
		return "n/a"
	case !res.Converged:
		return "~" + stockbook.Percent(res.Rate).SignedString()
	default:
		return stockbook.Percent(res.Rate).SignedString()
	}
}

func cmpOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// renderTemplate renders the template file with data.
func renderTemplate(file, currency string, data any) string {
	content, err := fs.ReadFile(templates, "templates/"+file)
	if err != nil {
		return fmt.Sprintf("error reading template %q: %v", file, err)
	}
	tmpl, err := template.New(file).Funcs(funcs(currency)).Parse(string(content))
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", file, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", file, err)
	}
	return b.String()
}

// Transaction renders a transaction to a one line description.
func Transaction(tx stockbook.Transaction, currency string) string {
	m := func(d decimal.Decimal) string { return stockbook.M(d, currency).String() }
	var s string
	switch tx.Type {
	case stockbook.TxBuy:
		s = fmt.Sprintf("Bought %s %s at %s", tx.Quantity, tx.Ticker, m(tx.Price))
	case stockbook.TxSell:
		s = fmt.Sprintf("Sold %s %s at %s", tx.Quantity, tx.Ticker, m(tx.Price))
	case stockbook.TxDividend:
		s = fmt.Sprintf("Dividend of %s from %s", m(tx.Gross().Sub(tx.Tax)), tx.Ticker)
	case stockbook.TxDeposit:
		s = fmt.Sprintf("Deposited %s", m(tx.Amount()))
	case stockbook.TxWithdrawal:
		s = fmt.Sprintf("Withdrew %s", m(tx.Amount()))
	default:
		s = fmt.Sprintf("%s of %s", tx.Type, m(tx.Amount()))
		if tx.Category != "" {
			s += " (" + tx.Category + ")"
		}
	}
	if tx.Broker != "" {
		s += " with " + tx.Broker
	}
	return fmt.Sprintf("%s: %s", tx.Date, s)
}
