package cmd

import (
	"cmp"
	"context"
	"flag"
	"fmt"
	"slices"

	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/date"
	"github.com/etnz/stockbook/quote"
)

// selection holds the flags selecting the transactions to report on.
type selection struct {
	portfolio string
	broker    string
	combine   bool
}

func (s *selection) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.portfolio, "portfolio", "", "Portfolio to report on. Defaults to the configured portfolio, all portfolios when both are empty.")
	f.StringVar(&s.broker, "broker", "", "Only report on this broker.")
	f.BoolVar(&s.combine, "combine", false, "Combine positions held at different brokers.")
}

// options returns the replay options of the selection.
func (s *selection) options(a *app) stockbook.Options {
	return stockbook.Options{
		PortfolioID:    cmp.Or(s.portfolio, a.cfg.Portfolio),
		Broker:         s.broker,
		CombineBrokers: s.combine || a.cfg.CombineBrokers,
	}
}

// until returns the transactions of the portfolio dated on or before on.
func (a *app) until(portfolio string, on date.Date) []stockbook.Transaction {
	var txs []stockbook.Transaction
	for _, tx := range a.book.Transactions(portfolio) {
		if !tx.Date.After(on) {
			txs = append(txs, tx)
		}
	}
	return txs
}

// quoteSource returns the configured web quote source, nil if there is none.
func (a *app) quoteSource() quote.Source {
	if !a.cfg.Quote.Enabled() {
		return nil
	}
	return &quote.HTTPSource{
		URL:     a.cfg.Quote.URL,
		Path:    a.cfg.Quote.Path,
		Timeout: a.cfg.Quote.GetTimeout(),
		Client:  quote.Daily(a.cfg.Quote.CacheDir, a.log),
		Log:     a.log,
	}
}

// price sets the manual prices of opts and, when update is true, the quotes
// of the open positions without a manual price. Quote errors are logged and
// the positions are valued at their last known price.
func (a *app) price(ctx context.Context, txs []stockbook.Transaction, opts *stockbook.Options, update bool) error {
	prices, err := quote.LoadPrices(a.cfg.PricesFile)
	if err != nil {
		return fmt.Errorf("could not load prices: %w", err)
	}
	opts.Prices = prices

	src := a.quoteSource()
	if !update || src == nil {
		return nil
	}
	var tickers []string
	for _, h := range stockbook.Replay(txs, *opts).Holdings {
		if _, ok := prices[h.Ticker]; !ok && !slices.Contains(tickers, h.Ticker) {
			tickers = append(tickers, h.Ticker)
		}
	}
	if len(tickers) == 0 {
		return nil
	}
	quotes, err := src.Quotes(ctx, tickers)
	if err != nil {
		a.log.Warn().Err(err).Msg("some positions could not be quoted")
	}
	opts.Quotes = quotes
	return nil
}

// period holds the flags selecting a date range.
type period struct {
	period string
	start  string
	end    string
}

func (p *period) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.period, "p", "", "Predefined period (day, week, month, quarter, year).")
	f.StringVar(&p.start, "s", "", "The start date for a custom range. Overrides -p.")
	f.StringVar(&p.end, "d", "", "The end date for the range, today by default.")
}

// Range returns the selected range, the zero Range when no flag is set.
func (p *period) Range() (date.Range, error) {
	if p.period == "" && p.start == "" && p.end == "" {
		return date.Range{}, nil
	}
	end := date.Today()
	if p.end != "" {
		var err error
		if end, err = date.Parse(p.end); err != nil {
			return date.Range{}, fmt.Errorf("invalid end date: %w", err)
		}
	}
	if p.start != "" {
		start, err := date.Parse(p.start)
		if err != nil {
			return date.Range{}, fmt.Errorf("invalid start date: %w", err)
		}
		if start.After(end) {
			return date.Range{}, fmt.Errorf("start date %s is after end date %s", start, end)
		}
		return date.Since(start, end), nil
	}
	if p.period == "" {
		return date.Since(date.Date{}, end), nil
	}
	per, err := date.ParsePeriod(p.period)
	if err != nil {
		return date.Range{}, err
	}
	return date.NewRange(end, per), nil
}
