package cmd

import (
	"context"
	"flag"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/quote"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type priceCmd struct {
	remove bool
	update bool
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "set, remove or list the manual prices" }
func (*priceCmd) Usage() string {
	return `sbk price [<ticker> <price>] | -rm <ticker>... | [-u]

  Manual prices value the positions before any quote. They are stored in the
  prices file.

  Without arguments, lists the price of every ticker of the ledger: the manual
  price, else with -u the quote from the quote source.

Usage Examples:
$ sbk price ABC 11.25
$ sbk price -rm ABC
`
}

func (c *priceCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.remove, "rm", false, "Remove the manual price of the given tickers.")
	f.BoolVar(&c.update, "u", false, "Fetch quotes for the tickers without a manual price.")
}

func (c *priceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.remove && f.NArg() != 0 && f.NArg() != 2 {
		return usage("Error: price expects a ticker and a price.")
	}
	a, err := load()
	if err != nil {
		return fail(err)
	}
	prices, err := quote.LoadPrices(a.cfg.PricesFile)
	if err != nil {
		return fail(err)
	}

	switch {
	case c.remove:
		for _, t := range f.Args() {
			delete(prices, strings.ToUpper(t))
		}
	case f.NArg() == 2:
		p, err := decimal.NewFromString(f.Arg(1))
		if err != nil || !p.IsPositive() {
			return usage("Error: invalid price %q.", f.Arg(1))
		}
		prices[strings.ToUpper(f.Arg(0))] = p
	default:
		return c.list(ctx, a, prices)
	}

	if err := quote.SavePrices(a.cfg.PricesFile, prices); err != nil {
		return fail(err)
	}
	fmt.Fprintf(stdout, "%d manual price(s) in %s.\n", len(prices), a.cfg.PricesFile)
	return subcommands.ExitSuccess
}

// list prints the ledger tickers with their manual price, then their quote.
func (c *priceCmd) list(ctx context.Context, a *app, prices map[string]decimal.Decimal) subcommands.ExitStatus {
	tickers := a.book.Tickers()
	for t := range maps.Keys(prices) {
		if !slices.Contains(tickers, t) {
			tickers = append(tickers, t)
		}
	}
	slices.Sort(tickers)

	sources := quote.Chain{quote.Static(prices)}
	if src := a.quoteSource(); c.update && src != nil {
		sources = append(sources, src)
	}
	quotes, err := sources.Quotes(ctx, tickers)
	if err != nil {
		a.log.Warn().Err(err).Msg("some tickers could not be quoted")
	}

	var b strings.Builder
	b.WriteString("# Prices\n\n| Ticker | Price | Source |\n|:---|---:|:---|\n")
	for _, t := range tickers {
		p, ok := quotes[t]
		_, manual := prices[t]
		switch {
		case !ok:
			fmt.Fprintf(&b, "| %s | | |\n", t)
		case manual:
			fmt.Fprintf(&b, "| %s | %s | %s |\n", t, stockbook.M(p, a.cfg.Currency), stockbook.PriceManual)
		default:
			fmt.Fprintf(&b, "| %s | %s | %s |\n", t, stockbook.M(p, a.cfg.Currency), stockbook.PriceQuote)
		}
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
