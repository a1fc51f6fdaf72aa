package cmd

import (
	"context"
	"flag"

	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/date"
	"github.com/etnz/stockbook/renderer"
	"github.com/google/subcommands"
)

// holdingCmd holds the flags for the 'holding' subcommand.
type holdingCmd struct {
	selection
	date   string
	update bool
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display the open positions on a given date" }
func (*holdingCmd) Usage() string {
	return `sbk holding [-d <date>] [-portfolio <id>] [-broker <name>] [-combine] [-u]

  Displays the open positions on a given date, with their average price,
  current price, market value and unrealized gain.

  Prices come from the prices file first, then from the quote source with -u,
  else positions are valued at their average price.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	c.selection.SetFlags(f)
	f.StringVar(&c.date, "d", "0d", "Date of the holdings. See the user manual for supported date formats.")
	f.BoolVar(&c.update, "u", false, "Fetch quotes from the quote source. Always on for today.")
}

func (c *holdingCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.date)
	if err != nil {
		return usage("Error parsing date: %v", err)
	}
	a, err := load()
	if err != nil {
		return fail(err)
	}

	opts := c.options(a)
	txs := a.until(opts.PortfolioID, on)
	if err := a.price(ctx, txs, &opts, c.update || on.IsToday()); err != nil {
		return fail(err)
	}

	report := renderer.NewHoldingsReport(on, opts.PortfolioID, a.cfg.Currency, stockbook.Replay(txs, opts))
	printMarkdown(renderer.RenderHoldings(report))
	return subcommands.ExitSuccess
}
