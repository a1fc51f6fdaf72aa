package cmd

import (
	"context"
	"flag"

	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/date"
	"github.com/etnz/stockbook/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	selection
	date   string
	flows  string
	update bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "portfolio statistics, annualized return, dividends and activity" }
func (*summaryCmd) Usage() string {
	return `sbk summary [-d <date>] [-flows auto|external|trades] [-portfolio <id>] [-broker <name>] [-combine] [-u]

  Displays the portfolio statistics on a given date: market value, cost basis,
  unrealized and realized gains, net dividends and the annualized return
  (XIRR). Then the dividends per instrument and the account activity.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	c.selection.SetFlags(f)
	f.StringVar(&c.date, "d", "0d", "Date of the summary. See the user manual for supported date formats.")
	f.StringVar(&c.flows, "flows", "auto", "Cash flows of the annualized return: external (deposits and withdrawals), trades, or auto.")
	f.BoolVar(&c.update, "u", false, "Fetch quotes from the quote source. Always on for today.")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.date)
	if err != nil {
		return usage("Error parsing date: %v", err)
	}
	basis, err := stockbook.ParseFlowBasis(c.flows)
	if err != nil {
		return usage("Error: %v", err)
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

	r := stockbook.Replay(txs, opts)
	printMarkdown(renderer.RenderSummary(&renderer.SummaryReport{
		Date:      on,
		Portfolio: opts.PortfolioID,
		Currency:  a.cfg.Currency,
		Stats:     r.Stats(),
		XIRR:      stockbook.PortfolioXIRR(txs, opts, basis, on),
		Basis:     basis,
		Dividends: r.Dividends,
		Activity:  r.Activity,
	}))
	return subcommands.ExitSuccess
}
