package cmd

import (
	"context"
	"flag"

	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/renderer"
	"github.com/google/subcommands"
)

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	selection
	period
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "realized gains of the sales in a period" }
func (*gainsCmd) Usage() string {
	return `sbk gains [-p <period> | -s <date>] [-d <date>] [-portfolio <id>] [-broker <name>] [-combine]

  Lists the sales of a period with their realized gain, computed against the
  average price of the position when sold. All sales by default.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	c.selection.SetFlags(f)
	c.period.SetFlags(f)
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := c.Range()
	if err != nil {
		return usage("Error: %v", err)
	}
	a, err := load()
	if err != nil {
		return fail(err)
	}

	opts := c.options(a)
	txs := a.book.Transactions(opts.PortfolioID)
	if !r.IsZero() {
		txs = a.until(opts.PortfolioID, r.To)
	}
	trades := stockbook.Replay(txs, opts).Realized
	if !r.IsZero() {
		trades = stockbook.RealizedIn(trades, r)
	}

	printMarkdown(renderer.RenderGains(&renderer.GainsReport{
		Range:     r,
		Portfolio: opts.PortfolioID,
		Currency:  a.cfg.Currency,
		Trades:    trades,
	}))
	return subcommands.ExitSuccess
}
