package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/date"
	"github.com/google/subcommands"
)

// xirrCmd holds the flags for the 'xirr' subcommand.
type xirrCmd struct {
	selection
	date   string
	flows  string
	guess  float64
	list   bool
	update bool
}

func (*xirrCmd) Name() string     { return "xirr" }
func (*xirrCmd) Synopsis() string { return "annualized internal rate of return of the portfolio" }
func (*xirrCmd) Usage() string {
	return `sbk xirr [-d <date>] [-flows auto|external|trades] [-guess <rate>] [-list] [-portfolio <id>] [-broker <name>] [-u]

  Computes the annualized return (XIRR) of the portfolio cash flows, the
  market value on the given date being the final inflow. See 'sbk topic xirr'.
`
}

func (c *xirrCmd) SetFlags(f *flag.FlagSet) {
	c.selection.SetFlags(f)
	f.StringVar(&c.date, "d", "0d", "Valuation date. See the user manual for supported date formats.")
	f.StringVar(&c.flows, "flows", "auto", "Cash flows: external (deposits and withdrawals), trades, or auto.")
	f.Float64Var(&c.guess, "guess", 0.1, "Initial rate guess, as a fraction.")
	f.BoolVar(&c.list, "list", false, "List the cash flows.")
	f.BoolVar(&c.update, "u", false, "Fetch quotes from the quote source. Always on for today.")
}

func (c *xirrCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	value := stockbook.Replay(txs, opts).Stats().TotalValue
	flows := stockbook.CashFlows(txs, opts, basis, value, on)
	res := stockbook.SolveXIRR(flows, c.guess)

	var b strings.Builder
	fmt.Fprintf(&b, "# XIRR on %s\n\n", on)
	if c.list {
		b.WriteString("| Date | Cash Flow |\n|:---|---:|\n")
		for _, cf := range flows {
			fmt.Fprintf(&b, "| %s | %.2f |\n", cf.Date, cf.Amount)
		}
		b.WriteString("\n")
	}
	switch {
	case res.Iterations == 0:
		b.WriteString("No rate: the cash flows need at least one outflow and one inflow.\n")
	case res.Converged:
		fmt.Fprintf(&b, "**%s** a year, converged in %d iterations.\n", stockbook.Percent(res.Rate).SignedString(), res.Iterations)
	default:
		fmt.Fprintf(&b, "**~%s** a year, did not converge after %d iterations.\n", stockbook.Percent(res.Rate).SignedString(), res.Iterations)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
