package cmd

import (
	"cmp"
	"context"
	"flag"
	"strings"

	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	period
	portfolio string
	ticker    string
	typ       string
	head      int
	tail      int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the transactions of the ledger" }
func (*txCmd) Usage() string {
	return `sbk tx [-p <period> | -s <start_date>] [-d <end_date>] [-ticker <ticker>] [-type <type>] [-head <n>] [-tail <n>]

  Lists transactions from the ledger in replay order, with options for
  filtering and limiting the output. Use the listed ids with 'sbk edit' and
  'sbk rm'.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	p.period.SetFlags(f)
	f.StringVar(&p.portfolio, "portfolio", "", "Only list this portfolio's transactions. Defaults to the configured portfolio.")
	f.StringVar(&p.ticker, "ticker", "", "Only list this ticker's transactions.")
	f.StringVar(&p.typ, "type", "", "Only list transactions of this type.")
	f.IntVar(&p.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N transactions.")
}

func (p *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.head > 0 && p.tail > 0 {
		return usage("Error: -head and -tail flags cannot be used together.")
	}
	r, err := p.Range()
	if err != nil {
		return usage("Error: %v", err)
	}
	var typ stockbook.TxType
	if p.typ != "" {
		if typ, err = stockbook.ParseTxType(p.typ); err != nil {
			return usage("Error: %v", err)
		}
	}
	a, err := load()
	if err != nil {
		return fail(err)
	}

	portfolio := cmp.Or(p.portfolio, a.cfg.Portfolio)
	var transactions []stockbook.Transaction
	for _, tx := range a.book.Transactions(portfolio) {
		switch {
		case !r.IsZero() && !r.Contains(tx.Date):
		case p.ticker != "" && !strings.EqualFold(tx.Ticker, p.ticker):
		case typ != "" && tx.Type != typ:
		default:
			transactions = append(transactions, tx)
		}
	}

	if p.head > 0 && len(transactions) > p.head {
		transactions = transactions[:p.head]
	}
	if p.tail > 0 && len(transactions) > p.tail {
		transactions = transactions[len(transactions)-p.tail:]
	}

	printMarkdown(renderer.RenderTransactions(&renderer.TransactionsReport{
		Portfolio:    portfolio,
		Currency:     a.cfg.Currency,
		Transactions: transactions,
	}))
	return subcommands.ExitSuccess
}
