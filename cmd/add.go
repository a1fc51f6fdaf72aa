package cmd

import (
	"cmp"
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/date"
	"github.com/etnz/stockbook/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// txFlags holds the transaction fields as flags.
type txFlags struct {
	date       string
	typ        string
	ticker     string
	quantity   string
	price      string
	commission string
	tax        string
	cdc        string
	other      string
	broker     string
	portfolio  string
	notes      string
	category   string
}

func (t *txFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&t.date, "d", "0d", "Transaction date. See the user manual for supported date formats.")
	f.StringVar(&t.typ, "type", "", "Transaction type: buy, sell, dividend, deposit, withdrawal, tax, history, annual-fee or other.")
	f.StringVar(&t.ticker, "ticker", "", "Instrument ticker.")
	f.StringVar(&t.quantity, "q", "", "Quantity.")
	f.StringVar(&t.price, "price", "", "Unit price, the dividend per share, or the amount of a cash transaction.")
	f.StringVar(&t.commission, "commission", "", "Brokerage commission.")
	f.StringVar(&t.tax, "tax", "", "Transaction tax, or the tax withheld on a dividend.")
	f.StringVar(&t.cdc, "cdc", "", "Depository (CDC) charges.")
	f.StringVar(&t.other, "other", "", "Other fees, not part of the cost basis.")
	f.StringVar(&t.broker, "broker", "", "Broker.")
	f.StringVar(&t.portfolio, "portfolio", "", "Portfolio. Defaults to the configured portfolio.")
	f.StringVar(&t.notes, "notes", "", "Free notes.")
	f.StringVar(&t.category, "category", "", "Free category.")
}

// apply sets the fields of tx whose flag is set on f. The date is set even
// if its flag is not when setDate is true.
func (t *txFlags) apply(tx *stockbook.Transaction, f *flag.FlagSet, setDate bool) error {
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	var errs []error
	dec := func(name, value string, dst *decimal.Decimal) {
		if !set[name] {
			return
		}
		d, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid -%s %q: %w", name, value, err))
			return
		}
		*dst = d
	}
	str := func(name, value string, dst *string) {
		if set[name] {
			*dst = value
		}
	}

	if set["d"] || setDate {
		d, err := date.Parse(t.date)
		if err != nil {
			errs = append(errs, err)
		}
		tx.Date = d
	}
	if set["type"] {
		typ, err := stockbook.ParseTxType(t.typ)
		if err != nil {
			errs = append(errs, err)
		}
		tx.Type = typ
	}
	if set["ticker"] {
		tx.Ticker = strings.ToUpper(strings.TrimSpace(t.ticker))
	}
	dec("q", t.quantity, &tx.Quantity)
	dec("price", t.price, &tx.Price)
	dec("commission", t.commission, &tx.Commission)
	dec("tax", t.tax, &tx.Tax)
	dec("cdc", t.cdc, &tx.CDCCharges)
	dec("other", t.other, &tx.OtherFees)
	str("broker", t.broker, &tx.Broker)
	str("portfolio", t.portfolio, &tx.PortfolioID)
	str("notes", t.notes, &tx.Notes)
	str("category", t.category, &tx.Category)
	return errors.Join(errs...)
}

type addCmd struct {
	txFlags
	id string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a transaction to the ledger" }
func (*addCmd) Usage() string {
	return `sbk add -type <type> [-d <date>] [-ticker <ticker>] [-q <quantity>] [-price <price>] [fees...] [-broker <name>] [-portfolio <id>]

  Adds a transaction to the ledger. A new id is generated unless -id is set.

Usage Examples:
# Buys 100 ABC at 10, with a 10 commission.
$ sbk add -type buy -ticker ABC -q 100 -price 10 -commission 10 -broker alpha

# Records a 0.2 dividend per share on 100 ABC, 7.5 withheld.
$ sbk add -type dividend -ticker ABC -q 100 -price 0.2 -tax 7.5

# Deposits 2000.
$ sbk add -type deposit -price 2000
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	c.txFlags.SetFlags(f)
	f.StringVar(&c.id, "id", "", "Transaction id. Generated when empty.")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.typ == "" {
		return usage("Error: -type is required.")
	}
	tx := stockbook.Transaction{ID: c.id}
	if err := c.apply(&tx, f, true); err != nil {
		return usage("Error: %v", err)
	}
	a, err := load()
	if err != nil {
		return fail(err)
	}
	tx.PortfolioID = cmp.Or(tx.PortfolioID, a.cfg.Portfolio)

	tx, err = a.book.Add(tx)
	if err != nil {
		return fail(err)
	}
	if err := a.book.Save(); err != nil {
		return fail(err)
	}
	fmt.Fprintf(stdout, "Added %s: %s\n", tx.ID, renderer.Transaction(tx, a.cfg.Currency))
	return subcommands.ExitSuccess
}

type editCmd struct {
	txFlags
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit a transaction of the ledger" }
func (*editCmd) Usage() string {
	return `sbk edit [field flags...] <id>

  Edits the transaction with the given id: the fields whose flag is set are
  changed, the others are kept. The transaction is validated again.

Usage Examples:
# Fixes the commission of a transaction.
$ sbk edit -commission 9.5 0b6c3a1e-5f4e-4d7a-9a55-0d7b3c7c2f11
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) { c.txFlags.SetFlags(f) }

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("Error: edit expects exactly one transaction id.")
	}
	id := f.Arg(0)
	a, err := load()
	if err != nil {
		return fail(err)
	}
	tx, err := a.book.Get(id)
	if err != nil {
		return fail(err)
	}
	if err := c.apply(&tx, f, false); err != nil {
		return usage("Error: %v", err)
	}
	if tx, err = a.book.Replace(id, tx); err != nil {
		return fail(err)
	}
	if err := a.book.Save(); err != nil {
		return fail(err)
	}
	fmt.Fprintf(stdout, "Edited %s: %s\n", tx.ID, renderer.Transaction(tx, a.cfg.Currency))
	return subcommands.ExitSuccess
}

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "remove transactions from the ledger" }
func (*rmCmd) Usage() string {
	return `sbk rm <id>...

  Removes the transactions with the given ids. Nothing is removed if any id
  is unknown.
`
}

func (*rmCmd) SetFlags(*flag.FlagSet) {}

func (*rmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return usage("Error: rm expects at least one transaction id.")
	}
	a, err := load()
	if err != nil {
		return fail(err)
	}
	for _, id := range f.Args() {
		if err := a.book.Delete(id); err != nil {
			return fail(err)
		}
	}
	if err := a.book.Save(); err != nil {
		return fail(err)
	}
	fmt.Fprintf(stdout, "Removed %d transaction(s).\n", f.NArg())
	return subcommands.ExitSuccess
}
