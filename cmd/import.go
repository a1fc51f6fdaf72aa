package cmd

import (
	"cmp"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockbook"
	"github.com/google/subcommands"
)

type importCmd struct {
	portfolio string
	dryRun    bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import transactions from a broker CSV export" }
func (*importCmd) Usage() string {
	return `sbk import [-portfolio <id>] [-dry-run] <file.csv>...

  Appends the rows of CSV files to the ledger. Columns are matched by header
  name, see 'sbk topic csv-import'. Nothing is imported if any row is invalid.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "portfolio", "", "Portfolio of the rows without a portfolio column. Defaults to the configured portfolio.")
	f.BoolVar(&c.dryRun, "dry-run", false, "Check the files without importing them.")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return usage("Error: import expects at least one CSV file.")
	}
	a, err := load()
	if err != nil {
		return fail(err)
	}
	portfolio := cmp.Or(c.portfolio, a.cfg.Portfolio)

	var txs []stockbook.Transaction
	for _, name := range f.Args() {
		rows, err := importFile(name, portfolio)
		if err != nil {
			return fail(err)
		}
		a.log.Info().Str("file", name).Int("rows", len(rows)).Msg("csv read")
		txs = append(txs, rows...)
	}

	for _, tx := range txs {
		if _, err := a.book.Add(tx); err != nil {
			return fail(err)
		}
	}
	if c.dryRun {
		fmt.Fprintf(stdout, "%d transaction(s) would be imported.\n", len(txs))
		return subcommands.ExitSuccess
	}
	if err := a.book.Save(); err != nil {
		return fail(err)
	}
	fmt.Fprintf(stdout, "Imported %d transaction(s) into %s.\n", len(txs), a.book.Path())
	return subcommands.ExitSuccess
}

func importFile(name, portfolio string) ([]stockbook.Transaction, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	txs, err := stockbook.ImportCSV(f, portfolio)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return txs, nil
}

type exportCmd struct {
	portfolio string
	output    string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the transactions as CSV" }
func (*exportCmd) Usage() string {
	return `sbk export [-portfolio <id>] [-o <file.csv>]

  Writes the transactions in replay order as CSV, in the format read by
  'sbk import'.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "portfolio", "", "Only export this portfolio. Defaults to the configured portfolio.")
	f.StringVar(&c.output, "o", "", "Output file, stdout by default.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := load()
	if err != nil {
		return fail(err)
	}
	txs := a.book.Transactions(cmp.Or(c.portfolio, a.cfg.Portfolio))

	if c.output == "" {
		if err := stockbook.ExportCSV(stdout, txs); err != nil {
			return fail(err)
		}
		return subcommands.ExitSuccess
	}
	out, err := os.Create(c.output)
	if err != nil {
		return fail(err)
	}
	if err := stockbook.ExportCSV(out, txs); err != nil {
		out.Close()
		return fail(err)
	}
	if err := out.Close(); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `sbk fmt

  Validates every transaction of the ledger, then rewrites it in replay order,
  one canonical JSON object per line. The ledger is left untouched if any
  transaction is invalid.
`
}

func (*fmtCmd) SetFlags(*flag.FlagSet) {}

func (*fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := load()
	if err != nil {
		return fail(err)
	}
	invalid := 0
	for _, tx := range a.book.Transactions("") {
		if err := tx.Validate(); err != nil {
			fmt.Fprintf(stderr, "%s %s: %v\n", tx.Date, cmp.Or(tx.ID, "(no id)"), err)
			invalid++
		}
	}
	if invalid > 0 {
		return fail(fmt.Errorf("%d invalid transaction(s) in %s", invalid, a.book.Path()))
	}
	if err := a.book.Save(); err != nil {
		return fail(err)
	}
	fmt.Fprintf(stderr, "Formatted %d transaction(s) in %s.\n", a.book.Len(), a.book.Path())
	return subcommands.ExitSuccess
}
