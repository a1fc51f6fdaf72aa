package cmd

import (
	"flag"
	"slices"
	"strings"

	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// group is a named group of subcommands.
type group struct {
	name     string
	commands []subcommands.Command
}

// groups returns the sbk subcommands.
func groups() []group {
	return []group{
		{"reports", []subcommands.Command{&holdingCmd{}, &gainsCmd{}, &summaryCmd{}, &xirrCmd{}}},
		{"transactions", []subcommands.Command{&txCmd{}, &addCmd{}, &editCmd{}, &rmCmd{}, &importCmd{}, &exportCmd{}, &fmtCmd{}}},
		{"prices", []subcommands.Command{&priceCmd{}}},
		{"help", []subcommands.Command{&topicCmd{}}},
	}
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, g := range groups() {
		for _, cmd := range g.commands {
			c.Register(cmd, g.name)
		}
	}
}

// IsCommand reports whether name is a built-in subcommand.
func IsCommand(name string) bool {
	for _, g := range groups() {
		if slices.ContainsFunc(g.commands, func(c subcommands.Command) bool { return c.Name() == name }) {
			return true
		}
	}
	return false
}

// Completion returns the shell completion of sbk: subcommands, their flags,
// and their arguments when they are files or topics.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, g := range groups() {
		for _, c := range g.commands {
			f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(f)
			root.Sub[c.Name()] = &complete.Command{
				Flags: flagPredictors(f),
				Args:  argsPredictor(c.Name()),
			}
		}
	}
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{}
	}
	return root
}

// flagPredictors predicts the values of the flags of f.
func flagPredictors(f *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		var p complete.Predictor = predict.Something
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			p = predict.Nothing
		}
		switch fl.Name {
		case "type":
			var types predict.Set
			for _, t := range stockbook.TxTypes {
				types = append(types, strings.ToLower(string(t)))
			}
			p = types
		case "flows":
			p = predict.Set{"auto", "external", "trades"}
		case "p":
			p = predict.Set{"day", "week", "month", "quarter", "year"}
		case "config":
			p = predict.Files("*.toml")
		case "ledger-file":
			p = predict.Files("*.jsonl")
		case "o":
			p = predict.Files("*.csv")
		}
		flags[fl.Name] = p
	})
	return flags
}

// argsPredictor predicts the arguments of the named subcommand.
func argsPredictor(name string) complete.Predictor {
	switch name {
	case "import":
		return predict.Files("*.csv")
	case "topic":
		topics, _ := docs.Names()
		return predict.Set(topics)
	}
	return predict.Nothing
}
