// Command sbk keeps a stock portfolio ledger and reports on it.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/stockbook/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Answers shell completion requests, and exits, when sbk is run by the
	// shell to complete a command line. "COMP_INSTALL=1 sbk" installs it.
	cmd.Completion().Complete("sbk")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	// unknown commands may be extensions: sbk-<name> binaries in the PATH.
	if name := flag.Arg(0); name != "" && !cmd.IsCommand(name) {
		if ok, code := cmd.RunExtension(name, flag.Args()[1:]); ok {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
