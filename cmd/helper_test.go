package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/require"
)

const testConfig = `ledger_file = "transactions.jsonl"
currency = "usd"
log_level = "disabled"
prices_file = "prices.json"
`

// setup makes the commands work in a temporary directory with a test
// configuration, and returns the directory and the command outputs.
func setup(t *testing.T) (dir string, out, errOut *bytes.Buffer) {
	t.Helper()
	dir = t.TempDir()
	t.Chdir(dir)
	for _, env := range []string{EnvLedgerFile, EnvPortfolio, EnvCurrency, EnvCombineBrokers, EnvLogLevel, EnvPricesFile, "SBK_QUOTE_URL"} {
		t.Setenv(env, "")
	}

	cfg := filepath.Join(dir, "stockbook.toml")
	require.NoError(t, os.WriteFile(cfg, []byte(testConfig), 0o644))

	oldConfig, oldRaw, oldStdout, oldStderr := *configFile, *raw, stdout, stderr
	t.Cleanup(func() {
		*configFile, *raw, stdout, stderr = oldConfig, oldRaw, oldStdout, oldStderr
	})
	out, errOut = new(bytes.Buffer), new(bytes.Buffer)
	*configFile, *raw, stdout, stderr = cfg, true, out, errOut
	return dir, out, errOut
}

// run executes cmd with args.
func run(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(f)
	require.NoError(t, f.Parse(args))
	return cmd.Execute(context.Background(), f)
}

// mustRun executes cmd with args and requires it to succeed.
func mustRun(t *testing.T, cmd subcommands.Command, args ...string) {
	t.Helper()
	require.Equal(t, subcommands.ExitSuccess, run(t, cmd, args...), "%s %v", cmd.Name(), args)
}

// scenario adds a deposit, a buy and a sell of ABC, and a dividend.
func scenario(t *testing.T) {
	t.Helper()
	mustRun(t, &addCmd{}, "-type", "deposit", "-d", "2025-01-02", "-price", "2000")
	mustRun(t, &addCmd{}, "-type", "buy", "-d", "2025-01-02", "-ticker", "abc", "-q", "100", "-price", "10", "-commission", "10")
	mustRun(t, &addCmd{}, "-type", "sell", "-d", "2025-01-20", "-ticker", "ABC", "-q", "50", "-price", "12", "-commission", "5")
	mustRun(t, &addCmd{}, "-type", "dividend", "-d", "2025-01-25", "-ticker", "ABC", "-q", "50", "-price", "1", "-tax", "7.5")
}
