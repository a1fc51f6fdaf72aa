package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// Environment variables passed to extensions. They are the ones read by the
// configuration, so an extension sees the same ledger and settings as sbk.
const (
	EnvLedgerFile     = "SBK_LEDGER_FILE"
	EnvPortfolio      = "SBK_PORTFOLIO"
	EnvCurrency       = "SBK_CURRENCY"
	EnvCombineBrokers = "SBK_COMBINE_BROKERS"
	EnvLogLevel       = "SBK_LOG_LEVEL"
	EnvPricesFile     = "SBK_PRICES_FILE"
)

// ExtensionPrefix prefixes the name of external sbk commands.
const ExtensionPrefix = "sbk-"

// RunExtension attempts to find and execute an external sbk-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	lp, err := exec.LookPath(ExtensionPrefix + subcommand)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Env = os.Environ()

	// Pass the resolved configuration as environment variables.
	if cfg, err := loadConfig(); err == nil {
		cmd.Env = append(cmd.Env,
			EnvLedgerFile+"="+cfg.LedgerFile,
			EnvPortfolio+"="+cfg.Portfolio,
			EnvCurrency+"="+cfg.Currency,
			EnvCombineBrokers+"="+strconv.FormatBool(cfg.CombineBrokers),
			EnvLogLevel+"="+cfg.LogLevel,
			EnvPricesFile+"="+cfg.PricesFile,
		)
	}

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(stderr, "Error executing external command %q: %v\n", ExtensionPrefix+subcommand, err)
		return true, 1
	}
	return true, 0
}
