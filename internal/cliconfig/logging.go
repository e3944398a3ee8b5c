package cliconfig

import (
	"os"

	"github.com/bft-labs/mortplot/pkg/log"
)

// Logger returns the console logger used by the CLI.
func Logger(verbose bool) log.Logger {
	return log.NewZerologAdapter(os.Stderr, verbose)
}
