// dalgebra is a CLI for systems of differential and difference equations.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fchapoton/dalgebra"
	"github.com/fchapoton/dalgebra/logger"
	"github.com/rs/zerolog"
)

var rootCmd = &cobra.Command{
	Use:     "dalgebra",
	Short:   "operator-algebraic elimination for differential and difference systems",
	Version: dalgebra.Version.String(),
}

var fVerbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&fVerbose, "verbose", "v", false, "enable debug logging")
	cobra.OnInitialize(func() {
		if fVerbose {
			l := logger.Logger().Level(zerolog.DebugLevel)
			logger.Set(l)
		} else {
			logger.Disable()
		}
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
