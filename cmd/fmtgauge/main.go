// main is the entry point for the fmtgauge CLI.
package main

import (
	"errors"
	"os"

	"github.com/huangsam/fmtgauge/cmd"
	"github.com/huangsam/fmtgauge/core"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// Check-mode outcomes already printed their summary; everything else
		// is a real error worth a message.
		if !errors.Is(err, core.ErrDifferencesFound) && !errors.Is(err, core.ErrFailuresFound) {
			os.Stderr.WriteString("Error: " + err.Error() + "\n")
		}
		os.Exit(1)
	}
}
