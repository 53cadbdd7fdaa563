package outwriter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/fmtgauge/internal/contract"
)

// writeWithFile routes a render function to stdout or to the configured
// output file. File destinations get a confirmation line on stderr so the
// payload stays clean for piping.
func writeWithFile(outputFile string, render func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	toFile := file != os.Stdout
	if toFile {
		defer func() { _ = file.Close() }()
	}

	if err := render(file); err != nil {
		return err
	}
	if toFile {
		fmt.Fprintf(os.Stderr, "%s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON renders a value as two-space indented JSON. HTML escaping is off
// since diffs routinely contain <, > and & characters.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
