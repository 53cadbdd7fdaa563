package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/huangsam/fmtgauge/schema"
)

// Color variables for console output.
var (
	NothingChangedColor = color.New(color.FgGreen)              // clean projects are good news
	ReformattedColor    = color.New(color.FgYellow, color.Bold) // changed output needs a look
	FailedColor         = color.New(color.FgRed, color.Bold)    // crashes are always critical
)

// GetPlainLabel returns the plain text label for a result type. This is the
// core logic used for JSON and table printing.
func GetPlainLabel(t schema.ResultType) string {
	return string(t)
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(t schema.ResultType) string {
	switch t {
	case schema.FailedResult:
		return FailedColor.Sprint(t)
	case schema.ReformattedResult:
		return ReformattedColor.Sprint(t)
	default:
		return NothingChangedColor.Sprint(t)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout for an empty path.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 so there is room for both the "..." prefix and at
// least one character of content.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
