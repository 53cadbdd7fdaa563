// Package formatter wraps the Go formatting stack behind a narrow adapter.
// The rest of fmtgauge depends only on resolved (files, mode) pairs and the
// Format call; how the underlying formatter discovers files or applies
// style never leaks past this package.
package formatter

import (
	"errors"
	"go/format"
	"go/scanner"
	"runtime"
	"sync"

	"golang.org/x/tools/imports"

	"github.com/huangsam/fmtgauge/schema"
)

// Mode is the resolved formatting configuration applied to one file.
// It is a comparable value: equal modes produce equal results for equal
// inputs, which is what makes per-file checking idempotent.
type Mode struct {
	Style           schema.Style
	LocalPrefix     string
	RequiredVersion string

	// TestVariant marks the secondary source type (_test.go files); the
	// resolver leaves it unset and the checker flips it per file.
	TestVariant bool
}

// Version returns the formatter version string recorded in analysis
// metadata. The stable formatter ships with the toolchain, so the runtime
// version is the formatter version.
func Version() string {
	return runtime.Version()
}

// localPrefixMu serializes access to the imports package's process-wide
// LocalPrefix setting, which is the one piece of global state in the
// underlying formatter.
var localPrefixMu sync.Mutex

// Format runs the formatter over src and returns the formatted content.
// Stable style is gofmt; preview style additionally groups imports with an
// optional local prefix. The input file is never touched.
func Format(src string, mode Mode) (string, error) {
	if mode.Style == schema.PreviewStyle {
		return formatPreview(src, mode)
	}
	dst, err := format.Source([]byte(src))
	if err != nil {
		return "", err
	}
	return string(dst), nil
}

func formatPreview(src string, mode Mode) (string, error) {
	// FormatOnly keeps this a pure formatter: imports are sorted and
	// grouped but never added or removed.
	options := &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	}
	localPrefixMu.Lock()
	defer localPrefixMu.Unlock()
	previous := imports.LocalPrefix
	imports.LocalPrefix = mode.LocalPrefix
	defer func() { imports.LocalPrefix = previous }()

	dst, err := imports.Process("src.go", []byte(src), options)
	if err != nil {
		return "", err
	}
	return string(dst), nil
}

// Classify maps a formatter error to a stable (kind, message) pair used in
// Failed results. Syntax problems keep their own kind so regressions in
// parsing are distinguishable from other formatter faults.
func Classify(err error) (kind, message string) {
	var list scanner.ErrorList
	if errors.As(err, &list) {
		return "SyntaxError", list.Error()
	}
	var one *scanner.Error
	if errors.As(err, &one) {
		return "SyntaxError", one.Error()
	}
	return "FormatError", err.Error()
}
