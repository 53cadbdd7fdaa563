package core

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/huangsam/fmtgauge/internal/formatter"
	"github.com/huangsam/fmtgauge/schema"
)

// CheckFile formats one file and classifies the outcome. It reads exactly
// one input file and writes nothing, so it is safe to call concurrently and
// repeatedly: the same input always yields an equal result.
//
// Formatter problems become Failed results; an unreadable input file is an
// engine error, since the checkout itself is broken at that point.
func CheckFile(absPath, relPath string, mode formatter.Mode) (schema.FileResult, error) {
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", absPath, err)
	}
	src := string(data)
	return checkSource(src, formatter.ApplyVariant(mode, relPath)), nil
}

// checkSource classifies formatting one source text. A panic inside the
// formatting stack is converted to a Failed result carrying the scrubbed
// stack trace, so one pathological file cannot abort a whole run.
func checkSource(src string, mode formatter.Mode) (result schema.FileResult) {
	defer func() {
		if r := recover(); r != nil {
			result = schema.Failed{
				Src:     src,
				Error:   "PanicError",
				Message: fmt.Sprint(r),
				Log:     formatter.ScrubLog(string(debug.Stack())),
			}
		}
	}()

	dst, err := formatter.Format(src, mode)
	if err != nil {
		kind, message := formatter.Classify(err)
		return schema.Failed{Src: src, Error: kind, Message: formatter.ScrubLog(message)}
	}
	if dst == src {
		return schema.NothingChanged{Src: src}
	}
	return schema.NewReformatted(src, dst)
}
