package schema

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/fmtgauge/internal/textdiff"
)

// Gob registration lets the cache layer serialize FileResult interface
// values without its own type bookkeeping.
func init() {
	gob.Register(NothingChanged{})
	gob.Register(Reformatted{})
	gob.Register(Failed{})
	gob.Register(map[string]any{})
	gob.Register([]any{})
}

// FileResult is the outcome of formatting one file. It is a closed sum of
// exactly three shapes discriminated by Type: NothingChanged, Reformatted
// and Failed. Every implementation is a comparable value type, so two
// results of the same shape with the same fields are equal under ==.
type FileResult interface {
	// Type returns the discriminating result type.
	Type() ResultType

	// Source returns the original file content.
	Source() string

	// LineCount returns the number of newline-delimited lines in the
	// source, never less than one.
	LineCount() int

	sealedResult()
}

// Compile-time checks that all three shapes satisfy FileResult.
var (
	_ FileResult = NothingChanged{}
	_ FileResult = Reformatted{}
	_ FileResult = Failed{}
)

// NothingChanged records a file the formatter left byte-identical.
type NothingChanged struct {
	Src string
}

// Type returns the discriminating result type.
func (NothingChanged) Type() ResultType { return NothingChangedResult }

// Source returns the original file content.
func (r NothingChanged) Source() string { return r.Src }

// LineCount returns the source line count.
func (r NothingChanged) LineCount() int { return countLines(r.Src) }

func (NothingChanged) sealedResult() {}

// MarshalJSON emits the tagged wire form.
func (r NothingChanged) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type ResultType `json:"type"`
		Src  string     `json:"src"`
	}{NothingChangedResult, r.Src})
}

// Reformatted records a file the formatter rewrote. Line-change counts are
// computed once at construction, so build values with NewReformatted.
type Reformatted struct {
	Src string
	Dst string

	additions int
	deletions int
}

// NewReformatted builds a Reformatted result and computes its line-change
// counts from the unified diff of src against dst.
func NewReformatted(src, dst string) Reformatted {
	additions, deletions := textdiff.LineChanges(textdiff.Unified(src, dst, "a", "b"))
	return Reformatted{Src: src, Dst: dst, additions: additions, deletions: deletions}
}

// Type returns the discriminating result type.
func (Reformatted) Type() ResultType { return ReformattedResult }

// Source returns the original file content.
func (r Reformatted) Source() string { return r.Src }

// LineCount returns the source line count.
func (r Reformatted) LineCount() int { return countLines(r.Src) }

// LineChanges returns the additions and deletions between src and dst.
func (r Reformatted) LineChanges() (additions, deletions int) {
	return r.additions, r.deletions
}

// Diff returns the unified diff of src against dst using a/<file> and
// b/<file> headers.
func (r Reformatted) Diff(file string) string {
	return textdiff.Unified(r.Src, r.Dst, "a/"+file, "b/"+file)
}

func (Reformatted) sealedResult() {}

// GobEncode serializes only src and dst; derived counts are recomputed on
// decode so cached values stay equal to freshly built ones.
func (r Reformatted) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode([2]string{r.Src, r.Dst}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode rebuilds the value through NewReformatted.
func (r *Reformatted) GobDecode(data []byte) error {
	var pair [2]string
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&pair); err != nil {
		return err
	}
	*r = NewReformatted(pair[0], pair[1])
	return nil
}

// MarshalJSON emits the tagged wire form. Line-change counts are derived
// data and stay out of the wire format.
func (r Reformatted) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type ResultType `json:"type"`
		Src  string     `json:"src"`
		Dst  string     `json:"dst"`
	}{ReformattedResult, r.Src, r.Dst})
}

// Failed records a file the formatter could not process. Error holds the
// error kind, Message the error text, and Log an optional diagnostic
// transcript with unstable temp paths already scrubbed.
type Failed struct {
	Src     string
	Error   string
	Message string
	Log     string
}

// Type returns the discriminating result type.
func (Failed) Type() ResultType { return FailedResult }

// Source returns the original file content.
func (r Failed) Source() string { return r.Src }

// LineCount returns the source line count.
func (r Failed) LineCount() int { return countLines(r.Src) }

func (Failed) sealedResult() {}

// MarshalJSON emits the tagged wire form.
func (r Failed) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ResultType `json:"type"`
		Src     string     `json:"src"`
		Error   string     `json:"error"`
		Message string     `json:"message"`
		Log     string     `json:"log,omitempty"`
	}{FailedResult, r.Src, r.Error, r.Message, r.Log})
}

// UnmarshalFileResult decodes one tagged file result from its wire form.
// An unknown type tag is an error, never a best-effort guess.
func UnmarshalFileResult(data []byte) (FileResult, error) {
	var envelope struct {
		Type    ResultType `json:"type"`
		Src     string     `json:"src"`
		Dst     string     `json:"dst"`
		Error   string     `json:"error"`
		Message string     `json:"message"`
		Log     string     `json:"log"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode file result: %w", err)
	}
	switch envelope.Type {
	case NothingChangedResult:
		return NothingChanged{Src: envelope.Src}, nil
	case ReformattedResult:
		return NewReformatted(envelope.Src, envelope.Dst), nil
	case FailedResult:
		return Failed{Src: envelope.Src, Error: envelope.Error, Message: envelope.Message, Log: envelope.Log}, nil
	default:
		return nil, fmt.Errorf("unknown file result type %q", envelope.Type)
	}
}

// countLines mirrors the line accounting used everywhere in fmtgauge:
// an empty file still counts as one line.
func countLines(src string) int {
	return max(1, strings.Count(src, "\n"))
}
