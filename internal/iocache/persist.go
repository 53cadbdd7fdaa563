package iocache

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/huangsam/fmtgauge/schema"
)

// encodeAnalysis renders the stable wire form: ASCII-only JSON with a
// trailing newline. Map keys marshal sorted, which keeps project and file
// ordering deterministic without extra bookkeeping.
func encodeAnalysis(analysis *schema.Analysis) ([]byte, error) {
	if err := analysis.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to save an inconsistent analysis: %w", err)
	}
	data, err := json.Marshal(analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis: %w", err)
	}
	return append(escapeNonASCII(data), '\n'), nil
}

// readAnalysis loads and validates one analysis file, unwrapping a zip
// archive when the extension asks for it.
func readAnalysis(path string) (*schema.Analysis, error) {
	var data []byte
	var err error
	if filepath.Ext(path) == ".zip" {
		data, err = readZip(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var analysis schema.Analysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse analysis %s: %w", path, err)
	}
	if err := checkDataFormat(&analysis); err != nil {
		return nil, fmt.Errorf("analysis %s: %w", path, err)
	}
	if err := analysis.Validate(); err != nil {
		return nil, fmt.Errorf("analysis %s is inconsistent: %w", path, err)
	}
	return &analysis, nil
}

// checkDataFormat enforces the supported [MinDataFormat, MaxDataFormat)
// range. Unsupported files fail loudly instead of being half-parsed.
func checkDataFormat(analysis *schema.Analysis) error {
	version, ok := analysis.DataFormat()
	if !ok {
		return fmt.Errorf("missing data-format metadata; this file was not written by fmtgauge")
	}
	if version < schema.MinDataFormat || version >= schema.MaxDataFormat {
		return fmt.Errorf(
			"unsupported data-format %v (supported: >=%d and <%d); upgrade fmtgauge or regenerate the analysis",
			version, schema.MinDataFormat, schema.MaxDataFormat)
	}
	return nil
}

// writeZip stores the encoded analysis as the single deflated entry of a
// zip archive.
func writeZip(path string, data []byte) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	archive := zip.NewWriter(file)
	entry, err := archive.CreateHeader(&zip.FileHeader{
		Name:   schema.ZipEntryName,
		Method: zip.Deflate,
	})
	if err != nil {
		return fmt.Errorf("failed to create zip entry: %w", err)
	}
	if _, err := entry.Write(data); err != nil {
		return fmt.Errorf("failed to write zip entry: %w", err)
	}
	if err := archive.Close(); err != nil {
		return fmt.Errorf("failed to finish zip archive: %w", err)
	}
	return nil
}

// readZip extracts the analysis from a zip archive. Anything other than
// exactly one entry is ambiguous and rejected.
func readZip(path string) ([]byte, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", path, err)
	}
	defer func() { _ = archive.Close() }()

	if len(archive.File) != 1 {
		return nil, fmt.Errorf(
			"archive %s holds %d entries, expected exactly one analysis", path, len(archive.File))
	}
	entry, err := archive.File[0].Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open archive entry: %w", err)
	}
	defer func() { _ = entry.Close() }()
	return io.ReadAll(entry)
}

// escapeNonASCII rewrites every rune above 0x7f as a \uXXXX escape
// (surrogate pairs beyond the BMP). Multi-byte runes only occur inside
// JSON strings, so byte-level rewriting is safe. ASCII-only output keeps
// very large analyses cheap to hold in memory after load.
func escapeNonASCII(data []byte) []byte {
	if isASCII(data) {
		return data
	}
	var buf bytes.Buffer
	buf.Grow(len(data))
	for i := 0; i < len(data); {
		if data[i] < utf8.RuneSelf {
			buf.WriteByte(data[i])
			i++
			continue
		}
		r, size := utf8.DecodeRune(data[i:])
		if r > 0xFFFF {
			high, low := utf16.EncodeRune(r)
			fmt.Fprintf(&buf, `\u%04x\u%04x`, high, low)
		} else {
			fmt.Fprintf(&buf, `\u%04x`, r)
		}
		i += size
	}
	return buf.Bytes()
}

func isASCII(data []byte) bool {
	for _, b := range data {
		if b >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
