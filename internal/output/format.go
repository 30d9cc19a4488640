// Package output implements the sink protocol: the core hands sinks a
// stream of entries or projects one item at a time, then an explicit
// end-of-stream. Sinks own buffering, final sorting for non-streaming
// formats, and rendering; the core never writes to stdout itself.
package output

import (
	"fmt"

	"fexplorer/internal/errors"
)

// Format selects a renderer.
type Format string

const (
	// FormatPretty renders an aligned human-readable table.
	FormatPretty Format = "pretty"
	// FormatJSON renders one JSON array, buffered until Close.
	FormatJSON Format = "json"
	// FormatNDJSON streams one JSON object per line.
	FormatNDJSON Format = "ndjson"
	// FormatCSV streams comma-separated rows with a header.
	FormatCSV Format = "csv"
	// FormatYAML renders a YAML sequence, buffered until Close.
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatPretty, FormatJSON, FormatNDJSON, FormatCSV, FormatYAML:
		return Format(name), nil
	}
	return "", errors.Newf(errors.ParseError, "unknown output format %q", name)
}

// sizeUnits for human-readable byte counts, binary convention.
var sizeUnits = []string{"B", "KiB", "MiB", "GiB", "TiB"}

// formatSize renders a byte count in binary units.
func formatSize(n int64) string {
	f := float64(n)
	unit := 0
	for f >= 1024 && unit < len(sizeUnits)-1 {
		f /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d %s", n, sizeUnits[0])
	}
	return fmt.Sprintf("%.1f %s", f, sizeUnits[unit])
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
