package scan

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

var byteUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatBytes renders a byte count in human-readable units: base 1024,
// rounded to two decimals with trailing zeros trimmed. Zero renders as
// the literal "0 Bytes".
func FormatBytes(n int64) string {
	if n == 0 {
		return "0 Bytes"
	}
	value := float64(n)
	unit := 0
	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}
	s := strconv.FormatFloat(value, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s + " " + byteUnits[unit]
}

// Summarize renders records as a human-readable report: a header line with
// the file count and scan mode, a total-size line, then one line per
// record. Paths are shown relative to basePath when it is non-empty.
func Summarize(records []Record, basePath string, recursive bool) string {
	mode := "non-recursive"
	if recursive {
		mode = "recursive"
	}

	var total int64
	for _, r := range records {
		total += r.Size
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d image file(s) (%s scan)\n", len(records), mode)
	fmt.Fprintf(&b, "Total size: %s\n", FormatBytes(total))

	for _, r := range records {
		display := r.Path
		if basePath != "" {
			if rel, err := filepath.Rel(basePath, r.Path); err == nil {
				display = rel
			}
		}

		dims := "Unknown dimensions"
		if r.HasDimensions() {
			dims = fmt.Sprintf("%dx%d", r.Width, r.Height)
		}

		fmt.Fprintf(&b, "\n%s - %s, %s", display, dims, FormatBytes(r.Size))
		if r.Type != "" {
			fmt.Fprintf(&b, " (%s)", r.Type)
		}
	}
	return b.String()
}

// Serialize returns the structured form of records for machine
// consumption: the full record list when withMetadata is set, bare path
// strings otherwise.
func Serialize(records []Record, withMetadata bool) interface{} {
	if withMetadata {
		return records
	}
	paths := make([]string, len(records))
	for i, r := range records {
		paths[i] = r.Path
	}
	return paths
}
