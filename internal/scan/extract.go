package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ironsheep/utility-tools-mcp/internal/diag"
)

// Record describes one scanned image file.
//
// Size is always populated. Width, Height and Type are set together when
// the header parse succeeds and are all absent otherwise; a size-only
// Record means "image by extension, unreadable header".
type Record struct {
	// Path is the absolute file-system path. Unique within one scan.
	Path string `json:"path"`

	// Width and Height are the pixel dimensions from the image header.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Type is the short format tag: "jpg", "png", "gif", "bmp", "webp",
	// "svg", "tiff" or "ico".
	Type string `json:"type,omitempty"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`
}

// HasDimensions reports whether the header parse succeeded for this record.
func (r Record) HasDimensions() bool {
	return r.Type != ""
}

// imageExtensions is the fixed allow-list of extensions treated as images.
// There is no content-sniffing fallback for other extensions.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".svg":  true,
	".tiff": true,
	".ico":  true,
}

// Extractor produces Records for individual files.
type Extractor struct {
	sink diag.Sink
}

// NewExtractor creates an Extractor reporting diagnostics through sink.
func NewExtractor(sink diag.Sink) *Extractor {
	return &Extractor{sink: sink}
}

// Extract inspects the file at path and returns its Record.
//
// The second return value is false when no record applies: the entry is
// not a regular file, its extension is not on the image allow-list, or it
// cannot be stat'd at all (the failure is reported to the sink, never
// surfaced as an error). A matching file whose header cannot be parsed
// still yields a record, with only Size populated.
func (e *Extractor) Extract(path string) (Record, bool) {
	info, err := os.Stat(path)
	if err != nil {
		e.sink.Event("scan: cannot stat %s: %v", path, err)
		return Record{}, false
	}
	if !info.Mode().IsRegular() {
		return Record{}, false
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !imageExtensions[ext] {
		return Record{}, false
	}

	rec := Record{Path: path, Size: info.Size()}

	width, height, typ, err := readHeader(path, ext)
	if err != nil {
		e.sink.Event("scan: unreadable image header in %s: %v", path, err)
		return rec, true
	}
	rec.Width = width
	rec.Height = height
	rec.Type = typ
	return rec, true
}
