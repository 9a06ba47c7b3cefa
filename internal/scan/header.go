package scan

import (
	"encoding/binary"
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	// Register the stdlib decoders used by image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	// Register the extended decoders from golang.org/x/image.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// readHeader parses the image header at path and returns its pixel
// dimensions and short format tag. Only the header is read; pixel data is
// never decoded.
func readHeader(path, ext string) (width, height int, typ string, err error) {
	switch ext {
	case ".svg":
		return readSVGHeader(path)
	case ".ico":
		return readICOHeader(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, 0, "", err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, "", err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, "", fmt.Errorf("non-positive dimensions %dx%d", cfg.Width, cfg.Height)
	}
	if format == "jpeg" {
		format = "jpg"
	}
	return cfg.Width, cfg.Height, format, nil
}

// readSVGHeader pulls dimensions from the root <svg> element: width/height
// attributes when declared, the viewBox otherwise.
func readSVGHeader(path string) (int, int, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, "", err
	}
	defer f.Close()

	// Only the document prologue is relevant; cap the read so a huge
	// non-SVG file with an .svg extension cannot stall the scan.
	dec := xml.NewDecoder(io.LimitReader(f, 1<<20))
	for {
		tok, err := dec.Token()
		if err != nil {
			return 0, 0, "", fmt.Errorf("no svg root element: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "svg" {
			return 0, 0, "", fmt.Errorf("unexpected root element <%s>", start.Name.Local)
		}

		var widthAttr, heightAttr, viewBox string
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "width":
				widthAttr = attr.Value
			case "height":
				heightAttr = attr.Value
			case "viewBox":
				viewBox = attr.Value
			}
		}

		w := parseSVGLength(widthAttr)
		h := parseSVGLength(heightAttr)
		if w > 0 && h > 0 {
			return w, h, "svg", nil
		}
		if w, h, ok := parseViewBox(viewBox); ok {
			return w, h, "svg", nil
		}
		return 0, 0, "", errors.New("svg declares no usable dimensions")
	}
}

// parseSVGLength converts an SVG length ("640", "640px", "64.5") to whole
// pixels. Percentages and other relative units yield 0.
func parseSVGLength(s string) int {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0
	}
	return int(math.Round(v))
}

// parseViewBox extracts width/height from the third and fourth viewBox
// fields ("min-x min-y width height").
func parseViewBox(s string) (int, int, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	if len(fields) != 4 {
		return 0, 0, false
	}
	w := parseSVGLength(fields[2])
	h := parseSVGLength(fields[3])
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// readICOHeader parses the ICONDIR header and the first directory entry.
// A stored dimension byte of 0 means 256 pixels.
func readICOHeader(path string) (int, int, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, "", err
	}
	defer f.Close()

	// ICONDIR (6 bytes) + first ICONDIRENTRY (16 bytes).
	var header [22]byte
	if _, err := io.ReadFull(f, header[:]); err != nil {
		return 0, 0, "", fmt.Errorf("truncated ico header: %w", err)
	}

	if binary.LittleEndian.Uint16(header[0:2]) != 0 {
		return 0, 0, "", errors.New("bad ico reserved field")
	}
	if imageType := binary.LittleEndian.Uint16(header[2:4]); imageType != 1 {
		return 0, 0, "", fmt.Errorf("unsupported ico image type %d", imageType)
	}
	if count := binary.LittleEndian.Uint16(header[4:6]); count == 0 {
		return 0, 0, "", errors.New("ico contains no images")
	}

	width := int(header[6])
	height := int(header[7])
	if width == 0 {
		width = 256
	}
	if height == 0 {
		height = 256
	}
	return width, height, "ico", nil
}
