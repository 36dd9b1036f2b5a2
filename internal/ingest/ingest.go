// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest loads source raster images for the panel pipeline.
//
// Regular PNG/JPEG/GIF paths are decoded directly. Text assets with an
// .xbase64 extension hold a base64 payload (optionally a full data URI);
// they are decoded to bytes first so binary-free repositories can still
// carry source images.
package ingest

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/vyt-pipe/pkg/types"
)

// Source is a decoded input image plus the metadata the pipeline needs.
type Source struct {
	Image  image.Image
	Format string
	// DPI is the embedded print density, or 0 when the file carries none.
	DPI int
}

// Load decodes the image at path. It returns an *types.InvalidImageError
// when the file cannot be read, cannot be decoded, or has zero area.
func Load(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.InvalidImageError{Path: path, Reason: "reading file", Err: err}
	}

	if strings.EqualFold(filepath.Ext(path), ".xbase64") {
		data, err = decodeXBase64(data)
		if err != nil {
			return nil, &types.InvalidImageError{Path: path, Reason: "decoding xbase64 payload", Err: err}
		}
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &types.InvalidImageError{Path: path, Reason: "decoding image", Err: err}
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, &types.InvalidImageError{
			Path:   path,
			Reason: fmt.Sprintf("zero-area %s image (%dx%d)", format, b.Dx(), b.Dy()),
		}
	}

	return &Source{Image: img, Format: format, DPI: detectDPI(format, data)}, nil
}

// decodeXBase64 strips whitespace and an optional data URI header, then
// base64-decodes the payload.
func decodeXBase64(raw []byte) ([]byte, error) {
	cleaned := strings.Join(strings.Fields(string(raw)), "")
	if cleaned == "" {
		return nil, fmt.Errorf("empty payload")
	}
	if strings.HasPrefix(cleaned, "data:") {
		_, payload, ok := strings.Cut(cleaned, ",")
		if !ok {
			return nil, fmt.Errorf("data URI without payload separator")
		}
		cleaned = payload
	}
	decoded, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("base64 decode: %w", err)
	}
	return decoded, nil
}

// detectDPI extracts the embedded print density. The stdlib decoders
// discard physical-dimension metadata, so the relevant chunks are read
// directly: pHYs for PNG, the JFIF APP0 segment for JPEG.
func detectDPI(format string, data []byte) int {
	switch format {
	case "png":
		return pngDPI(data)
	case "jpeg":
		return jpegDPI(data)
	}
	return 0
}

const mmPerInch = 25.4

func pngDPI(data []byte) int {
	// Chunks start after the 8-byte signature: length, type, data, CRC.
	pos := 8
	for pos+12 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		ctype := string(data[pos+4 : pos+8])
		if ctype == "pHYs" && length == 9 && pos+8+9 <= len(data) {
			body := data[pos+8 : pos+17]
			ppuX := binary.BigEndian.Uint32(body[0:4])
			unit := body[8]
			if unit == 1 && ppuX > 0 { // pixels per metre
				return int(math.Round(float64(ppuX) * mmPerInch / 1000.0))
			}
			return 0
		}
		if ctype == "IDAT" || ctype == "IEND" {
			return 0
		}
		pos += 12 + length
	}
	return 0
}

func jpegDPI(data []byte) int {
	// Scan markers for the JFIF APP0 segment.
	pos := 2
	for pos+4 <= len(data) {
		if data[pos] != 0xFF {
			return 0
		}
		marker := data[pos+1]
		if marker == 0xD8 || (marker >= 0xD0 && marker <= 0xD9) {
			pos += 2
			continue
		}
		segLen := int(binary.BigEndian.Uint16(data[pos+2 : pos+4]))
		if marker == 0xE0 && segLen >= 14 && pos+4+segLen-2 <= len(data) {
			seg := data[pos+4 : pos+2+segLen]
			if bytes.HasPrefix(seg, []byte("JFIF\x00")) {
				unit := seg[7]
				density := int(binary.BigEndian.Uint16(seg[8:10]))
				switch unit {
				case 1: // dots per inch
					return density
				case 2: // dots per cm
					return int(math.Round(float64(density) * 2.54))
				}
			}
			return 0
		}
		if marker == 0xDA { // start of scan, no metadata past here
			return 0
		}
		pos += 2 + segLen
	}
	return 0
}
