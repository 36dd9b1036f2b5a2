// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"fmt"
	"math"
	"strings"
)

const mmPerInch = 25.4

// MMToPx converts millimetres to whole pixels at the given DPI.
func MMToPx(mm float64, dpi int) int {
	return int(math.Round(mm * float64(dpi) / mmPerInch))
}

// PxToMM converts pixels to millimetres at the given DPI.
func PxToMM(px int, dpi int) float64 {
	if dpi <= 0 || px <= 0 {
		return 0
	}
	return float64(px) / float64(dpi) * mmPerInch
}

// PageSize is a physical page in millimetres, portrait orientation.
type PageSize struct {
	Name     string
	WidthMM  float64
	HeightMM float64
}

var pageSizes = map[string]PageSize{
	"A4":     {Name: "A4", WidthMM: 210, HeightMM: 297},
	"A3":     {Name: "A3", WidthMM: 297, HeightMM: 420},
	"LETTER": {Name: "Letter", WidthMM: 215.9, HeightMM: 279.4},
}

// LookupPage resolves a page size by case-insensitive name.
func LookupPage(name string) (PageSize, error) {
	if ps, ok := pageSizes[strings.ToUpper(name)]; ok {
		return ps, nil
	}
	return PageSize{}, fmt.Errorf("unknown page size %q (supported: A4, A3, Letter)", name)
}
