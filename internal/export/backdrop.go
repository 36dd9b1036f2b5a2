// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/cenkalti/dominantcolor"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Backdrop resolves the panel background colour. spec is either a #RRGGBB
// hex string or "auto", in which case a muted tone is derived from the
// source image's dominant colour so the white silhouette stays readable.
func Backdrop(spec string, src image.Image) (color.RGBA, error) {
	if strings.EqualFold(strings.TrimSpace(spec), "auto") {
		if src == nil {
			return color.RGBA{R: 0x8E, G: 0x8E, B: 0x8E, A: 0xFF}, nil
		}
		return mutedDominant(src), nil
	}
	c, err := colorful.Hex(strings.TrimSpace(spec))
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid background %q: %w", spec, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
}

// mutedDominant desaturates the dominant colour and pins its lightness to
// the mid range, keeping white material visible against it.
func mutedDominant(src image.Image) color.RGBA {
	dom := dominantcolor.Find(src)
	c, _ := colorful.MakeColor(color.NRGBA{R: dom.R, G: dom.G, B: dom.B, A: 0xFF})
	h, s, _ := c.Hsl()
	muted := colorful.Hsl(h, s*0.35, 0.55)
	r, g, b := muted.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}
