// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stencil turns a normalized grayscale image into the binary
// cut/keep mask for a papercut panel.
//
// Extraction runs in fixed order: pre-threshold smoothing and contrast
// stretch, global luminance thresholding (or an automatic threshold from
// the histogram), polarity resolution, a local-contrast detail pass,
// dilation and gap-closing morphology, then carving of enclosed dark
// pockets into interior cut-outs. Minimum-bridge reinforcement is a
// separate step (ReinforceBridges) because the bridge width in pixels
// depends on the print scale, which is only known after layout.
// All parameters arrive in an immutable StencilConfig so concurrent runs
// never share state.
package stencil

import (
	"image"

	"github.com/pdiddy/vyt-pipe/internal/normalize"
	"github.com/pdiddy/vyt-pipe/pkg/types"
)

// Diagnostics records how the extraction decisions fell for one run. The
// auto polarity heuristic is ambiguous near 50% coverage, so the inputs to
// its decision are always surfaced for the caller.
type Diagnostics struct {
	// ThresholdUsed is the luminance threshold applied, after automatic
	// selection when the configured threshold is 0.
	ThresholdUsed int `json:"threshold_used" yaml:"threshold_used"`

	// MaterialFraction is the fraction of pixels the threshold classified
	// as material before polarity resolution.
	MaterialFraction float64 `json:"material_fraction" yaml:"material_fraction"`

	// BorderMean and CenterMean are the average luminances of the image
	// border band and interior, extra context for polarity overrides.
	BorderMean float64 `json:"border_mean" yaml:"border_mean"`
	CenterMean float64 `json:"center_mean" yaml:"center_mean"`

	// Flipped reports whether the mask polarity was inverted.
	Flipped bool `json:"flipped" yaml:"flipped"`

	// MaterialPixels is the final count of material pixels.
	MaterialPixels int `json:"material_pixels" yaml:"material_pixels"`
}

// Run extracts the stencil mask from a normalized grayscale image.
// It returns *types.EmptyMaskError when no material pixels survive.
func Run(gray *image.Gray, cfg types.StencilConfig) (*image.Gray, Diagnostics, error) {
	prepared := prepare(gray, cfg)

	t := cfg.Threshold
	if t <= 0 {
		t = autoThreshold(prepared)
	}

	base := threshold(prepared, t)
	fraction := maskFraction(base)
	borderMean, centerMean := borderAndCenterMeans(prepared)

	diag := Diagnostics{
		ThresholdUsed:    t,
		MaterialFraction: fraction,
		BorderMean:       borderMean,
		CenterMean:       centerMean,
	}

	// Polarity: a stencil is mostly negative space, so when the light
	// region is the majority the dark minority is the design.
	mask := base
	switch cfg.Invert {
	case types.InvertDark:
		mask = invert(base)
		diag.Flipped = true
	case types.InvertLight:
		// keep as classified
	default: // auto
		if fraction > 0.5 {
			mask = invert(base)
			diag.Flipped = true
		}
	}

	if cfg.DetailDelta > 0 && cfg.DetailDelta <= 255 {
		mask = or(mask, detailPass(prepared, cfg.DetailDelta))
	}

	mask = dilate(mask, cfg.DilatePx)
	mask = closing(mask, cfg.DetailJoinPx)
	if cfg.DetailDelta > 0 && cfg.DetailDelta <= 255 {
		mask = carveDarkPockets(mask, prepared, t, cfg.DetailDelta)
	}

	diag.MaterialPixels = MaterialCount(mask)
	if diag.MaterialPixels == 0 {
		return nil, diag, &types.EmptyMaskError{
			Threshold:   cfg.Threshold,
			DetailDelta: cfg.DetailDelta,
			Invert:      cfg.Invert,
		}
	}
	return mask, diag, nil
}

// prepare applies the pre-threshold blur and contrast stretch.
func prepare(gray *image.Gray, cfg types.StencilConfig) *image.Gray {
	out := gray
	if cfg.Blur > 0 {
		out = normalize.GaussianBlur(out, cfg.Blur)
	}
	return normalize.Autocontrast(out)
}

// detailPass flags fine dark detail that global thresholding misses: a
// pixel counts when its 3x3 neighbourhood spans at least delta luminance
// levels and the pixel itself sits at the dark end of that neighbourhood.
// The dark-end gate keeps pixels merely adjacent to strong strokes from
// joining the material set, which would bridge deliberate gaps.
func detailPass(gray *image.Gray, delta int) *image.Gray {
	rng := localRange(gray, 1)
	mins := localMin(gray, 1)
	out := image.NewGray(gray.Bounds())
	for i := range gray.Pix {
		if int(rng.Pix[i]) >= delta && int(gray.Pix[i])-int(mins.Pix[i]) <= 2 {
			out.Pix[i] = material
		}
	}
	return out
}

// maskFraction returns the material share of the mask.
func maskFraction(m *image.Gray) float64 {
	total := m.Bounds().Dx() * m.Bounds().Dy()
	if total == 0 {
		return 0
	}
	return float64(MaterialCount(m)) / float64(total)
}

// borderAndCenterMeans returns the average luminance of a 12% border band
// and of the interior it encloses.
func borderAndCenterMeans(gray *image.Gray) (border, center float64) {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return 0, 0
	}
	bw := max(1, int(float64(w)*0.12+0.5))
	bh := max(1, int(float64(h)*0.12+0.5))

	var borderSum, centerSum float64
	var borderN, centerN int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := float64(gray.Pix[y*gray.Stride+x])
			if x < bw || x >= w-bw || y < bh || y >= h-bh {
				borderSum += v
				borderN++
			} else {
				centerSum += v
				centerN++
			}
		}
	}
	if borderN > 0 {
		border = borderSum / float64(borderN)
	}
	if centerN > 0 {
		center = centerSum / float64(centerN)
	} else {
		center = border
	}
	return border, center
}
