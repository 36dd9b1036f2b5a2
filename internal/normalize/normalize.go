// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize resamples and denoises source rasters into the
// canonical grayscale form the extraction stage works on.
//
// The source is upscaled by the larger of the configured scale factor and
// the target-DPI ratio, Gaussian-smoothed at the upscaled size, then
// brought back to the original dimensions. Smoothing at a higher
// resolution suppresses scan noise and staircasing without fattening
// strokes the way an equivalent blur at native size would.
package normalize

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"gonum.org/v1/gonum/floats"

	"github.com/pdiddy/vyt-pipe/pkg/types"
)

// Result carries the normalized image and the parameters actually applied,
// for diagnostics.
type Result struct {
	Gray *image.Gray
	// Upscale is the effective factor the working copy was scaled by.
	Upscale float64
	// AppliedBlur is the Gaussian radius applied at the upscaled size
	// (0 when smoothing was skipped).
	AppliedBlur float64
}

// Run produces the normalized grayscale image for one source. sourceDPI is
// the embedded print density of the input, or 0 when unknown.
func Run(src image.Image, sourceDPI int, cfg types.NormalizeConfig) Result {
	gray := ToGray(src)

	upscale := math.Max(1.0, cfg.Scale)
	if sourceDPI > 0 && cfg.TargetDPI > 0 {
		upscale = math.Max(upscale, float64(cfg.TargetDPI)/float64(sourceDPI))
	}

	blur := cfg.Blur / math.Max(upscale, 1.0)
	if sourceDPI > 0 && cfg.TargetDPI > 0 && sourceDPI >= cfg.TargetDPI {
		// The scan already has the resolution smoothing would fake.
		blur = 0
	}
	if blur < 0.05 {
		blur = 0
	}

	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	targetW := max(1, int(math.Round(float64(w)*upscale)))
	targetH := max(1, int(math.Round(float64(h)*upscale)))

	if targetW == w && targetH == h && blur == 0 {
		return Result{Gray: gray, Upscale: 1.0}
	}

	working := gray
	if targetW != w || targetH != h {
		working = Resize(gray, targetW, targetH)
	}
	if blur > 0 {
		working = GaussianBlur(working, blur)
	}
	if targetW != w || targetH != h {
		working = Resize(working, w, h)
	}

	return Result{Gray: working, Upscale: upscale, AppliedBlur: blur}
}

// ToGray converts any image to 8-bit grayscale luminance.
func ToGray(src image.Image) *image.Gray {
	if g, ok := src.(*image.Gray); ok {
		out := image.NewGray(image.Rect(0, 0, g.Bounds().Dx(), g.Bounds().Dy()))
		xdraw.Draw(out, out.Bounds(), g, g.Bounds().Min, xdraw.Src)
		return out
	}
	b := src.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(out, out.Bounds(), src, b.Min, xdraw.Src)
	return out
}

// Resize scales a grayscale image to the given dimensions with Catmull-Rom
// resampling.
func Resize(src *image.Gray, w, h int) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(out, out.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return out
}

// Autocontrast linearly stretches the occupied luminance range to 0..255.
// A flat image is returned unchanged.
func Autocontrast(src *image.Gray) *image.Gray {
	lo, hi := 255, 0
	for _, v := range src.Pix {
		if int(v) < lo {
			lo = int(v)
		}
		if int(v) > hi {
			hi = int(v)
		}
	}
	if hi <= lo {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	scale := 255.0 / float64(hi-lo)
	out := image.NewGray(src.Bounds())
	for i, v := range src.Pix {
		out.Pix[i] = uint8(math.Round(float64(int(v)-lo) * scale))
	}
	return out
}

// GaussianBlur applies a separable Gaussian filter with the given sigma.
func GaussianBlur(src *image.Gray, sigma float64) *image.Gray {
	if sigma <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	kernel := gaussianKernel(sigma)
	horizontal := convolve(src, kernel, true)
	return convolve(horizontal, kernel, false)
}

// gaussianKernel builds a normalized 1D kernel truncated at three sigma.
func gaussianKernel(sigma float64) []float64 {
	radius := max(1, int(math.Ceil(sigma*3)))
	kernel := make([]float64, 2*radius+1)
	twoSigmaSq := 2 * sigma * sigma
	for i := range kernel {
		d := float64(i - radius)
		kernel[i] = math.Exp(-d * d / twoSigmaSq)
	}
	floats.Scale(1/floats.Sum(kernel), kernel)
	return kernel
}

func convolve(src *image.Gray, kernel []float64, horizontal bool) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	radius := len(kernel) / 2
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0.0
			for k, weight := range kernel {
				sx, sy := x, y
				if horizontal {
					sx = min(max(x+k-radius, 0), w-1)
				} else {
					sy = min(max(y+k-radius, 0), h-1)
				}
				sum += weight * float64(src.Pix[sy*src.Stride+sx])
			}
			out.Pix[y*out.Stride+x] = uint8(math.Round(math.Min(255, math.Max(0, sum))))
		}
	}
	return out
}
