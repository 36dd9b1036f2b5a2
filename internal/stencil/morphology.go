// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stencil

import "image"

// Binary masks are *image.Gray restricted to {0, 255}. Material pixels are
// 255, void pixels 0.

const (
	void     = 0
	material = 255
)

// newMask allocates an all-void mask with the same dimensions as src.
func newMask(w, h int) *image.Gray {
	return image.NewGray(image.Rect(0, 0, w, h))
}

// cloneMask returns a copy of m.
func cloneMask(m *image.Gray) *image.Gray {
	out := image.NewGray(m.Bounds())
	copy(out.Pix, m.Pix)
	return out
}

// threshold returns a mask that is material where the luminance is >= t.
func threshold(gray *image.Gray, t int) *image.Gray {
	out := image.NewGray(gray.Bounds())
	for i, v := range gray.Pix {
		if int(v) >= t {
			out.Pix[i] = material
		}
	}
	return out
}

// thresholdBelow returns a mask that is material where the luminance is
// strictly below t.
func thresholdBelow(gray *image.Gray, t int) *image.Gray {
	out := image.NewGray(gray.Bounds())
	for i, v := range gray.Pix {
		if int(v) < t {
			out.Pix[i] = material
		}
	}
	return out
}

// invert flips material and void.
func invert(m *image.Gray) *image.Gray {
	out := image.NewGray(m.Bounds())
	for i, v := range m.Pix {
		if v == void {
			out.Pix[i] = material
		}
	}
	return out
}

// or returns the union of two masks of equal dimensions.
func or(a, b *image.Gray) *image.Gray {
	out := image.NewGray(a.Bounds())
	for i := range a.Pix {
		if a.Pix[i] != void || b.Pix[i] != void {
			out.Pix[i] = material
		}
	}
	return out
}

// and returns the intersection of two masks of equal dimensions.
func and(a, b *image.Gray) *image.Gray {
	out := image.NewGray(a.Bounds())
	for i := range a.Pix {
		if a.Pix[i] != void && b.Pix[i] != void {
			out.Pix[i] = material
		}
	}
	return out
}

// dilate grows material by a square structuring element of the given
// radius. Radius 0 is a no-op copy.
func dilate(m *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		return cloneMask(m)
	}
	return rankFilter(m, radius, true)
}

// erode shrinks material by a square structuring element of the given
// radius. Radius 0 is a no-op copy.
func erode(m *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		return cloneMask(m)
	}
	return rankFilter(m, radius, false)
}

// closing is dilation followed by erosion; it bridges gaps up to roughly
// 2*radius wide without growing the silhouette.
func closing(m *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		return cloneMask(m)
	}
	return erode(dilate(m, radius), radius)
}

// rankFilter implements max (dilate) or min (erode) over a square window.
// Runs as two 1D passes since the square element is separable.
func rankFilter(m *image.Gray, radius int, maxRank bool) *image.Gray {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()
	tmp := image.NewGray(b)
	out := image.NewGray(b)

	for y := 0; y < h; y++ {
		row := m.Pix[y*m.Stride : y*m.Stride+w]
		for x := 0; x < w; x++ {
			v := rankWindow(row, x, radius, maxRank)
			tmp.Pix[y*tmp.Stride+x] = v
		}
	}
	col := make([]uint8, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			col[y] = tmp.Pix[y*tmp.Stride+x]
		}
		for y := 0; y < h; y++ {
			out.Pix[y*out.Stride+x] = rankWindow(col, y, radius, maxRank)
		}
	}
	return out
}

func rankWindow(line []uint8, center, radius int, maxRank bool) uint8 {
	lo := max(0, center-radius)
	hi := min(len(line)-1, center+radius)
	v := line[lo]
	for i := lo + 1; i <= hi; i++ {
		if maxRank {
			if line[i] > v {
				v = line[i]
			}
		} else if line[i] < v {
			v = line[i]
		}
	}
	return v
}

// localRange returns per-pixel max-min luminance over a (2r+1) square
// neighbourhood, the local contrast measure behind the detail pass.
func localRange(gray *image.Gray, radius int) *image.Gray {
	maxed := rankFilter(gray, radius, true)
	mined := rankFilter(gray, radius, false)
	out := image.NewGray(gray.Bounds())
	for i := range out.Pix {
		out.Pix[i] = maxed.Pix[i] - mined.Pix[i]
	}
	return out
}

// localMin returns the per-pixel minimum over a (2r+1) square window.
func localMin(gray *image.Gray, radius int) *image.Gray {
	return rankFilter(gray, radius, false)
}

// MaterialCount returns the number of material pixels in the mask.
func MaterialCount(m *image.Gray) int {
	n := 0
	for _, v := range m.Pix {
		if v != void {
			n++
		}
	}
	return n
}
