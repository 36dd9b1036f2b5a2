// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stencil

import "image"

// ReinforceBridges thickens material regions thinner than minBridgePx so
// the cut stencil holds together. minBridgePx is the minimum bridge width
// in mask pixels, derived from the printed bridge width and the layout
// content scale; 0 is a no-op. Reinforcement is local: dilation is only
// applied around pixels whose distance to the nearest void is below half
// the minimum bridge width, so already-sturdy areas keep their shape.
func ReinforceBridges(m *image.Gray, minBridgePx int) *image.Gray {
	if minBridgePx <= 0 {
		return m
	}
	dist := distanceTransform(m)

	thinLimit := max(1, minBridgePx/2)
	thin := newMask(m.Bounds().Dx(), m.Bounds().Dy())
	found := false
	for i, v := range m.Pix {
		if v != void && dist[i] < thinLimit {
			thin.Pix[i] = material
			found = true
		}
	}
	if !found {
		return m
	}

	radius := max(1, (minBridgePx+1)/2)
	dilated := dilate(m, radius)
	region := dilate(thin, radius)

	out := cloneMask(m)
	for i := range out.Pix {
		if region.Pix[i] != void {
			out.Pix[i] = dilated.Pix[i]
		}
	}
	return out
}

// distanceTransform returns, per pixel, the chessboard distance to the
// nearest void pixel (0 for void pixels). Two-pass sweep.
func distanceTransform(m *image.Gray) []int {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()
	const inf = 1 << 30
	dist := make([]int, w*h)

	at := func(x, y int) int { return dist[y*w+x] }

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if m.Pix[y*m.Stride+x] == void {
				dist[y*w+x] = 0
				continue
			}
			d := inf
			// Border pixels are adjacent to implicit void outside the image.
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				d = 1
			}
			if x > 0 {
				d = min(d, at(x-1, y)+1)
			}
			if y > 0 {
				d = min(d, at(x, y-1)+1)
				if x > 0 {
					d = min(d, at(x-1, y-1)+1)
				}
				if x < w-1 {
					d = min(d, at(x+1, y-1)+1)
				}
			}
			dist[y*w+x] = d
		}
	}
	for y := h - 1; y >= 0; y-- {
		for x := w - 1; x >= 0; x-- {
			if m.Pix[y*m.Stride+x] == void {
				continue
			}
			d := at(x, y)
			if x < w-1 {
				d = min(d, at(x+1, y)+1)
			}
			if y < h-1 {
				d = min(d, at(x, y+1)+1)
				if x < w-1 {
					d = min(d, at(x+1, y+1)+1)
				}
				if x > 0 {
					d = min(d, at(x-1, y+1)+1)
				}
			}
			dist[y*w+x] = d
		}
	}
	return dist
}
