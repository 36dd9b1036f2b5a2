// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stencil

import "image"

// carveDarkPockets turns locally dark pockets that the silhouette fully
// encloses into interior cut-outs. A pocket pixel has luminance below
// t-delta and is currently material. A pocket is carved only when its
// connected region touches neither a void pixel nor the image border and
// a luminance step of at least delta separates it from the material
// around it; the step requirement keeps smooth gradients inside thick
// shapes solid, and a uniformly dark silhouette borders void so it never
// loses its body. Under light-material polarity the pocket set is already
// void and the pass is a no-op.
func carveDarkPockets(mask, gray *image.Gray, t, delta int) *image.Gray {
	limit := t - delta
	if limit <= 0 {
		return mask
	}
	pockets := and(thresholdBelow(gray, limit), mask)
	if MaterialCount(pockets) == 0 {
		return mask
	}

	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	inPocket := func(x, y int) bool {
		return pockets.Pix[y*pockets.Stride+x] != void
	}

	// Flood outward-connected pockets: seed from pocket pixels adjacent
	// to void or to the border, spread through the pocket set. Whatever
	// the flood never reaches is enclosed.
	seen := make([]bool, w*h)
	var queue []int
	push := func(x, y int) {
		if x < 0 || y < 0 || x >= w || y >= h {
			return
		}
		if i := y*w + x; !seen[i] && inPocket(x, y) {
			seen[i] = true
			queue = append(queue, i)
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !inPocket(x, y) {
				continue
			}
			if x == 0 || y == 0 || x == w-1 || y == h-1 || touchesVoid(mask, x, y) {
				push(x, y)
			}
		}
	}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		x, y := i%w, i/w
		push(x-1, y)
		push(x+1, y)
		push(x, y-1)
		push(x, y+1)
	}

	out := cloneMask(mask)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if i := y*w + x; inPocket(x, y) && !seen[i] {
				carveComponent(out, pockets, gray, seen, x, y, delta)
			}
		}
	}
	return out
}

// carveComponent collects the enclosed pocket component at (x, y), marks
// it seen, and voids it in out when the material rim around it is at
// least delta brighter than the component's brightest pixel.
func carveComponent(out, pockets, gray *image.Gray, seen []bool, x, y, delta int) {
	b := pockets.Bounds()
	w, h := b.Dx(), b.Dy()

	comp := []int{y*w + x}
	seen[y*w+x] = true
	compMax := int(gray.Pix[y*gray.Stride+x])
	rimMin := 256
	for n := 0; n < len(comp); n++ {
		cx, cy := comp[n]%w, comp[n]/w
		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			nx, ny := cx+d[0], cy+d[1]
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			if pockets.Pix[ny*pockets.Stride+nx] == void {
				if v := int(gray.Pix[ny*gray.Stride+nx]); v < rimMin {
					rimMin = v
				}
				continue
			}
			if i := ny*w + nx; !seen[i] {
				seen[i] = true
				comp = append(comp, i)
				if v := int(gray.Pix[ny*gray.Stride+nx]); v > compMax {
					compMax = v
				}
			}
		}
	}

	if rimMin-compMax < delta {
		return
	}
	for _, i := range comp {
		out.Pix[(i/w)*out.Stride+i%w] = void
	}
}

// touchesVoid reports whether any 4-neighbour of (x, y) inside the mask
// is void. Border adjacency is the caller's concern.
func touchesVoid(m *image.Gray, x, y int) bool {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()
	if x > 0 && m.Pix[y*m.Stride+x-1] == void {
		return true
	}
	if x < w-1 && m.Pix[y*m.Stride+x+1] == void {
		return true
	}
	if y > 0 && m.Pix[(y-1)*m.Stride+x] == void {
		return true
	}
	if y < h-1 && m.Pix[(y+1)*m.Stride+x] == void {
		return true
	}
	return false
}
