// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vector

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/pdiddy/vyt-pipe/pkg/types"
)

// smoothContour applies a circular Gaussian moving average to the contour
// points. The kernel spans roughly the anti-alias radius, so 1px staircase
// steps are rounded off while the overall shape and enclosed area stay put.
// Smoothing never merges or splits contours; each is filtered in isolation.
func smoothContour(c types.Contour, radius float64) types.Contour {
	if radius <= 0 || len(c.Points) < 3 {
		return c
	}
	pts := densify(c.Points)
	if len(pts) < 4 {
		return c
	}
	half := max(1, int(math.Round(radius)))
	kernel := make([]float64, 2*half+1)
	sigma := math.Max(radius/1.5, 0.5)
	for i := range kernel {
		d := float64(i - half)
		kernel[i] = math.Exp(-d * d / (2 * sigma * sigma))
	}
	floats.Scale(1/floats.Sum(kernel), kernel)

	n := len(pts)
	out := make([]types.Point, n)
	for i := range pts {
		var x, y float64
		for k, wgt := range kernel {
			p := pts[((i+k-half)%n+n)%n]
			x += wgt * p.X
			y += wgt * p.Y
		}
		out[i] = types.Point{X: x, Y: y}
	}
	return types.Contour{Points: dedupe(out), Role: c.Role}
}

// densify inserts evenly spaced points along edges longer than one pixel,
// so the moving average sees a uniform sampling of the boundary rather
// than just its corners. Without it a long straight edge contributes two
// points and the filter would drag them toward each other.
func densify(pts []types.Point) []types.Point {
	n := len(pts)
	out := make([]types.Point, 0, n)
	for i, p := range pts {
		q := pts[(i+1)%n]
		out = append(out, p)
		steps := int(p.Distance(q))
		for s := 1; s < steps; s++ {
			f := float64(s) / float64(steps)
			out = append(out, types.Point{X: p.X + (q.X-p.X)*f, Y: p.Y + (q.Y-p.Y)*f})
		}
	}
	return out
}

// dedupe removes consecutive near-coincident points, including across the
// closing edge.
func dedupe(pts []types.Point) []types.Point {
	const eps = 1e-6
	out := pts[:0:0]
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1].Distance(p) < eps {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0].Distance(out[len(out)-1]) < eps {
		out = out[:len(out)-1]
	}
	return out
}
