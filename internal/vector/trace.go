// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vector

import (
	"image"
	"sort"

	"github.com/pdiddy/vyt-pipe/pkg/types"
)

// vertex is a lattice point on the pixel-boundary grid.
type vertex struct {
	X, Y int
}

// segment is a directed unit edge along a pixel boundary. Material always
// lies to the left of the travel direction, so outer boundaries come out
// counter-clockwise (negative shoelace area in y-down space) and hole
// boundaries clockwise.
type segment struct {
	from, to vertex
}

// traceBoundaries extracts all closed boundary loops from a binary mask.
// Pixels outside the mask are treated as void, so material touching the
// image edge still produces a closed contour.
func traceBoundaries(mask *image.Gray) []types.Contour {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()

	matAt := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return mask.Pix[y*mask.Stride+x] != 0
	}

	// Collect directed boundary segments, material on the left.
	var segs []segment
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !matAt(x, y) {
				continue
			}
			if !matAt(x, y-1) { // top edge, walk -x
				segs = append(segs, segment{vertex{x + 1, y}, vertex{x, y}})
			}
			if !matAt(x, y+1) { // bottom edge, walk +x
				segs = append(segs, segment{vertex{x, y + 1}, vertex{x + 1, y + 1}})
			}
			if !matAt(x-1, y) { // left edge, walk +y
				segs = append(segs, segment{vertex{x, y}, vertex{x, y + 1}})
			}
			if !matAt(x+1, y) { // right edge, walk -y
				segs = append(segs, segment{vertex{x + 1, y + 1}, vertex{x + 1, y}})
			}
		}
	}
	if len(segs) == 0 {
		return nil
	}

	// Index outgoing segments by start vertex. A vertex where two material
	// pixels touch diagonally has two outgoing segments; the stitcher
	// resolves it by preferring the sharpest left turn, which keeps the
	// diagonally-touching regions as separate loops.
	bySrc := make(map[vertex][]int, len(segs))
	for i, s := range segs {
		bySrc[s.from] = append(bySrc[s.from], i)
	}

	used := make([]bool, len(segs))
	var contours []types.Contour

	for start := range segs {
		if used[start] {
			continue
		}
		loop := stitchLoop(segs, bySrc, used, start)
		if len(loop) < 3 {
			continue
		}
		c := types.Contour{Points: loop}
		if c.Clockwise() {
			c.Role = types.RoleHole
		} else {
			c.Role = types.RoleOuter
		}
		contours = append(contours, c)
	}

	// Deterministic order: largest outer first, then by position.
	sort.SliceStable(contours, func(i, j int) bool {
		if contours[i].Role != contours[j].Role {
			return contours[i].Role == types.RoleOuter
		}
		return contours[i].Area() > contours[j].Area()
	})
	return contours
}

// stitchLoop follows segments from segs[start] until the loop closes,
// collapsing collinear runs as it goes.
func stitchLoop(segs []segment, bySrc map[vertex][]int, used []bool, start int) []types.Point {
	var pts []types.Point
	cur := start
	origin := segs[start].from
	for {
		used[cur] = true
		s := segs[cur]
		pts = appendCorner(pts, s.from)
		if s.to == origin {
			break
		}
		next := -1
		candidates := bySrc[s.to]
		if len(candidates) == 1 {
			if !used[candidates[0]] {
				next = candidates[0]
			}
		} else {
			next = pickLeftmost(segs, candidates, used, s)
		}
		if next < 0 {
			break
		}
		cur = next
	}
	return collapseClosing(pts)
}

// pickLeftmost chooses the unused outgoing segment turning most sharply
// left relative to the incoming direction.
func pickLeftmost(segs []segment, candidates []int, used []bool, incoming segment) int {
	dx := incoming.to.X - incoming.from.X
	dy := incoming.to.Y - incoming.from.Y
	best, bestRank := -1, -3
	for _, idx := range candidates {
		if used[idx] {
			continue
		}
		s := segs[idx]
		ndx := s.to.X - s.from.X
		ndy := s.to.Y - s.from.Y
		// Cross product in y-down space: negative = left turn.
		cross := dx*ndy - dy*ndx
		rank := 0
		switch {
		case cross < 0:
			rank = 2 // left turn
		case cross == 0 && (ndx != -dx || ndy != -dy):
			rank = 1 // straight on
		default:
			rank = -1 // right turn or reversal
		}
		if rank > bestRank {
			best, bestRank = idx, rank
		}
	}
	return best
}

// appendCorner adds v, merging it into the previous point when the path
// continues in the same direction.
func appendCorner(pts []types.Point, v vertex) []types.Point {
	p := types.Point{X: float64(v.X), Y: float64(v.Y)}
	n := len(pts)
	if n >= 2 {
		a, b := pts[n-2], pts[n-1]
		if (b.X-a.X)*(p.Y-b.Y) == (b.Y-a.Y)*(p.X-b.X) {
			pts[n-1] = p
			return pts
		}
	}
	return append(pts, p)
}

// collapseClosing removes points made redundant by the implicit closing
// edge: a trailing point collinear with last->first, and a first point
// collinear with the wrap-around (tracing may have started mid-edge).
func collapseClosing(pts []types.Point) []types.Point {
	for len(pts) >= 3 {
		a := pts[len(pts)-2]
		b := pts[len(pts)-1]
		c := pts[0]
		if (b.X-a.X)*(c.Y-b.Y) == (b.Y-a.Y)*(c.X-b.X) {
			pts = pts[:len(pts)-1]
			continue
		}
		break
	}
	for len(pts) >= 3 {
		a := pts[len(pts)-1]
		b := pts[0]
		c := pts[1]
		if (b.X-a.X)*(c.Y-b.Y) == (b.Y-a.Y)*(c.X-b.X) {
			pts = pts[1:]
			continue
		}
		break
	}
	return pts
}
