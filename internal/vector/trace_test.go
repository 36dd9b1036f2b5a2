// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vector

import (
	"image"
	"math"
	"testing"

	"github.com/pdiddy/vyt-pipe/pkg/types"
)

func maskFromRows(rows []string) *image.Gray {
	h := len(rows)
	w := len(rows[0])
	m := image.NewGray(image.Rect(0, 0, w, h))
	for y, row := range rows {
		for x, c := range row {
			if c == '#' {
				m.Pix[y*m.Stride+x] = 255
			}
		}
	}
	return m
}

func TestTraceSinglePixel(t *testing.T) {
	m := maskFromRows([]string{
		"...",
		".#.",
		"...",
	})
	contours := traceBoundaries(m)
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}
	c := contours[0]
	if c.Role != types.RoleOuter {
		t.Errorf("role = %v, want outer", c.Role)
	}
	if len(c.Points) != 4 {
		t.Errorf("points = %d, want 4 for a unit square", len(c.Points))
	}
	if math.Abs(c.Area()-1.0) > 1e-9 {
		t.Errorf("area = %v, want 1", c.Area())
	}
	if c.Clockwise() {
		t.Error("outer boundary should wind counter-clockwise")
	}
}

func TestTraceSquareArea(t *testing.T) {
	// An NxN block traces to a square of area N^2 with four corners.
	m := maskFromRows([]string{
		"......",
		".####.",
		".####.",
		".####.",
		".####.",
		"......",
	})
	contours := traceBoundaries(m)
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}
	c := contours[0]
	if len(c.Points) != 4 {
		t.Errorf("points = %d, want 4 (collinear run collapsed)", len(c.Points))
	}
	if math.Abs(c.Area()-16.0) > 1e-9 {
		t.Errorf("area = %v, want 16", c.Area())
	}
}

func TestTraceHoleWinding(t *testing.T) {
	m := maskFromRows([]string{
		".....",
		".###.",
		".#.#.",
		".###.",
		".....",
	})
	contours := traceBoundaries(m)
	if len(contours) != 2 {
		t.Fatalf("got %d contours, want outer plus hole", len(contours))
	}

	outer, hole := contours[0], contours[1]
	if outer.Role != types.RoleOuter || hole.Role != types.RoleHole {
		t.Fatalf("roles = %v, %v; want outer, hole", outer.Role, hole.Role)
	}
	if !hole.Clockwise() {
		t.Error("hole should wind clockwise")
	}
	if math.Abs(outer.Area()-9.0) > 1e-9 {
		t.Errorf("outer area = %v, want 9", outer.Area())
	}
	if math.Abs(hole.Area()-1.0) > 1e-9 {
		t.Errorf("hole area = %v, want 1", hole.Area())
	}
	if !outer.Contains(types.Point{X: 2.5, Y: 2.5}) {
		t.Error("hole centre should lie inside the outer contour")
	}
}

func TestTraceTwoComponents(t *testing.T) {
	m := maskFromRows([]string{
		"........",
		".##..##.",
		".##..##.",
		"........",
	})
	contours := traceBoundaries(m)
	if len(contours) != 2 {
		t.Fatalf("got %d contours, want 2", len(contours))
	}
	for i, c := range contours {
		if c.Role != types.RoleOuter {
			t.Errorf("contour %d role = %v, want outer", i, c.Role)
		}
		if math.Abs(c.Area()-4.0) > 1e-9 {
			t.Errorf("contour %d area = %v, want 4", i, c.Area())
		}
	}
}

func TestTraceDiagonalTouchStaysSeparate(t *testing.T) {
	// Two pixels sharing only a corner must trace as two loops, not one
	// self-intersecting boundary.
	m := maskFromRows([]string{
		"#.",
		".#",
	})
	contours := traceBoundaries(m)
	if len(contours) != 2 {
		t.Fatalf("got %d contours, want 2", len(contours))
	}
	for i, c := range contours {
		if math.Abs(c.Area()-1.0) > 1e-9 {
			t.Errorf("contour %d area = %v, want 1", i, c.Area())
		}
	}
}

func TestTraceEdgeTouchingMaterial(t *testing.T) {
	// Material on the image border closes against the implicit outside.
	m := maskFromRows([]string{
		"##..",
		"##..",
	})
	contours := traceBoundaries(m)
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}
	if math.Abs(contours[0].Area()-4.0) > 1e-9 {
		t.Errorf("area = %v, want 4", contours[0].Area())
	}
}

func TestTraceEmptyMask(t *testing.T) {
	m := image.NewGray(image.Rect(0, 0, 5, 5))
	if contours := traceBoundaries(m); contours != nil {
		t.Errorf("empty mask traced to %d contours, want none", len(contours))
	}
}

func TestTraceOrderOutersFirst(t *testing.T) {
	m := maskFromRows([]string{
		".......",
		".#####.",
		".#...#.",
		".#####.",
		".......",
	})
	contours := traceBoundaries(m)
	if len(contours) != 2 {
		t.Fatalf("got %d contours, want 2", len(contours))
	}
	if contours[0].Role != types.RoleOuter {
		t.Error("outer contour should sort before its hole")
	}
}
