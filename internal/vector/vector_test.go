// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vector

import (
	"math"
	"testing"

	"github.com/pdiddy/vyt-pipe/pkg/types"
)

func TestRunSquarePreservesArea(t *testing.T) {
	// A 10x10 block smoothed with the default radius keeps its area to
	// within a few percent.
	rows := make([]string, 14)
	for y := range rows {
		row := make([]byte, 14)
		for x := range row {
			if x >= 2 && x < 12 && y >= 2 && y < 12 {
				row[x] = '#'
			} else {
				row[x] = '.'
			}
		}
		rows[y] = string(row)
	}
	m := maskFromRows(rows)

	set, err := Run(m, types.VectorConfig{AntialiasRadius: 0.8, MinArea: 4.0})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(set.Contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(set.Contours))
	}
	area := set.Contours[0].Area()
	if math.Abs(area-100) > 5 {
		t.Errorf("smoothed area = %v, want about 100", area)
	}
	if set.Width != 14 || set.Height != 14 {
		t.Errorf("set size = %dx%d, want 14x14", set.Width, set.Height)
	}
}

func TestRunMinAreaDropsSpecks(t *testing.T) {
	m := maskFromRows([]string{
		"........",
		".####.#.",
		".####...",
		".####...",
		".####...",
		"........",
	})
	set, err := Run(m, types.VectorConfig{MinArea: 4.0})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(set.Contours) != 1 {
		t.Errorf("got %d contours, want 1 (speck dropped)", len(set.Contours))
	}
}

func TestRunKeepsHoles(t *testing.T) {
	m := maskFromRows([]string{
		"..........",
		".########.",
		".#......#.",
		".#......#.",
		".########.",
		"..........",
	})
	set, err := Run(m, types.VectorConfig{AntialiasRadius: 0.8, MinArea: 4.0})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if set.Outer() != 1 || set.Holes() != 1 {
		t.Errorf("outer/holes = %d/%d, want 1/1", set.Outer(), set.Holes())
	}
}

func TestSmoothContourRoundsStaircase(t *testing.T) {
	// A staircase diagonal smooths toward the straight line between its
	// endpoints: corner points move inward.
	c := types.Contour{Points: []types.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1},
		{X: 2, Y: 2}, {X: 0, Y: 2},
	}}
	before := c.Area()
	smoothed := smoothContour(c, 1.0)
	if len(smoothed.Points) < 3 {
		t.Fatalf("smoothing collapsed contour to %d points", len(smoothed.Points))
	}
	after := smoothed.Area()
	if math.Abs(after-before) > before*0.35 {
		t.Errorf("area drifted from %v to %v", before, after)
	}
}

func TestSmoothContourZeroRadiusIsIdentity(t *testing.T) {
	c := types.Contour{Points: []types.Point{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4},
	}}
	smoothed := smoothContour(c, 0)
	if len(smoothed.Points) != 4 {
		t.Fatalf("points = %d, want 4", len(smoothed.Points))
	}
	for i, p := range smoothed.Points {
		if p != c.Points[i] {
			t.Fatalf("point %d moved: %+v != %+v", i, p, c.Points[i])
		}
	}
}

func TestSmoothContourPreservesRole(t *testing.T) {
	c := types.Contour{Role: types.RoleHole, Points: []types.Point{
		{X: 0, Y: 0}, {X: 0, Y: 3}, {X: 3, Y: 3}, {X: 3, Y: 0},
	}}
	if got := smoothContour(c, 1.0).Role; got != types.RoleHole {
		t.Errorf("role = %v, want hole", got)
	}
}

func TestDedupe(t *testing.T) {
	pts := []types.Point{
		{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0},
	}
	got := dedupe(pts)
	if len(got) != 3 {
		t.Errorf("dedupe kept %d points, want 3", len(got))
	}
}
