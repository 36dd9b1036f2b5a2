// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "math"

// Point is a 2D point in pixel or page space.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// ContourRole tags a contour as a filled outer boundary or an interior hole.
// Roles are explicit so the fill rule does not depend on trace order.
type ContourRole int

const (
	// RoleOuter is a counter-clockwise boundary of material.
	RoleOuter ContourRole = iota
	// RoleHole is a clockwise boundary of a cut-out inside material.
	RoleHole
)

func (r ContourRole) String() string {
	if r == RoleHole {
		return "hole"
	}
	return "outer"
}

// Contour is a closed polygon. The closing edge from the last point back to
// the first is implicit. Outer contours are wound counter-clockwise and
// holes clockwise, so rendering with the nonzero winding rule cuts holes
// out of their enclosing material.
type Contour struct {
	Points []Point     `json:"points" yaml:"points"`
	Role   ContourRole `json:"role" yaml:"role"`
}

// SignedArea returns the shoelace area of the contour. In the y-down
// raster coordinate system a clockwise contour has positive signed area
// and a counter-clockwise one negative.
func (c Contour) SignedArea() float64 {
	n := len(c.Points)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += c.Points[i].X*c.Points[j].Y - c.Points[j].X*c.Points[i].Y
	}
	return sum / 2
}

// Area returns the absolute enclosed area.
func (c Contour) Area() float64 {
	return math.Abs(c.SignedArea())
}

// Clockwise reports whether the contour winds clockwise in y-down space.
func (c Contour) Clockwise() bool {
	return c.SignedArea() > 0
}

// Bounds returns the axis-aligned bounding box of the contour.
func (c Contour) Bounds() BBox {
	if len(c.Points) == 0 {
		return BBox{}
	}
	minX, minY := c.Points[0].X, c.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range c.Points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return BBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Contains reports whether pt lies inside the contour (ray casting,
// points on the boundary are not guaranteed either way).
func (c Contour) Contains(pt Point) bool {
	n := len(c.Points)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := c.Points[i], c.Points[j]
		if (pi.Y > pt.Y) != (pj.Y > pt.Y) &&
			pt.X < (pj.X-pi.X)*(pt.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}

// ContourSet is a complete stencil design: outer boundaries plus holes.
type ContourSet struct {
	Contours []Contour `json:"contours" yaml:"contours"`
	// Width and Height are the pixel dimensions of the mask the set was
	// traced from; placement transforms are computed against them.
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Bounds returns the bounding box of all contours in the set.
func (s ContourSet) Bounds() BBox {
	if len(s.Contours) == 0 {
		return BBox{}
	}
	b := s.Contours[0].Bounds()
	for _, c := range s.Contours[1:] {
		b = b.Union(c.Bounds())
	}
	return b
}

// Outer returns the number of outer contours in the set.
func (s ContourSet) Outer() int {
	n := 0
	for _, c := range s.Contours {
		if c.Role == RoleOuter {
			n++
		}
	}
	return n
}

// Holes returns the number of hole contours in the set.
func (s ContourSet) Holes() int {
	return len(s.Contours) - s.Outer()
}

// BBox is an axis-aligned rectangle with a top-left origin.
type BBox struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Right returns the right edge X coordinate.
func (b BBox) Right() float64 { return b.X + b.Width }

// Bottom returns the bottom edge Y coordinate.
func (b BBox) Bottom() float64 { return b.Y + b.Height }

// Union returns the smallest box covering both boxes.
func (b BBox) Union(other BBox) BBox {
	x := math.Min(b.X, other.X)
	y := math.Min(b.Y, other.Y)
	r := math.Max(b.Right(), other.Right())
	bt := math.Max(b.Bottom(), other.Bottom())
	return BBox{X: x, Y: y, Width: r - x, Height: bt - y}
}

// Transform is a per-axis scale followed by a translation. It is the only
// placement operation the layout engine produces: contour geometry is never
// reshaped, only scaled and moved (the scales differ only in stretch fit
// mode).
type Transform struct {
	ScaleX float64 `json:"scale_x" yaml:"scale_x"`
	ScaleY float64 `json:"scale_y" yaml:"scale_y"`
	Tx     float64 `json:"tx" yaml:"tx"`
	Ty     float64 `json:"ty" yaml:"ty"`
}

// Identity returns the no-op transform.
func Identity() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

// Translate returns a pure translation.
func Translate(dx, dy float64) Transform {
	return Transform{ScaleX: 1, ScaleY: 1, Tx: dx, Ty: dy}
}

// Apply maps a point through the transform.
func (t Transform) Apply(p Point) Point {
	return Point{X: p.X*t.ScaleX + t.Tx, Y: p.Y*t.ScaleY + t.Ty}
}

// ApplyBBox maps a bounding box through the transform.
func (t Transform) ApplyBBox(b BBox) BBox {
	p := t.Apply(Point{X: b.X, Y: b.Y})
	q := t.Apply(Point{X: b.Right(), Y: b.Bottom()})
	return BBox{
		X: math.Min(p.X, q.X), Y: math.Min(p.Y, q.Y),
		Width: math.Abs(q.X - p.X), Height: math.Abs(q.Y - p.Y),
	}
}

// Then composes t with next, so that (t.Then(next)).Apply(p) ==
// next.Apply(t.Apply(p)).
func (t Transform) Then(next Transform) Transform {
	return Transform{
		ScaleX: t.ScaleX * next.ScaleX,
		ScaleY: t.ScaleY * next.ScaleY,
		Tx:     t.Tx*next.ScaleX + next.Tx,
		Ty:     t.Ty*next.ScaleY + next.Ty,
	}
}
