// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/pdiddy/vyt-pipe/internal/layout"
	"github.com/pdiddy/vyt-pipe/pkg/types"
)

// paper is the material colour in rendered previews.
var paper = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// renderSet rasterises a contour set through tf onto an image of the
// given size: backdrop everywhere, material in paper white. All contours
// share one rasterizer pass, so hole contours (wound opposite to their
// enclosing outers) cut out of the material under the nonzero rule.
func renderSet(set types.ContourSet, tf types.Transform, w, h int, backdrop color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(backdrop), image.Point{}, draw.Src)
	if w <= 0 || h <= 0 {
		return img
	}

	r := vector.NewRasterizer(w, h)
	r.DrawOp = draw.Over
	for _, c := range set.Contours {
		if len(c.Points) < 3 {
			continue
		}
		p0 := tf.Apply(c.Points[0])
		r.MoveTo(float32(p0.X), float32(p0.Y))
		for _, pt := range c.Points[1:] {
			p := tf.Apply(pt)
			r.LineTo(float32(p.X), float32(p.Y))
		}
		r.ClosePath()
	}
	r.Draw(img, img.Bounds(), image.NewUniform(paper), image.Point{})
	return img
}

// renderPanel renders the full composed panel. With debug set it also
// draws dashed cell seams and per-cell numbering, the quick-QA view of
// how pages will divide the design.
func renderPanel(p *layout.Panel, set types.ContourSet, backdrop color.RGBA, debug bool) *image.RGBA {
	img := renderSet(set, p.Content, p.PanelW, p.PanelH, backdrop)
	if !debug {
		return img
	}

	seam := color.RGBA{R: 0x50, G: 0x50, B: 0x50, A: 0xFF}
	for col := 1; col < p.Cfg.Cols; col++ {
		x := col * p.CellW
		for y := 0; y < p.PanelH; y++ {
			if y%9 < 5 { // dashed
				img.SetRGBA(x, y, seam)
			}
		}
	}
	for row := 1; row < p.Cfg.Rows; row++ {
		y := row * p.CellH
		for x := 0; x < p.PanelW; x++ {
			if x%9 < 5 {
				img.SetRGBA(x, y, seam)
			}
		}
	}

	for _, cell := range p.Cells {
		label := pageLabel(cell.Row, cell.Col, p.Cfg.Cols)
		drawLabel(img, cell.Col*p.CellW+8, cell.Row*p.CellH+16, label)
	}
	return img
}

// renderOriginal renders the silhouette at mask resolution, the
// original-size QA artifact.
func renderOriginal(set types.ContourSet, backdrop color.RGBA) *image.RGBA {
	return renderSet(set, types.Identity(), set.Width, set.Height, backdrop)
}

func pageLabel(row, col, cols int) string {
	return "p" + strconv.Itoa(row*cols+col+1)
}

// drawLabel writes small text onto the image at the given pixel position.
func drawLabel(img *image.RGBA, x, y int, text string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{A: 0xFF}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
