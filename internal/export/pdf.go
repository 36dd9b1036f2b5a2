// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"image/color"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/pdiddy/vyt-pipe/internal/layout"
	"github.com/pdiddy/vyt-pipe/pkg/types"
)

// writePDF renders one page per grid cell as true vector paths. Holes are
// wound opposite to their outer contours, so the PDF nonzero fill rule
// cuts them out without a separate clip. Each page also carries corner
// registration crosses and a page caption for assembly.
func writePDF(path string, p *layout.Panel, set types.ContourSet, backdrop color.RGBA) error {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: p.Page.WidthMM, Ht: p.Page.HeightMM},
	})
	pdf.SetTitle("papercut panel", false)
	pdf.SetFont("Helvetica", "", 9)

	dpi := p.Cfg.DPI
	viewWMM := layout.PxToMM(p.ViewW, dpi)
	viewHMM := layout.PxToMM(p.ViewH, dpi)
	originMM := p.Cfg.MarginMM - p.Cfg.OverlapMM

	pxToMM := func(v float64) float64 {
		return v / float64(dpi) * 25.4
	}

	for i, cell := range p.Cells {
		pdf.AddPage()

		// Backdrop limited to the printable view.
		pdf.SetFillColor(int(backdrop.R), int(backdrop.G), int(backdrop.B))
		pdf.Rect(originMM, originMM, viewWMM, viewHMM, "F")

		pdf.ClipRect(originMM, originMM, viewWMM, viewHMM, false)
		pdf.SetFillColor(255, 255, 255)
		drewAny := false
		for _, c := range set.Contours {
			if len(c.Points) < 3 {
				continue
			}
			p0 := cell.Transform.Apply(c.Points[0])
			pdf.MoveTo(originMM+pxToMM(p0.X), originMM+pxToMM(p0.Y))
			for _, pt := range c.Points[1:] {
				q := cell.Transform.Apply(pt)
				pdf.LineTo(originMM+pxToMM(q.X), originMM+pxToMM(q.Y))
			}
			pdf.ClosePath()
			drewAny = true
		}
		if drewAny {
			pdf.DrawPath("f")
		}
		pdf.ClipEnd()

		drawRegistrationMarks(pdf, p)

		caption := fmt.Sprintf("page %d/%d  (row %d, col %d)",
			i+1, len(p.Cells), cell.Row+1, cell.Col+1)
		pdf.SetTextColor(0, 0, 0)
		pdf.Text(originMM, p.Page.HeightMM-originMM/2, caption)
	}

	return writeAtomic("pdf", path, func(f *os.File) error {
		return pdf.Output(f)
	})
}

// drawRegistrationMarks draws alignment crosses just inside the four view
// corners.
func drawRegistrationMarks(pdf *gofpdf.Fpdf, p *layout.Panel) {
	const arm = 3.0   // mm, half-length of each cross arm
	const inset = 5.0 // mm from the view corner
	origin := p.Cfg.MarginMM - p.Cfg.OverlapMM
	viewW := layout.PxToMM(p.ViewW, p.Cfg.DPI)
	viewH := layout.PxToMM(p.ViewH, p.Cfg.DPI)

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.25)
	corners := [][2]float64{
		{origin + inset, origin + inset},
		{origin + viewW - inset, origin + inset},
		{origin + inset, origin + viewH - inset},
		{origin + viewW - inset, origin + viewH - inset},
	}
	for _, c := range corners {
		pdf.Line(c[0]-arm, c[1], c[0]+arm, c[1])
		pdf.Line(c[0], c[1]-arm, c[0], c[1]+arm)
	}
}
