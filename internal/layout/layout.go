// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package layout arranges a stencil contour set on a grid of printable
// pages.
//
// The panel is the concatenation of all grid cells without margins; each
// page later reproduces one cell inside real print margins. The silhouette
// is scaled into the panel, centred, then translated by the configured
// millimetre shift. The shift is a deliberate manual alignment control:
// pushing content off-page is reported as a warning, never an error.
package layout

import (
	"fmt"
	"math"

	"github.com/pdiddy/vyt-pipe/pkg/types"
)

// Cell is one grid position with the transform mapping mask coordinates
// into the cell's local pixel space (origin at the cell's view top-left,
// which extends overlap pixels beyond the nominal cell on every side).
type Cell struct {
	Row, Col  int
	Transform types.Transform
}

// Panel is the computed page-space layout for one stencil.
type Panel struct {
	Cfg  types.LayoutConfig
	Page PageSize

	// Pixel geometry at Cfg.DPI.
	PageW, PageH   int // full page
	MarginPx       int
	OverlapPx      int
	CellW, CellH   int // printable cell, margins excluded
	ViewW, ViewH   int // cell plus overlap strips
	PanelW, PanelH int // cols*CellW x rows*CellH

	// Content maps mask coordinates into panel pixel space (scale, centre,
	// shift applied).
	Content types.Transform

	// Cells lists the grid placements in row-major order.
	Cells []Cell

	// Warnings collects non-fatal layout conditions, e.g. content shifted
	// beyond the panel bounds.
	Warnings []string
}

// Compute builds the panel layout for a contour set.
func Compute(set types.ContourSet, cfg types.LayoutConfig) (*Panel, error) {
	if cfg.Cols < 1 || cfg.Rows < 1 {
		return nil, fmt.Errorf("grid must be at least 1x1, got %dx%d", cfg.Cols, cfg.Rows)
	}
	page, err := LookupPage(cfg.Page)
	if err != nil {
		return nil, err
	}

	p := &Panel{Cfg: cfg, Page: page}
	p.PageW = MMToPx(page.WidthMM, cfg.DPI)
	p.PageH = MMToPx(page.HeightMM, cfg.DPI)
	p.MarginPx = MMToPx(cfg.MarginMM, cfg.DPI)
	p.OverlapPx = MMToPx(cfg.OverlapMM, cfg.DPI)

	p.CellW = p.PageW - 2*p.MarginPx
	p.CellH = p.PageH - 2*p.MarginPx
	if p.CellW <= 0 || p.CellH <= 0 {
		return nil, fmt.Errorf("margin %.1f mm leaves no printable area on %s at %d DPI",
			cfg.MarginMM, page.Name, cfg.DPI)
	}
	p.ViewW = p.CellW + 2*p.OverlapPx
	p.ViewH = p.CellH + 2*p.OverlapPx
	p.PanelW = cfg.Cols * p.CellW
	p.PanelH = cfg.Rows * p.CellH

	p.Content = contentTransform(set, cfg, p)

	bounds := p.Content.ApplyBBox(types.BBox{
		Width: float64(set.Width), Height: float64(set.Height),
	})
	if bounds.X < 0 || bounds.Y < 0 ||
		bounds.Right() > float64(p.PanelW) || bounds.Bottom() > float64(p.PanelH) {
		p.Warnings = append(p.Warnings, fmt.Sprintf(
			"content extends beyond the panel (shift %.1f/%.1f mm); seams may cut the design",
			cfg.ShiftXMM, cfg.ShiftYMM))
	}

	for row := 0; row < cfg.Rows; row++ {
		for col := 0; col < cfg.Cols; col++ {
			viewOrigin := types.Translate(
				-(float64(col*p.CellW - p.OverlapPx)),
				-(float64(row*p.CellH - p.OverlapPx)),
			)
			p.Cells = append(p.Cells, Cell{
				Row: row, Col: col,
				Transform: p.Content.Then(viewOrigin),
			})
		}
	}
	return p, nil
}

// contentTransform scales the mask into the panel per the fit mode,
// centres it, and applies the millimetre shift.
func contentTransform(set types.ContourSet, cfg types.LayoutConfig, p *Panel) types.Transform {
	srcW := float64(set.Width)
	srcH := float64(set.Height)
	panelW := float64(p.PanelW)
	panelH := float64(p.PanelH)

	scaleX := panelW / srcW
	scaleY := panelH / srcH

	var sx, sy float64
	switch cfg.Fit {
	case types.FitStretch:
		sx, sy = scaleX, scaleY
	case types.FitCover:
		s := math.Max(scaleX, scaleY)
		sx, sy = s, s
	default: // FitContain
		s := math.Min(scaleX, scaleY)
		sx, sy = s, s
	}

	shiftX := float64(MMToPx(cfg.ShiftXMM, cfg.DPI))
	shiftY := float64(MMToPx(cfg.ShiftYMM, cfg.DPI))
	tx := (panelW-srcW*sx)/2 + shiftX
	ty := (panelH-srcH*sy)/2 + shiftY

	return types.Transform{ScaleX: sx, ScaleY: sy, Tx: tx, Ty: ty}
}

// MaskPxPerMM returns how many mask pixels cover one printed millimetre.
// A mask pixel spans Content scale panel pixels, and panel pixels print
// at Cfg.DPI. The smaller axis scale is used so an anisotropic stretch
// never overstates physical thickness.
func (p *Panel) MaskPxPerMM() float64 {
	s := math.Min(p.Content.ScaleX, p.Content.ScaleY)
	if s <= 0 {
		return 0
	}
	return float64(p.Cfg.DPI) / (25.4 * s)
}

// Suffix returns the artifact naming suffix for this layout, e.g.
// "3x4_A4" for the default grid.
func (p *Panel) Suffix() string {
	return fmt.Sprintf("%dx%d_%s", p.Cfg.Cols, p.Cfg.Rows, p.Page.Name)
}
