// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders the composed panel to its output artifacts:
// PNG previews, a per-page PDF, an editable PPTX deck, the YAML run
// report, and an optional ZIP bundle. Every file is written atomically
// so a failed run never leaves a truncated artifact behind.
package export

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/pdiddy/vyt-pipe/internal/layout"
	"github.com/pdiddy/vyt-pipe/pkg/types"
)

// Artifact names one file a run attempted to write.
type Artifact struct {
	// Name identifies the artifact kind, such as "panel" or "pdf".
	Name string
	// Path is where the file was written, or would have been.
	Path string
	// Err is non-nil when writing this artifact failed.
	Err error
}

// OK reports whether the artifact was written.
func (a Artifact) OK() bool { return a.Err == nil }

// Request carries everything Run needs to write artifacts.
type Request struct {
	// Base is the output path prefix; artifact suffixes are appended
	// to it.
	Base string
	// Cfg selects formats and toggles.
	Cfg types.ExportConfig
	// Set is the traced, smoothed geometry.
	Set types.ContourSet
	// Panel is the computed grid layout.
	Panel *layout.Panel
	// Backdrop is the resolved panel background colour.
	Backdrop color.RGBA
}

// Run writes the preview PNGs and the requested document formats.
// Formats are isolated from each other: a PDF failure does not stop the
// PPTX from being written, and vice versa. Every requested artifact
// appears in the returned slice, failed ones with Err set, so a dropped
// artifact is never silent; the error joins all per-artifact failures.
func Run(req Request) ([]Artifact, error) {
	suffix := req.Panel.Suffix()
	var (
		arts []Artifact
		errs []error
	)
	record := func(name, path string, err error) {
		arts = append(arts, Artifact{Name: name, Path: path, Err: err})
		if err != nil {
			errs = append(errs, err)
		}
	}

	path := req.Base + "_original.png"
	record("original", path, writePNG(path, renderOriginal(req.Set, req.Backdrop)))

	path = req.Base + "_panel.png"
	record("panel", path, writePNG(path, renderPanel(req.Panel, req.Set, req.Backdrop, false)))

	if req.Cfg.DebugPanel {
		path = req.Base + "_panel_debug.png"
		record("panel_debug", path, writePNG(path, renderPanel(req.Panel, req.Set, req.Backdrop, true)))
	}

	if req.Cfg.Format.WantsPDF() {
		path = req.Base + "_" + suffix + ".pdf"
		record("pdf", path, writePDF(path, req.Panel, req.Set, req.Backdrop))
	}
	if req.Cfg.Format.WantsPPTX() {
		path = req.Base + "_" + suffix + ".pptx"
		record("pptx", path, writePPTX(path, req.Panel, req.Set, req.Backdrop))
	}

	return arts, errors.Join(errs...)
}

func writePNG(path string, img image.Image) error {
	return writeAtomic("png", path, func(f *os.File) error {
		return png.Encode(f, img)
	})
}
