// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline chains the processing stages end to end: ingest,
// normalize, stencil, vector, layout, export. Stages before export are
// fail-fast; no artifact is written unless the geometry is sound.
package pipeline

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/vyt-pipe/internal/export"
	"github.com/pdiddy/vyt-pipe/internal/ingest"
	"github.com/pdiddy/vyt-pipe/internal/layout"
	"github.com/pdiddy/vyt-pipe/internal/normalize"
	"github.com/pdiddy/vyt-pipe/internal/stencil"
	"github.com/pdiddy/vyt-pipe/internal/vector"
	"github.com/pdiddy/vyt-pipe/pkg/types"
)

// Options configures a single pipeline run.
type Options struct {
	// Input is the source image path (PNG, JPEG, GIF, or .xbase64).
	Input string
	// Output is the artifact base path; each artifact appends its
	// suffix to it, so "out/cat" yields "out/cat_panel.png". The
	// parent directory is created if missing.
	Output string
	// Cfg carries the per-stage configuration.
	Cfg types.Config
	// Logger receives stage progress. Nil discards it.
	Logger *log.Logger
}

// Result summarises a completed run.
type Result struct {
	// Artifacts lists every artifact attempt in write order; failed
	// ones carry a non-nil Err.
	Artifacts []export.Artifact
	// Diag carries the stencil stage diagnostics.
	Diag stencil.Diagnostics
	// Set is the traced geometry, exposed for inspection.
	Set types.ContourSet
	// Warnings lists non-fatal findings from layout.
	Warnings []string
}

// Run executes the full pipeline for one input image.
func Run(opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	start := time.Now()

	src, err := ingest.Load(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", opts.Input, err)
	}
	b := src.Image.Bounds()
	logger.Info("ingested", "format", src.Format, "dpi", src.DPI,
		"size", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()))

	norm := normalize.Run(src.Image, src.DPI, opts.Cfg.Normalize)
	logger.Debug("normalized", "upscale", norm.Upscale, "blur", norm.AppliedBlur)

	mask, diag, err := stencil.Run(norm.Gray, opts.Cfg.Stencil)
	if err != nil {
		return nil, fmt.Errorf("stencil: %w", err)
	}
	logger.Info("stenciled", "threshold", diag.ThresholdUsed,
		"material", fmt.Sprintf("%.3f", diag.MaterialFraction), "flipped", diag.Flipped)

	set, err := vector.Run(mask, opts.Cfg.Vector)
	if err != nil {
		return nil, fmt.Errorf("vector: %w", err)
	}
	logger.Info("traced", "outers", set.Outer(), "holes", set.Holes())

	panel, err := layout.Compute(set, opts.Cfg.Layout)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	// The bridge width is physical, so its pixel equivalent depends on
	// how far the layout scales the mask onto the page. Reinforce at
	// that pitch and retrace the changed geometry.
	if px := bridgePx(opts.Cfg.Stencil.MinBridgeMM, panel); px > 0 {
		mask = stencil.ReinforceBridges(mask, px)
		diag.MaterialPixels = stencil.MaterialCount(mask)
		set, err = vector.Run(mask, opts.Cfg.Vector)
		if err != nil {
			return nil, fmt.Errorf("vector: %w", err)
		}
		panel, err = layout.Compute(set, opts.Cfg.Layout)
		if err != nil {
			return nil, fmt.Errorf("layout: %w", err)
		}
		logger.Debug("reinforced bridges", "px", px)
	}
	for _, w := range panel.Warnings {
		logger.Warn(w)
	}

	backdrop, err := export.Backdrop(opts.Cfg.Export.Background, src.Image)
	if err != nil {
		return nil, fmt.Errorf("backdrop: %w", err)
	}

	base := opts.Output
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("output dir %s: %w", dir, err)
		}
	}

	arts, exportErr := export.Run(export.Request{
		Base:     base,
		Cfg:      opts.Cfg.Export,
		Set:      set,
		Panel:    panel,
		Backdrop: backdrop,
	})
	for _, a := range arts {
		if a.OK() {
			logger.Info("wrote", "artifact", a.Name, "path", a.Path)
		} else {
			logger.Error("artifact failed", "artifact", a.Name, "err", a.Err)
		}
	}

	res := &Result{Artifacts: arts, Diag: diag, Set: set, Warnings: panel.Warnings}

	reportPath := base + "_report.yaml"
	if err := export.WriteReport(reportPath, buildReport(opts, panel, res)); err != nil {
		logger.Error("report failed", "err", err)
		if exportErr == nil {
			exportErr = err
		}
	} else {
		res.Artifacts = append(res.Artifacts, export.Artifact{Name: "report", Path: reportPath})
	}

	if opts.Cfg.Export.Pack {
		if exportErr != nil {
			logger.Warn("bundle skipped: not every artifact was written")
		} else {
			bundlePath := base + "_bundle.zip"
			files := make([]string, 0, len(res.Artifacts))
			for _, a := range res.Artifacts {
				files = append(files, a.Path)
			}
			if err := export.WriteBundle(bundlePath, files); err != nil {
				exportErr = err
			} else {
				res.Artifacts = append(res.Artifacts, export.Artifact{Name: "bundle", Path: bundlePath})
			}
		}
	}

	logger.Info("done", "artifacts", len(res.Artifacts), "elapsed", time.Since(start).Round(time.Millisecond))
	if exportErr != nil {
		return res, fmt.Errorf("export: %w", exportErr)
	}
	return res, nil
}

// bridgePx converts the configured bridge width to mask pixels at the
// pitch the layout prints the mask at.
func bridgePx(mm float64, panel *layout.Panel) int {
	if mm <= 0 {
		return 0
	}
	return int(math.Round(mm * panel.MaskPxPerMM()))
}

func buildReport(opts Options, panel *layout.Panel, res *Result) export.Report {
	arts := make([]export.ReportArtifact, 0, len(res.Artifacts))
	for _, a := range res.Artifacts {
		ra := export.ReportArtifact{Name: a.Name, Path: a.Path, Status: "ok"}
		if !a.OK() {
			ra.Status = "failed"
			ra.Error = a.Err.Error()
		}
		arts = append(arts, ra)
	}
	return export.Report{
		Input:            opts.Input,
		GeneratedAt:      time.Now().UTC(),
		ThresholdUsed:    res.Diag.ThresholdUsed,
		MaterialFraction: res.Diag.MaterialFraction,
		Flipped:          res.Diag.Flipped,
		Contours:         res.Set.Outer(),
		Holes:            res.Set.Holes(),
		Grid:             panel.Suffix(),
		Warnings:         res.Warnings,
		Artifacts:        arts,
	}
}
