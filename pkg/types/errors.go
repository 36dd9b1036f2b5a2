// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// InvalidImageError reports a source image that could not be decoded or
// that has zero area.
type InvalidImageError struct {
	Path   string
	Reason string
	Err    error
}

func (e *InvalidImageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid image %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid image %s: %s", e.Path, e.Reason)
}

func (e *InvalidImageError) Unwrap() error { return e.Err }

// EmptyMaskError reports that extraction produced no material pixels, so
// there is nothing to cut. It carries the thresholds in effect so the
// caller can adjust and retry the run.
type EmptyMaskError struct {
	Threshold   int
	DetailDelta int
	Invert      InvertMode
}

func (e *EmptyMaskError) Error() string {
	return fmt.Sprintf(
		"stencil mask is empty (threshold=%d, detail_delta=%d, invert=%s): nothing to cut",
		e.Threshold, e.DetailDelta, e.Invert)
}

// DegenerateGeometryError reports a contour that smoothing collapsed below
// three distinct points.
type DegenerateGeometryError struct {
	Contour int
	Points  int
	Radius  float64
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf(
		"contour %d degenerated to %d points (antialias_radius=%.2f)",
		e.Contour, e.Points, e.Radius)
}

// ExportIOError reports a failed artifact write. Each format export is
// independent; a failed format never blocks the others.
type ExportIOError struct {
	Artifact string
	Path     string
	Err      error
}

func (e *ExportIOError) Error() string {
	return fmt.Sprintf("writing %s to %s: %v", e.Artifact, e.Path, e.Err)
}

func (e *ExportIOError) Unwrap() error { return e.Err }
