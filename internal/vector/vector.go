// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vector converts binary stencil masks into closed cutting
// contours.
//
// Boundaries are traced along pixel edges with material kept on the left,
// which makes winding direction encode topology: outer boundaries run
// counter-clockwise, holes clockwise, and the nonzero fill rule renders
// nesting correctly without relying on trace order. Traced contours are
// then smoothed to remove pixel staircasing.
package vector

import (
	"image"

	"github.com/pdiddy/vyt-pipe/pkg/types"
)

// Run traces and smooths the contour set for a mask. It returns
// *types.DegenerateGeometryError if smoothing collapses any contour below
// three distinct points.
func Run(mask *image.Gray, cfg types.VectorConfig) (types.ContourSet, error) {
	b := mask.Bounds()
	set := types.ContourSet{Width: b.Dx(), Height: b.Dy()}

	traced := traceBoundaries(mask)
	for i, c := range traced {
		if cfg.MinArea > 0 && c.Area() < cfg.MinArea {
			continue
		}
		smoothed := smoothContour(c, cfg.AntialiasRadius)
		if len(smoothed.Points) < 3 {
			return types.ContourSet{}, &types.DegenerateGeometryError{
				Contour: i,
				Points:  len(smoothed.Points),
				Radius:  cfg.AntialiasRadius,
			}
		}
		set.Contours = append(set.Contours, smoothed)
	}
	return set, nil
}
