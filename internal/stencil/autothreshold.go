// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stencil

import (
	"image"
	"math"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// autoThreshold picks a luminance threshold by 2-means clustering of the
// image's luminance samples: the threshold lands midway between the two
// cluster centres, separating the background and foreground modes of a
// bimodal histogram. Falls back to the midpoint 128 when clustering is
// not possible (for example on a flat image).
func autoThreshold(gray *image.Gray) int {
	// Subsample large images; the histogram shape survives.
	step := 1
	if len(gray.Pix) > 1<<16 {
		step = len(gray.Pix) / (1 << 16)
	}

	var obs clusters.Observations
	seen := make(map[uint8]bool)
	for i := 0; i < len(gray.Pix); i += step {
		seen[gray.Pix[i]] = true
		obs = append(obs, clusters.Coordinates{float64(gray.Pix[i])})
	}
	if len(seen) < 2 {
		return 128
	}

	km := kmeans.New()
	cl, err := km.Partition(obs, 2)
	if err != nil || len(cl) != 2 {
		return 128
	}

	c0 := cl[0].Center[0]
	c1 := cl[1].Center[0]
	t := int(math.Round((c0 + c1) / 2))
	return min(255, max(1, t))
}
