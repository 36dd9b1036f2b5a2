// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stencil

import (
	"testing"

	"github.com/pdiddy/vyt-pipe/pkg/types"
)

func TestRunCarvesDarkPocketInsideSilhouette(t *testing.T) {
	// A mid-gray silhouette on white with a much darker pocket in its
	// middle. The silhouette becomes material; the pocket becomes an
	// interior cut-out.
	img := grayImage(30, 30, 255)
	fillRect(img, 5, 5, 25, 25, 180)
	fillRect(img, 12, 12, 18, 18, 60)

	cfg := types.StencilConfig{Threshold: 200, DetailDelta: 60, Invert: types.InvertAuto}
	mask, diag, err := Run(img, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !diag.Flipped {
		t.Error("dark-on-light design should flip polarity")
	}
	if mask.GrayAt(15, 15).Y != void {
		t.Error("enclosed dark pocket should be carved to void")
	}
	if mask.GrayAt(7, 7).Y != material {
		t.Error("silhouette body should stay material")
	}
	if mask.GrayAt(2, 2).Y != void {
		t.Error("background should be void")
	}
}

func TestCarveDarkPocketsKeepsExposedRegions(t *testing.T) {
	// A uniformly dark shape is its own pocket, but it borders void, so
	// nothing is enclosed and the body survives.
	gray := grayImage(20, 20, 255)
	fillRect(gray, 6, 6, 14, 14, 0)
	mask := newMask(20, 20)
	fillRect(mask, 6, 6, 14, 14, material)

	out := carveDarkPockets(mask, gray, 128, 60)
	if !maskEqual(out, mask) {
		t.Error("a pocket touching void must not be carved")
	}
}

func TestCarveDarkPocketsFollowsConnectivity(t *testing.T) {
	// Two identical dark spots inside a bright material block; one is
	// connected to the outside void through a dark channel and stays,
	// the enclosed one is carved.
	gray := grayImage(20, 11, 200)
	fillRect(gray, 4, 4, 7, 7, 30)   // enclosed spot
	fillRect(gray, 13, 4, 16, 7, 30) // spot with an escape channel
	fillRect(gray, 14, 7, 15, 11, 30)
	mask := newMask(20, 11)
	fillRect(mask, 0, 0, 20, 11, material)
	fillRect(mask, 14, 9, 15, 11, void) // void the channel drains into

	out := carveDarkPockets(mask, gray, 128, 60)
	if out.GrayAt(5, 5).Y != void {
		t.Error("enclosed spot should be carved")
	}
	if out.GrayAt(14, 5).Y != material {
		t.Error("spot reaching void through a dark channel must stay material")
	}
}

func TestCarveDarkPocketsKeepsSmoothGradients(t *testing.T) {
	// Concentric bands stepping down gently, as the blurred interior of
	// a thick shape does. The innermost band is below the pocket limit
	// but no sharp step separates it from its rim, so it stays solid.
	gray := grayImage(15, 15, 200)
	fillRect(gray, 3, 3, 12, 12, 100)
	fillRect(gray, 6, 6, 9, 9, 60)
	mask := newMask(15, 15)
	fillRect(mask, 0, 0, 15, 15, material)

	out := carveDarkPockets(mask, gray, 128, 60)
	if !maskEqual(out, mask) {
		t.Error("a gradual luminance ramp must not be carved")
	}
}

func TestCarveDarkPocketsBorderTouchIsExposed(t *testing.T) {
	gray := grayImage(10, 10, 200)
	fillRect(gray, 0, 4, 4, 6, 30)
	mask := newMask(10, 10)
	fillRect(mask, 0, 0, 10, 10, material)

	out := carveDarkPockets(mask, gray, 128, 60)
	if !maskEqual(out, mask) {
		t.Error("a pocket touching the image border must not be carved")
	}
}
