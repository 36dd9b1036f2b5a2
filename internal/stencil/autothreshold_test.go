// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stencil

import (
	"image"
	"math/rand"
	"testing"
)

func TestAutoThresholdBimodal(t *testing.T) {
	// Two tight luminance modes around 40 and 215; the threshold should
	// land between them.
	rng := rand.New(rand.NewSource(1))
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for i := range img.Pix {
		base := 40
		if i%2 == 0 {
			base = 215
		}
		img.Pix[i] = uint8(base + rng.Intn(11) - 5)
	}

	got := autoThreshold(img)
	if got < 80 || got > 180 {
		t.Errorf("autoThreshold = %d, want between the 40 and 215 modes", got)
	}
}

func TestAutoThresholdFlatImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = 77
	}
	if got := autoThreshold(img); got != 128 {
		t.Errorf("autoThreshold = %d, want fallback 128 for flat image", got)
	}
}

func TestAutoThresholdClamped(t *testing.T) {
	// Even for extreme distributions the result stays in 1..255.
	img := image.NewGray(image.Rect(0, 0, 32, 32))
	for i := range img.Pix {
		if i == 0 {
			img.Pix[i] = 255
		}
	}
	got := autoThreshold(img)
	if got < 1 || got > 255 {
		t.Errorf("autoThreshold = %d out of range", got)
	}
}
