// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stencil

import "testing"

func TestReinforceBridgesThickensThinStrand(t *testing.T) {
	// A one-pixel strand connecting two sturdy blocks.
	m := maskFromRows([]string{
		"............",
		"###......###",
		"############",
		"###......###",
		"............",
	})

	out := ReinforceBridges(m, 4)

	// Original material must survive untouched.
	for i, v := range m.Pix {
		if v != void && out.Pix[i] == void {
			t.Fatalf("reinforcement removed material at index %d", i)
		}
	}

	// The strand must be wider than one pixel afterwards.
	widened := false
	for _, x := range []int{5, 6} {
		if out.GrayAt(x, 1).Y == material || out.GrayAt(x, 3).Y == material {
			widened = true
		}
	}
	if !widened {
		t.Error("thin strand was not reinforced")
	}
}

func TestReinforceBridgesZeroDisabled(t *testing.T) {
	m := maskFromRows([]string{
		"...",
		".#.",
		"...",
	})
	out := ReinforceBridges(m, 0)
	if !maskEqual(out, m) {
		t.Error("minBridgePx 0 should be a no-op")
	}
}

func TestReinforceBridgesSturdyRegionUnchanged(t *testing.T) {
	// Every pixel of an 8x8 block sits at least one pixel from void, which
	// clears the thin limit for a 3px bridge, so nothing is touched.
	m := maskFromRows([]string{
		"..........",
		".########.",
		".########.",
		".########.",
		".########.",
		".########.",
		".########.",
		".########.",
		".########.",
		"..........",
	})
	out := ReinforceBridges(m, 3)
	if !maskEqual(out, m) {
		t.Error("sturdy block should pass through unchanged")
	}
}

func TestDistanceTransform(t *testing.T) {
	m := maskFromRows([]string{
		".....",
		".###.",
		".###.",
		".###.",
		".....",
	})
	dist := distanceTransform(m)
	w := 5
	if dist[2*w+2] != 2 {
		t.Errorf("centre distance = %d, want 2", dist[2*w+2])
	}
	if dist[1*w+1] != 1 {
		t.Errorf("edge distance = %d, want 1", dist[1*w+1])
	}
	if dist[0] != 0 {
		t.Errorf("void distance = %d, want 0", dist[0])
	}
}

func TestDistanceTransformBorderIsThin(t *testing.T) {
	// Material touching the image border counts the outside as void.
	m := maskFromRows([]string{
		"###",
		"###",
		"###",
	})
	dist := distanceTransform(m)
	for i, d := range dist {
		if i == 4 {
			continue
		}
		if d != 1 {
			t.Errorf("border pixel %d distance = %d, want 1", i, d)
		}
	}
	if dist[4] != 2 {
		t.Errorf("centre distance = %d, want 2", dist[4])
	}
}
