// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"archive/zip"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/vyt-pipe/internal/layout"
	"github.com/pdiddy/vyt-pipe/pkg/types"
)

// ringSet is a 20x20 design: a 12x12 material square with a 4x4 hole.
func ringSet() types.ContourSet {
	outer := types.Contour{Role: types.RoleOuter, Points: []types.Point{
		{X: 4, Y: 4}, {X: 4, Y: 16}, {X: 16, Y: 16}, {X: 16, Y: 4},
	}}
	hole := types.Contour{Role: types.RoleHole, Points: []types.Point{
		{X: 8, Y: 8}, {X: 12, Y: 8}, {X: 12, Y: 12}, {X: 8, Y: 12},
	}}
	return types.ContourSet{Contours: []types.Contour{outer, hole}, Width: 20, Height: 20}
}

func smallPanel(t *testing.T) *layout.Panel {
	t.Helper()
	p, err := layout.Compute(ringSet(), types.LayoutConfig{
		DPI: 36, Cols: 2, Rows: 1, Page: "A4",
		MarginMM: 10, Fit: types.FitContain,
	})
	require.NoError(t, err)
	return p
}

var gray = color.RGBA{R: 0x8E, G: 0x8E, B: 0x8E, A: 0xFF}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")

	err := writeAtomic("test", path, func(f *os.File) error {
		_, err := f.WriteString("payload")
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestWriteAtomicFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")

	err := writeAtomic("test", path, func(f *os.File) error {
		return fmt.Errorf("boom")
	})
	var ioErr *types.ExportIOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "test", ioErr.Artifact)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "failed write must leave no file or temp behind")
}

func TestBackdrop(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    color.RGBA
		wantErr bool
	}{
		{"hex gray", "#8E8E8E", gray, false},
		{"hex lower", "#ff0000", color.RGBA{R: 0xFF, A: 0xFF}, false},
		{"auto without source", "auto", gray, false},
		{"invalid", "notacolor", color.RGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Backdrop(tt.spec, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBackdropAutoIsMuted(t *testing.T) {
	// A saturated red source must yield a desaturated midtone, not red.
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			src.Set(x, y, color.RGBA{R: 0xE0, G: 0x10, B: 0x10, A: 0xFF})
		}
	}
	got, err := Backdrop("auto", src)
	require.NoError(t, err)
	spread := int(got.R) - int(got.B)
	assert.Less(t, spread, 120, "auto backdrop should be desaturated, got %v", got)
	assert.Greater(t, int(got.R)+int(got.G)+int(got.B), 200, "auto backdrop should be a midtone")
}

func TestRenderSetCutsHoles(t *testing.T) {
	img := renderSet(ringSet(), types.Identity(), 20, 20, gray)

	assert.Equal(t, paper, img.RGBAAt(6, 6), "material ring should be paper white")
	assert.Equal(t, gray, img.RGBAAt(10, 10), "hole interior should show the backdrop")
	assert.Equal(t, gray, img.RGBAAt(1, 1), "outside should show the backdrop")
}

func TestRenderPanelDebugOverlay(t *testing.T) {
	p := smallPanel(t)
	plain := renderPanel(p, ringSet(), gray, false)
	debug := renderPanel(p, ringSet(), gray, true)

	assert.Equal(t, plain.Bounds(), debug.Bounds())

	diff := 0
	for i := range plain.Pix {
		if plain.Pix[i] != debug.Pix[i] {
			diff++
		}
	}
	assert.NotZero(t, diff, "debug overlay should draw seams and labels")
}

func TestRunArtifactNaming(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "cat")

	arts, err := Run(Request{
		Base:     base,
		Cfg:      types.ExportConfig{Format: types.FormatBoth},
		Set:      ringSet(),
		Panel:    smallPanel(t),
		Backdrop: gray,
	})
	require.NoError(t, err)

	var paths []string
	for _, a := range arts {
		paths = append(paths, filepath.Base(a.Path))
		info, statErr := os.Stat(a.Path)
		require.NoError(t, statErr, "artifact %s must exist", a.Path)
		assert.NotZero(t, info.Size())
	}
	assert.Equal(t, []string{
		"cat_original.png",
		"cat_panel.png",
		"cat_2x1_A4.pdf",
		"cat_2x1_A4.pptx",
	}, paths)
}

func TestRunSingleFormat(t *testing.T) {
	dir := t.TempDir()
	arts, err := Run(Request{
		Base:     filepath.Join(dir, "cat"),
		Cfg:      types.ExportConfig{Format: types.FormatPDF},
		Set:      ringSet(),
		Panel:    smallPanel(t),
		Backdrop: gray,
	})
	require.NoError(t, err)
	for _, a := range arts {
		assert.False(t, strings.HasSuffix(a.Path, ".pptx"), "pdf-only run wrote %s", a.Path)
	}
}

func TestRunRecordsFailedFormat(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "cat")
	// A directory squatting on the PDF path makes its final rename fail.
	require.NoError(t, os.Mkdir(base+"_2x1_A4.pdf", 0o755))

	arts, err := Run(Request{
		Base:     base,
		Cfg:      types.ExportConfig{Format: types.FormatBoth},
		Set:      ringSet(),
		Panel:    smallPanel(t),
		Backdrop: gray,
	})
	require.Error(t, err)

	byName := make(map[string]Artifact, len(arts))
	for _, a := range arts {
		byName[a.Name] = a
	}
	require.Contains(t, byName, "pdf")
	assert.False(t, byName["pdf"].OK(), "the failed pdf must still be listed")
	assert.True(t, byName["pptx"].OK(), "a pdf failure must not block the pptx")
	_, statErr := os.Stat(base + "_2x1_A4.pptx")
	assert.NoError(t, statErr)
}

func TestWritePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.pdf")
	require.NoError(t, writePDF(path, smallPanel(t), ringSet(), gray))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"), "missing PDF header")
}

func TestWritePPTXPackage(t *testing.T) {
	p := smallPanel(t)
	path := filepath.Join(t.TempDir(), "panel.pptx")
	require.NoError(t, writePPTX(path, p, ringSet(), gray))

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	parts := make(map[string]bool)
	for _, f := range zr.File {
		parts[f.Name] = true
	}
	for _, want := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide2.xml",
		"ppt/slides/_rels/slide1.xml.rels",
	} {
		assert.True(t, parts[want], "missing package part %s", want)
	}
	assert.False(t, parts["ppt/slides/slide3.xml"], "more slides than grid cells")
}

func TestWritePPTXSlideGeometry(t *testing.T) {
	p := smallPanel(t)
	slide := buildSlide(p, p.Cells[0], ringSet(), gray, 0)

	assert.Contains(t, slide, "<a:custGeom>")
	assert.Contains(t, slide, "<a:moveTo>")
	assert.Contains(t, slide, `<a:srgbClr val="8E8E8E"/>`)
	// One subpath per contour: outer plus hole.
	assert.Equal(t, 2, strings.Count(slide, "<a:moveTo>"))
	assert.Equal(t, 2, strings.Count(slide, "<a:close/>"))
}

func TestWriteReportAndBundle(t *testing.T) {
	dir := t.TempDir()

	first := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(first, []byte("one"), 0o644))
	second := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(second, []byte("two"), 0o644))

	reportPath := filepath.Join(dir, "cat_report.yaml")
	require.NoError(t, WriteReport(reportPath, Report{
		Input:         "cat.png",
		ThresholdUsed: 128,
		Contours:      1,
		Grid:          "3x4_A4",
		Artifacts: []ReportArtifact{
			{Name: "panel", Path: first, Status: "ok"},
			{Name: "pdf", Path: second, Status: "failed", Error: "disk full"},
		},
	}))
	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "threshold_used: 128")
	assert.Contains(t, string(data), "grid: 3x4_A4")
	assert.Contains(t, string(data), "status: ok")
	assert.Contains(t, string(data), "status: failed")
	assert.Contains(t, string(data), "error: disk full")

	bundlePath := filepath.Join(dir, "cat_bundle.zip")
	require.NoError(t, WriteBundle(bundlePath, []string{first, second, reportPath}))

	zr, err := zip.OpenReader(bundlePath)
	require.NoError(t, err)
	defer zr.Close()
	require.Len(t, zr.File, 3)
	assert.Equal(t, "a.txt", zr.File[0].Name)
}

func TestWriteBundleMissingInput(t *testing.T) {
	dir := t.TempDir()
	err := WriteBundle(filepath.Join(dir, "out.zip"), []string{filepath.Join(dir, "missing.txt")})
	assert.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "out.zip"))
	assert.True(t, os.IsNotExist(statErr), "failed bundle must not exist")
}

func TestPageLabel(t *testing.T) {
	assert.Equal(t, "p1", pageLabel(0, 0, 3))
	assert.Equal(t, "p4", pageLabel(1, 0, 3))
	assert.Equal(t, "p12", pageLabel(3, 2, 3))
}
