// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OutputFormat selects which print documents the exporter writes.
type OutputFormat string

const (
	FormatPPTX OutputFormat = "pptx"
	FormatPDF  OutputFormat = "pdf"
	FormatBoth OutputFormat = "both"
)

// WantsPDF reports whether the format includes a PDF document.
func (f OutputFormat) WantsPDF() bool { return f == FormatPDF || f == FormatBoth }

// WantsPPTX reports whether the format includes a PPTX document.
func (f OutputFormat) WantsPPTX() bool { return f == FormatPPTX || f == FormatBoth }

// InvertMode controls silhouette polarity during mask extraction.
type InvertMode string

const (
	// InvertAuto infers polarity from the material fraction and the
	// border/centre luminance balance.
	InvertAuto InvertMode = "auto"
	// InvertLight treats light pixels as material regardless of content.
	InvertLight InvertMode = "light"
	// InvertDark treats dark pixels as material regardless of content.
	InvertDark InvertMode = "dark"
)

// FitMode controls how the silhouette is scaled into the panel.
type FitMode string

const (
	// FitContain scales so the whole silhouette fits inside the panel.
	FitContain FitMode = "fit"
	// FitCover scales so the silhouette covers the panel, cropping edges.
	FitCover FitMode = "fill"
	// FitStretch scales each axis independently to fill the panel.
	FitStretch FitMode = "stretch"
)

// NormalizeConfig holds Image Normalizer settings.
type NormalizeConfig struct {
	// TargetDPI is the resolution the source is upscaled toward before
	// smoothing (0 disables DPI-based scaling).
	TargetDPI int `json:"target_dpi" yaml:"target_dpi"`

	// Scale is the minimum upscale factor applied before smoothing.
	Scale float64 `json:"scale" yaml:"scale"`

	// Blur is the baseline Gaussian radius applied at the upscaled size;
	// the effective radius is divided by the upscale factor.
	Blur float64 `json:"blur" yaml:"blur"`

	// Preset names a bundled parameter combination. Explicit flag values
	// always take precedence over the preset.
	Preset string `json:"preset" yaml:"preset"`
}

// StencilConfig holds Detail Extractor settings.
type StencilConfig struct {
	// Threshold separates background from material (0-255). Zero selects
	// an automatic threshold from the luminance histogram.
	Threshold int `json:"threshold" yaml:"threshold"`

	// DetailDelta is how far below Threshold a pixel must sit, or how much
	// local contrast a neighbourhood must carry, to count as fine detail.
	DetailDelta int `json:"detail_delta" yaml:"detail_delta"`

	// Blur is the Gaussian radius applied to the grayscale image before
	// thresholding.
	Blur float64 `json:"blur" yaml:"blur"`

	// DilatePx is the morphological closing radius for the silhouette
	// outline, in pixels.
	DilatePx int `json:"dilate_px" yaml:"dilate_px"`

	// DetailJoinPx is the extra closing radius used to bridge dotted
	// interior detail into continuous cuts.
	DetailJoinPx int `json:"detail_join_px" yaml:"detail_join_px"`

	// Invert selects silhouette polarity.
	Invert InvertMode `json:"invert" yaml:"invert"`

	// MinBridgeMM reinforces material thinner than this width so the cut
	// stencil holds together (0 disables).
	MinBridgeMM float64 `json:"min_bridge_mm" yaml:"min_bridge_mm"`
}

// VectorConfig holds Stencil Vectorizer settings.
type VectorConfig struct {
	// AntialiasRadius is the boundary smoothing radius in pixels.
	AntialiasRadius float64 `json:"antialias_radius" yaml:"antialias_radius"`

	// MinArea drops traced specks smaller than this many square pixels.
	MinArea float64 `json:"min_area" yaml:"min_area"`
}

// LayoutConfig holds Panel Layout Engine settings.
type LayoutConfig struct {
	// DPI is the raster resolution for the panel and exported pages.
	DPI int `json:"dpi" yaml:"dpi"`

	// Cols and Rows define the page grid.
	Cols int `json:"cols" yaml:"cols"`
	Rows int `json:"rows" yaml:"rows"`

	// Page names the physical page size (A4, A3, Letter).
	Page string `json:"page" yaml:"page"`

	// MarginMM is the print margin on every page edge.
	MarginMM float64 `json:"margin_mm" yaml:"margin_mm"`

	// OverlapMM extends each cell into its neighbours so adjacent pages
	// share a glue strip.
	OverlapMM float64 `json:"overlap_mm" yaml:"overlap_mm"`

	// ShiftXMM and ShiftYMM translate the composed content. Positive X
	// shifts right, positive Y shifts down. A shift that pushes geometry
	// off-page is a warning, not an error.
	ShiftXMM float64 `json:"shift_x_mm" yaml:"shift_x_mm"`
	ShiftYMM float64 `json:"shift_y_mm" yaml:"shift_y_mm"`

	// Fit controls how the silhouette is scaled into the panel.
	Fit FitMode `json:"fit" yaml:"fit"`
}

// ExportConfig holds Multi-Format Exporter settings.
type ExportConfig struct {
	// Format selects which print documents are written.
	Format OutputFormat `json:"format" yaml:"format"`

	// Background is the backdrop colour as #RRGGBB, or "auto" to derive a
	// muted backdrop from the source's dominant colour.
	Background string `json:"background" yaml:"background"`

	// DebugPanel also writes an annotated panel preview with cell seams
	// and page numbers.
	DebugPanel bool `json:"debug_panel" yaml:"debug_panel"`

	// Pack bundles all written artifacts into a ZIP archive.
	Pack bool `json:"pack" yaml:"pack"`
}

// Config aggregates the immutable per-run settings for one pipeline run.
// A Config is never mutated after the run starts, so concurrent runs with
// different parameter sets cannot interfere.
type Config struct {
	Normalize NormalizeConfig `json:"normalize" yaml:"normalize"`
	Stencil   StencilConfig   `json:"stencil" yaml:"stencil"`
	Vector    VectorConfig    `json:"vector" yaml:"vector"`
	Layout    LayoutConfig    `json:"layout" yaml:"layout"`
	Export    ExportConfig    `json:"export" yaml:"export"`
}

// DefaultConfig returns the settings the batch wrappers assume.
func DefaultConfig() Config {
	return Config{
		Normalize: NormalizeConfig{
			TargetDPI: 300,
			Scale:     2.0,
			Blur:      0.8,
			Preset:    "default",
		},
		Stencil: StencilConfig{
			Threshold:    200,
			DetailDelta:  60,
			Blur:         0.6,
			DilatePx:     1,
			DetailJoinPx: 2,
			Invert:       InvertAuto,
			MinBridgeMM:  1.2,
		},
		Vector: VectorConfig{
			AntialiasRadius: 0.8,
			MinArea:         4.0,
		},
		Layout: LayoutConfig{
			DPI:      300,
			Cols:     3,
			Rows:     4,
			Page:     "A4",
			MarginMM: 10.0,
			Fit:      FitContain,
		},
		Export: ExportConfig{
			Format:     FormatBoth,
			Background: "#8E8E8E",
		},
	}
}

// NormalizePresets maps preset names to normalization bundles. Additional
// presets can be layered in from the config file.
func NormalizePresets() map[string]NormalizeConfig {
	return map[string]NormalizeConfig{
		"default": {TargetDPI: 300, Scale: 2.0, Blur: 0.8, Preset: "default"},
		"noblur":  {TargetDPI: 300, Scale: 2.0, Blur: 0.0, Preset: "noblur"},
	}
}
