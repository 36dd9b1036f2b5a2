// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// Report is the machine-readable run summary written next to the
// generated artifacts.
type Report struct {
	// Input is the source image path as given on the command line.
	Input string `yaml:"input"`
	// GeneratedAt records when the run finished.
	GeneratedAt time.Time `yaml:"generated_at"`
	// ThresholdUsed is the luminance threshold actually applied,
	// including an auto-derived one.
	ThresholdUsed int `yaml:"threshold_used"`
	// MaterialFraction is the share of mask pixels kept as material.
	MaterialFraction float64 `yaml:"material_fraction"`
	// Flipped reports whether auto polarity inverted the mask.
	Flipped bool `yaml:"flipped"`
	// Contours counts traced outer boundaries.
	Contours int `yaml:"contours"`
	// Holes counts traced hole boundaries.
	Holes int `yaml:"holes"`
	// Grid is the tiling in "COLSxROWS_PAGE" form.
	Grid string `yaml:"grid"`
	// Warnings lists non-fatal findings, such as content shifted off
	// the panel.
	Warnings []string `yaml:"warnings,omitempty"`
	// Artifacts lists every artifact the run attempted, in write order,
	// each with its outcome.
	Artifacts []ReportArtifact `yaml:"artifacts"`
}

// ReportArtifact is one attempted artifact and its outcome.
type ReportArtifact struct {
	// Name is the artifact kind, such as "panel" or "pdf".
	Name string `yaml:"name"`
	// Path is the destination path.
	Path string `yaml:"path"`
	// Status is "ok" or "failed".
	Status string `yaml:"status"`
	// Error carries the failure detail when Status is "failed".
	Error string `yaml:"error,omitempty"`
}

// WriteReport writes the run report as YAML.
func WriteReport(path string, r Report) error {
	return writeAtomic("report", path, func(f *os.File) error {
		data, err := yaml.Marshal(r)
		if err != nil {
			return err
		}
		_, err = f.Write(data)
		return err
	})
}
