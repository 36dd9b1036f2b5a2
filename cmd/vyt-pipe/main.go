// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the vyt-pipe CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/vyt-pipe/internal/pipeline"
	"github.com/pdiddy/vyt-pipe/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the vyt-pipe CLI.
var rootCmd = &cobra.Command{
	Use:   "vyt-pipe [image]",
	Short: "Generate papercut stencil panels from images",
	Long: `vyt-pipe turns a raster image into a papercut stencil: it extracts a
binary silhouette, traces it into vector contours, lays the result out on
a printable grid of pages, and writes PPTX and PDF documents alongside
PNG previews.

Input may be PNG, JPEG, GIF, or a base64 wrapper file (.xbase64).`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		logger := log.New(os.Stderr)
		if viper.GetBool("verbose") {
			logger.SetLevel(log.DebugLevel)
		}

		_, err = pipeline.Run(pipeline.Options{
			Input:  args[0],
			Output: viper.GetString("output"),
			Cfg:    cfg,
			Logger: logger,
		})
		if err != nil {
			logger.Error(err.Error())
		}
		return err
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./vyt-pipe.yaml or ~/.config/vyt-pipe/config.yaml)")

	f := rootCmd.Flags()
	f.String("output", "", "output base path; artifact suffixes are appended (required)")
	f.String("format", "both", "document formats to write: pptx, pdf, or both")
	f.Bool("verbose", false, "enable debug logging")

	f.Int("normalize-dpi", 300, "target density for supersampled smoothing")
	f.Float64("normalize-scale", 2.0, "minimum upscale factor during normalization")
	f.Float64("normalize-blur", 0.8, "normalization blur sigma at source scale")
	f.String("normalize-preset", "default", "normalization preset: default or noblur")

	f.Int("threshold", 200, "luminance threshold for material (0 = auto)")
	f.Int("detail-delta", 60, "local contrast needed for the fine-detail pass")
	f.Float64("blur", 0.6, "pre-threshold blur sigma")
	f.Int("dilate-px", 1, "material dilation radius in pixels")
	f.Int("detail-join-px", 2, "closing radius joining nearby material")
	f.String("invert-mode", "auto", "silhouette polarity: auto, light, or dark (aliases: keep, flip)")
	f.Float64("min-bridge-mm", 1.2, "thinnest printed bridge to preserve, in mm")

	f.Float64("antialias-radius", 0.8, "contour smoothing radius in pixels")
	f.Float64("min-area", 4.0, "discard contours below this area in square pixels")

	f.Int("dpi", 300, "print resolution for page geometry")
	f.Int("cols", 3, "grid columns")
	f.Int("rows", 4, "grid rows")
	f.String("page", "A4", "page size: A4, A3, or LETTER")
	f.Float64("margin-mm", 10, "page margin in mm")
	f.Float64("overlap-mm", 0, "neighbouring-page overlap in mm")
	f.Float64("shift-x-mm", 0, "horizontal content shift in mm")
	f.Float64("shift-y-mm", 0, "vertical content shift in mm")
	f.String("fit-mode", "fit", "content scaling: fit, fill, or stretch")

	f.String("bg-gray", "#8E8E8E", "panel background colour (hex or auto)")
	f.Bool("debug-panel", false, "also write an annotated panel preview with seams and page numbers")
	f.Bool("pack", false, "bundle all artifacts into a single zip")

	rootCmd.MarkFlagRequired("output")
	viper.BindPFlags(f)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("vyt-pipe")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "vyt-pipe"))
		}
	}

	viper.SetEnvPrefix("VYT_PIPE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// buildConfig assembles the stage configuration from defaults, the
// resolved preset, config file values, and explicit flags, in that
// order of increasing precedence.
func buildConfig(cmd *cobra.Command) (types.Config, error) {
	cfg := types.DefaultConfig()

	preset, ok := types.NormalizePresets()[viper.GetString("normalize-preset")]
	if !ok {
		return cfg, fmt.Errorf("unknown normalize preset %q", viper.GetString("normalize-preset"))
	}
	cfg.Normalize = preset
	if cmd.Flags().Changed("normalize-dpi") {
		cfg.Normalize.TargetDPI = viper.GetInt("normalize-dpi")
	}
	if cmd.Flags().Changed("normalize-scale") {
		cfg.Normalize.Scale = viper.GetFloat64("normalize-scale")
	}
	if cmd.Flags().Changed("normalize-blur") {
		cfg.Normalize.Blur = viper.GetFloat64("normalize-blur")
	}

	cfg.Stencil.Threshold = viper.GetInt("threshold")
	cfg.Stencil.DetailDelta = viper.GetInt("detail-delta")
	cfg.Stencil.Blur = viper.GetFloat64("blur")
	cfg.Stencil.DilatePx = viper.GetInt("dilate-px")
	cfg.Stencil.DetailJoinPx = viper.GetInt("detail-join-px")
	cfg.Stencil.MinBridgeMM = viper.GetFloat64("min-bridge-mm")
	invert, err := parseInvertMode(viper.GetString("invert-mode"))
	if err != nil {
		return cfg, err
	}
	cfg.Stencil.Invert = invert

	cfg.Vector.AntialiasRadius = viper.GetFloat64("antialias-radius")
	cfg.Vector.MinArea = viper.GetFloat64("min-area")

	cfg.Layout.DPI = viper.GetInt("dpi")
	cfg.Layout.Cols = viper.GetInt("cols")
	cfg.Layout.Rows = viper.GetInt("rows")
	cfg.Layout.Page = viper.GetString("page")
	cfg.Layout.MarginMM = viper.GetFloat64("margin-mm")
	cfg.Layout.OverlapMM = viper.GetFloat64("overlap-mm")
	cfg.Layout.ShiftXMM = viper.GetFloat64("shift-x-mm")
	cfg.Layout.ShiftYMM = viper.GetFloat64("shift-y-mm")
	fit, err := parseFitMode(viper.GetString("fit-mode"))
	if err != nil {
		return cfg, err
	}
	cfg.Layout.Fit = fit

	format, err := parseFormat(viper.GetString("format"))
	if err != nil {
		return cfg, err
	}
	cfg.Export.Format = format
	cfg.Export.Background = viper.GetString("bg-gray")
	cfg.Export.DebugPanel = viper.GetBool("debug-panel")
	cfg.Export.Pack = viper.GetBool("pack")

	return cfg, nil
}

func parseFormat(s string) (types.OutputFormat, error) {
	switch types.OutputFormat(s) {
	case types.FormatPPTX, types.FormatPDF, types.FormatBoth:
		return types.OutputFormat(s), nil
	}
	return "", fmt.Errorf("unknown format %q (want pptx, pdf, or both)", s)
}

func parseInvertMode(s string) (types.InvertMode, error) {
	switch s {
	case "auto":
		return types.InvertAuto, nil
	case "light", "keep":
		return types.InvertLight, nil
	case "dark", "flip":
		return types.InvertDark, nil
	}
	return "", fmt.Errorf("unknown invert mode %q (want auto, light, or dark)", s)
}

func parseFitMode(s string) (types.FitMode, error) {
	switch types.FitMode(s) {
	case types.FitContain, types.FitCover, types.FitStretch:
		return types.FitMode(s), nil
	}
	return "", fmt.Errorf("unknown fit mode %q (want fit, fill, or stretch)", s)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
