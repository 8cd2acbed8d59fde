// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command heatmap renders click heatmaps, headless from event scripts or
// interactively in a gogpu window.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/gg"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gogpu/heatmap"
	"github.com/gogpu/heatmap/internal/config"
)

// version is set by the build.
var version = "dev"

type settings struct {
	configPath string
	verbose    int

	width, height int
	gridSize      int
	heatRadius    int
	palette       string
	legend        bool
	background    string
}

var global settings

var rootCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Render click heatmaps",
	Long: `heatmap accumulates clicks into a Gaussian heat field, colors it through a
four-stop gradient and labels clustered click counts.

Use "render" to replay an event script into a PNG and "view" to click
around in a window.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		setupLogging(global.verbose)
	},
}

func init() {
	bindGlobalFlags(rootCmd.PersistentFlags(), &global)
	rootCmd.AddCommand(renderCmd, viewCmd, versionCmd)
}

// bindGlobalFlags registers the flags shared by all subcommands.
func bindGlobalFlags(pf *pflag.FlagSet, s *settings) {
	pf.StringVarP(&s.configPath, "config", "c", "", "YAML configuration file")
	pf.CountVarP(&s.verbose, "verbose", "v", "log to stderr (-v info, -vv debug)")
	pf.IntVar(&s.width, "width", heatmap.DefaultWidth, "surface width in pixels")
	pf.IntVar(&s.height, "height", heatmap.DefaultHeight, "surface height in pixels")
	pf.IntVar(&s.gridSize, "grid-size", heatmap.DefaultGridSize, "grid cell size in pixels")
	pf.IntVar(&s.heatRadius, "heat-radius", heatmap.DefaultHeatRadius, "heat kernel radius in cells")
	pf.StringVar(&s.palette, "palette", "", `palette preset ("default", "legacy")`)
	pf.BoolVar(&s.legend, "legend", false, "draw the gradient legend")
	pf.StringVar(&s.background, "background", "", "background image")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging routes heatmap and gg logs to stderr.
func setupLogging(verbosity int) {
	if verbosity <= 0 {
		return
	}
	level := slog.LevelInfo
	if verbosity > 1 {
		level = slog.LevelDebug
	}
	l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	heatmap.SetLogger(l)
	gg.SetLogger(l)
}

// load reads the config file, if any, and applies flags that were set
// explicitly on top of it.
func (s *settings) load(flags *pflag.FlagSet) (config.File, error) {
	cfg := config.Default()
	if s.configPath != "" {
		var err error
		if cfg, err = config.Load(s.configPath); err != nil {
			return cfg, err
		}
	}

	if flags.Changed("width") {
		cfg.Width = s.width
	}
	if flags.Changed("height") {
		cfg.Height = s.height
	}
	if flags.Changed("grid-size") {
		cfg.GridSize = s.gridSize
	}
	if flags.Changed("heat-radius") {
		r := s.heatRadius
		cfg.HeatRadius = &r
	}
	if flags.Changed("palette") {
		cfg.Palette = config.PaletteSpec{Preset: s.palette}
	}
	if flags.Changed("legend") {
		on := s.legend
		cfg.Legend = &on
	}
	if flags.Changed("background") {
		cfg.Background = s.background
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "heatmap %s\n", version)
	},
}
