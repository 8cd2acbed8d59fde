// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads heatmap settings from YAML files.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/heatmap"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid")

// File is the YAML configuration. Zero and absent fields keep the engine
// defaults; pointer fields distinguish an explicit zero or false.
type File struct {
	Width  int `yaml:"width"`  // initial surface width in pixels
	Height int `yaml:"height"` // initial surface height in pixels

	GridSize   int     `yaml:"grid_size"`   // cell edge in pixels
	HeatRadius *int    `yaml:"heat_radius"` // kernel radius in cells
	Boost      float64 `yaml:"boost"`       // peak weight per click

	MaxIntensity float64  `yaml:"max_intensity"` // intensity shown as the hottest color
	Gamma        float64  `yaml:"gamma"`         // exponent applied to normalized intensity
	MinAlpha     *float64 `yaml:"min_alpha"`     // alpha floor for faint heat

	// Palette is either a preset name ("default", "legacy") or four hex
	// colors, coolest first.
	Palette PaletteSpec `yaml:"palette"`

	MergeRadius    *float64 `yaml:"merge_radius"`     // label merge radius in pixels
	HotMergeRadius *float64 `yaml:"hot_merge_radius"` // merge radius inside hot regions
	HotRatio       float64  `yaml:"hot_ratio"`        // hot threshold as a fraction of max_intensity

	MaxWidth   int     `yaml:"max_width"`   // surface width bound
	MaxHeight  int     `yaml:"max_height"`  // surface height bound
	DimOpacity float64 `yaml:"dim_opacity"` // dimmed background opacity

	Labels *bool `yaml:"labels"` // show cluster labels
	Dimmed *bool `yaml:"dimmed"` // dim the background
	Legend *bool `yaml:"legend"` // draw the gradient legend

	Background string `yaml:"background"` // background image path
}

// PaletteSpec holds a palette preset name or explicit stops.
type PaletteSpec struct {
	Preset string
	Stops  []string
}

// UnmarshalYAML accepts a scalar preset name or a sequence of colors.
func (p *PaletteSpec) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Decode(&p.Preset)
	case yaml.SequenceNode:
		return n.Decode(&p.Stops)
	}
	return fmt.Errorf("%w: line %d: palette must be a name or a list of colors", ErrInvalid, n.Line)
}

// IsZero reports whether no palette was given.
func (p PaletteSpec) IsZero() bool {
	return p.Preset == "" && len(p.Stops) == 0
}

// Palette resolves the preset or parses the stops.
func (p PaletteSpec) Palette() (heatmap.Palette, error) {
	if len(p.Stops) > 0 {
		pal, err := heatmap.ParsePalette(p.Stops)
		if err != nil {
			return pal, fmt.Errorf("%w: palette: %w", ErrInvalid, err)
		}
		return pal, nil
	}
	switch strings.ToLower(p.Preset) {
	case "", "default":
		return heatmap.DefaultPalette(), nil
	case "legacy":
		return heatmap.LegacyPalette(), nil
	}
	return heatmap.Palette{}, fmt.Errorf("%w: unknown palette %q", ErrInvalid, p.Preset)
}

// Default returns the configuration used when no file is given.
func Default() File {
	return File{
		Width:  heatmap.DefaultWidth,
		Height: heatmap.DefaultHeight,
	}
}

// Load reads and validates the file at path.
func Load(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses YAML from r on top of Default and validates the result.
// Unknown keys are rejected.
func Decode(r io.Reader) (File, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		if errors.Is(err, ErrInvalid) {
			return File{}, err
		}
		return File{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return File{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (f File) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(f.Width >= 0 && f.Height >= 0, "negative size %dx%d", f.Width, f.Height)
	check(f.GridSize >= 0, "grid_size %d < 0", f.GridSize)
	check(f.HeatRadius == nil || *f.HeatRadius >= 0, "heat_radius < 0")
	if maxW, maxH := f.maxSize(); f.HeatRadius != nil && *f.HeatRadius > max(maxW, maxH) {
		check(false, "heat_radius %d exceeds the largest surface side %d", *f.HeatRadius, max(maxW, maxH))
	}
	check(f.Boost >= 0, "boost %v < 0", f.Boost)
	check(f.MaxIntensity >= 0, "max_intensity %v < 0", f.MaxIntensity)
	check(f.Gamma >= 0, "gamma %v < 0", f.Gamma)
	check(f.MinAlpha == nil || (*f.MinAlpha >= 0 && *f.MinAlpha <= 1), "min_alpha outside [0, 1]")
	check(f.MergeRadius == nil || *f.MergeRadius >= 0, "merge_radius < 0")
	check(f.HotMergeRadius == nil || *f.HotMergeRadius >= 0, "hot_merge_radius < 0")
	check(f.HotRatio >= 0, "hot_ratio %v < 0", f.HotRatio)
	check(f.MaxWidth >= 0 && f.MaxHeight >= 0, "negative max size %dx%d", f.MaxWidth, f.MaxHeight)
	check(f.DimOpacity >= 0 && f.DimOpacity <= 1, "dim_opacity %v outside [0, 1]", f.DimOpacity)
	if _, err := f.Palette.Palette(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// maxSize returns the surface bound, falling back to the engine defaults.
func (f File) maxSize() (w, h int) {
	w, h = f.MaxWidth, f.MaxHeight
	if w <= 0 {
		w = heatmap.DefaultMaxWidth
	}
	if h <= 0 {
		h = heatmap.DefaultMaxHeight
	}
	return w, h
}

// Options converts the file into heatmap options. Unset fields produce no
// option.
func (f File) Options() ([]heatmap.Option, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	var opts []heatmap.Option
	add := func(set bool, o heatmap.Option) {
		if set {
			opts = append(opts, o)
		}
	}

	add(f.GridSize > 0, heatmap.WithGridSize(f.GridSize))
	if f.HeatRadius != nil {
		opts = append(opts, heatmap.WithHeatRadius(*f.HeatRadius))
	}
	add(f.Boost > 0, heatmap.WithBoost(f.Boost))
	add(f.MaxIntensity > 0, heatmap.WithMaxIntensity(f.MaxIntensity))
	add(f.Gamma > 0, heatmap.WithGamma(f.Gamma))
	if f.MinAlpha != nil {
		opts = append(opts, heatmap.WithMinAlpha(*f.MinAlpha))
	}
	if !f.Palette.IsZero() {
		pal, _ := f.Palette.Palette()
		opts = append(opts, heatmap.WithPalette(pal))
	}
	if f.MergeRadius != nil {
		opts = append(opts, heatmap.WithMergeRadius(*f.MergeRadius))
	}
	if f.HotMergeRadius != nil {
		opts = append(opts, heatmap.WithHotMergeRadius(*f.HotMergeRadius))
	}
	add(f.HotRatio > 0, heatmap.WithHotRatio(f.HotRatio))
	add(f.MaxWidth > 0 || f.MaxHeight > 0, heatmap.WithMaxSize(f.MaxWidth, f.MaxHeight))
	add(f.DimOpacity > 0, heatmap.WithDimOpacity(f.DimOpacity))
	if f.Labels != nil {
		opts = append(opts, heatmap.WithLabels(*f.Labels))
	}
	if f.Dimmed != nil {
		opts = append(opts, heatmap.WithDimmed(*f.Dimmed))
	}
	if f.Legend != nil {
		opts = append(opts, heatmap.WithLegend(*f.Legend))
	}
	return opts, nil
}

// WindowOptions is Options with the maximum size bounded to the initial
// surface, for windows that keep their size when a background image loads.
func (f File) WindowOptions() ([]heatmap.Option, error) {
	opts, err := f.Options()
	if err != nil {
		return nil, err
	}
	maxW, maxH := f.maxSize()
	w := min(max(f.Width, 1), maxW)
	h := min(max(f.Height, 1), maxH)
	return append(opts, heatmap.WithMaxSize(w, h)), nil
}

// NewMap builds a Map from the file.
func (f File) NewMap() (*heatmap.Map, error) {
	opts, err := f.Options()
	if err != nil {
		return nil, err
	}
	return heatmap.New(f.Width, f.Height, opts...), nil
}
