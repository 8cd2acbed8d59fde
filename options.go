// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package heatmap

// Surface and grid defaults.
const (
	DefaultWidth      = 800
	DefaultHeight     = 600
	DefaultGridSize   = 4
	DefaultHeatRadius = 6
	DefaultMaxWidth   = 1600
	DefaultMaxHeight  = 1200
	DefaultDimOpacity = 0.35
)

// Option configures a Map during creation.
//
// Example:
//
//	m := heatmap.New(800, 600,
//	    heatmap.WithGridSize(1),
//	    heatmap.WithHeatRadius(16),
//	)
//
// Options given out-of-range values (zero, negative) leave the default in
// place.
type Option func(*options)

// options holds the configuration of a Map.
type options struct {
	gridSize       int
	heatRadius     int
	boost          float64
	colors         ColorMapper
	mergeRadius    float64
	hotMergeRadius float64
	hotRatio       float64
	maxWidth       int
	maxHeight      int
	dimOpacity     float64
	labels         bool
	dimmed         bool
	legend         bool
	labelStyle     LabelStyle
}

// defaultOptions returns the default Map options.
func defaultOptions() options {
	return options{
		gridSize:       DefaultGridSize,
		heatRadius:     DefaultHeatRadius,
		boost:          DefaultBoost,
		colors:         DefaultColorMapper(),
		mergeRadius:    DefaultMergeRadius,
		hotMergeRadius: DefaultHotMergeRadius,
		hotRatio:       DefaultHotRatio,
		maxWidth:       DefaultMaxWidth,
		maxHeight:      DefaultMaxHeight,
		dimOpacity:     DefaultDimOpacity,
		labels:         true,
		labelStyle:     DefaultLabelStyle(),
	}
}

// maxCells returns the number of cells along the longest side of the
// largest allowed grid. A kernel radius beyond it never reaches another
// cell.
func (o *options) maxCells() int {
	side := max(o.maxWidth, o.maxHeight)
	return (side + o.gridSize - 1) / o.gridSize
}

// WithGridSize sets the edge length of a grid cell in pixels.
func WithGridSize(px int) Option {
	return func(o *options) {
		if px > 0 {
			o.gridSize = px
		}
	}
}

// WithHeatRadius sets the kernel radius in grid cells. Zero gives a
// single-cell stamp. Radii wider than the largest allowed grid are clamped
// by [New].
func WithHeatRadius(cells int) Option {
	return func(o *options) {
		if cells >= 0 {
			o.heatRadius = cells
		}
	}
}

// WithBoost sets the peak weight added per click.
func WithBoost(b float64) Option {
	return func(o *options) {
		if b > 0 {
			o.boost = b
		}
	}
}

// WithMaxIntensity sets the intensity rendered with the hottest color.
// It also scales the hot-region threshold used for label merging.
func WithMaxIntensity(v float64) Option {
	return func(o *options) {
		if v > 0 {
			o.colors.MaxIntensity = v
		}
	}
}

// WithGamma sets the exponent applied to normalized intensity.
func WithGamma(g float64) Option {
	return func(o *options) {
		if g > 0 {
			o.colors.Gamma = g
		}
	}
}

// WithMinAlpha sets the alpha floor for faint heat.
func WithMinAlpha(a float64) Option {
	return func(o *options) {
		if a >= 0 && a <= 1 {
			o.colors.MinAlpha = a
		}
	}
}

// WithPalette replaces the gradient stops.
func WithPalette(p Palette) Option {
	return func(o *options) {
		o.colors.Palette = p
	}
}

// WithMergeRadius sets the label merge radius, in pixels, used outside hot
// regions.
func WithMergeRadius(px float64) Option {
	return func(o *options) {
		if px >= 0 {
			o.mergeRadius = px
		}
	}
}

// WithHotMergeRadius sets the label merge radius, in pixels, used for points
// lying in hot regions.
func WithHotMergeRadius(px float64) Option {
	return func(o *options) {
		if px >= 0 {
			o.hotMergeRadius = px
		}
	}
}

// WithHotRatio sets the fraction of the maximum intensity at which a point
// is considered to lie in a hot region.
func WithHotRatio(r float64) Option {
	return func(o *options) {
		if r > 0 {
			o.hotRatio = r
		}
	}
}

// WithMaxSize bounds the surface dimensions. Background images are fitted
// inside these bounds.
func WithMaxSize(width, height int) Option {
	return func(o *options) {
		if width > 0 {
			o.maxWidth = width
		}
		if height > 0 {
			o.maxHeight = height
		}
	}
}

// WithDimOpacity sets the opacity used to draw a dimmed background image.
func WithDimOpacity(a float64) Option {
	return func(o *options) {
		if a > 0 && a <= 1 {
			o.dimOpacity = a
		}
	}
}

// WithLabels sets whether cluster labels are shown initially.
func WithLabels(on bool) Option {
	return func(o *options) {
		o.labels = on
	}
}

// WithDimmed sets whether the background image is dimmed initially.
func WithDimmed(on bool) Option {
	return func(o *options) {
		o.dimmed = on
	}
}

// WithLegend enables the gradient legend strip.
func WithLegend(on bool) Option {
	return func(o *options) {
		o.legend = on
	}
}

// WithLabelStyle replaces the cluster label appearance.
func WithLabelStyle(s LabelStyle) Option {
	return func(o *options) {
		o.labelStyle = s
	}
}
