// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package heatmap

import "image"

// Map is the click heatmap controller. It owns the surface dimensions, the
// intensity grid, the raw click points, the display toggles and the
// background image.
//
// Map is NOT safe for concurrent use. All methods, including
// [Map.FinishImage], must be called from the goroutine that owns the Map.
type Map struct {
	opts options

	baseWidth, baseHeight int
	width, height         int

	grid     *Grid
	kernel   *Kernel
	points   *PointSet
	renderer *Renderer

	background image.Image
	imageState ImageState
	imageGen   uint64

	labels bool
	dimmed bool
}

// State is a snapshot of the observable Map state.
type State struct {
	Width, Height int
	Clicks        int
	Points        int
	Dimmed        bool
	LabelsShown   bool
	Image         ImageState
}

// New creates a Map for a width x height surface. Dimensions are clamped to
// at least 1 and to the configured maximum size.
func New(width, height int, opts ...Option) *Map {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	m := &Map{
		opts:     o,
		kernel:   NewKernel(min(o.heatRadius, o.maxCells()), o.boost),
		renderer: NewRenderer(o.labelStyle),
		labels:   o.labels,
		dimmed:   o.dimmed,
	}
	m.baseWidth, m.baseHeight = m.clamp(width, height)
	m.width, m.height = m.baseWidth, m.baseHeight
	m.grid = NewGrid(m.width, m.height, o.gridSize)
	m.points = NewPointSet(m.width)
	return m
}

func (m *Map) clamp(width, height int) (int, int) {
	return min(max(width, 1), m.opts.maxWidth), min(max(height, 1), m.opts.maxHeight)
}

// Width returns the surface width in pixels.
func (m *Map) Width() int { return m.width }

// Height returns the surface height in pixels.
func (m *Map) Height() int { return m.height }

// Grid returns the intensity grid. Callers must not retain it across
// Resize.
func (m *Map) Grid() *Grid { return m.grid }

// Colors returns the color mapper.
func (m *Map) Colors() ColorMapper { return m.opts.colors }

// Intensity returns the accumulated heat at pixel (x, y).
func (m *Map) Intensity(x, y int) float64 { return m.grid.At(x, y) }

// Resize changes the surface dimensions. The grid is reallocated and all
// clicks are cleared, even when the size does not change.
func (m *Map) Resize(width, height int) {
	m.width, m.height = m.clamp(width, height)
	m.grid = NewGrid(m.width, m.height, m.opts.gridSize)
	m.points.Reset(m.width)
	Logger().Debug("heatmap: resize", "width", m.width, "height", m.height,
		"cols", m.grid.Cols(), "rows", m.grid.Rows())
}

// Reset clears all heat and clicks. Dimensions, toggles and the
// background are kept.
func (m *Map) Reset() {
	m.grid.Reset()
	m.points.Reset(m.width)
	Logger().Debug("heatmap: reset")
}

// HandleClick records a click at surface pixel (x, y). Clicks outside
// [0, width) x [0, height) are ignored and reported as false.
//
// HandleClick does not render; call [Map.Render] afterwards.
func (m *Map) HandleClick(x, y int) bool {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		Logger().Debug("heatmap: click outside surface", "x", x, "y", y)
		return false
	}
	m.AddHeat(x, y)
	m.points.Add(x, y)
	return true
}

// AddHeat stamps the heat kernel centered on the cell containing pixel
// (x, y). It does not record a click.
func (m *Map) AddHeat(x, y int) {
	m.kernel.Apply(m.grid, x, y)
}

// PointMergeRadius returns the label merge radius for a point at (x, y):
// the hot-region radius where intensity reaches the hot threshold, the
// regular radius elsewhere.
func (m *Map) PointMergeRadius(x, y int) float64 {
	if m.grid.At(x, y) >= m.HotThreshold() {
		return m.opts.hotMergeRadius
	}
	return m.opts.mergeRadius
}

// HotThreshold returns the intensity at which a region counts as hot.
func (m *Map) HotThreshold() float64 {
	return m.opts.colors.Max() * m.opts.hotRatio
}

// Points returns the raw click points in first-click order.
func (m *Map) Points() []Point { return m.points.Points() }

// Clusters summarizes the current clicks into labels.
func (m *Map) Clusters() []Cluster {
	return Summarize(m.points.Points(), m.PointMergeRadius)
}

// ClickCount returns the number of accepted clicks since the last reset.
func (m *Map) ClickCount() int { return m.points.Total() }

// PointCount returns the number of distinct pixels clicked.
func (m *Map) PointCount() int { return m.points.Len() }

// Dimmed reports whether the background is drawn dimmed.
func (m *Map) Dimmed() bool { return m.dimmed }

// LabelsShown reports whether cluster labels are drawn.
func (m *Map) LabelsShown() bool { return m.labels }

// SetDimmed sets the background dim toggle.
func (m *Map) SetDimmed(on bool) { m.dimmed = on }

// SetLabels sets the label toggle.
func (m *Map) SetLabels(on bool) { m.labels = on }

// ToggleDim flips the dim toggle and returns the new value.
func (m *Map) ToggleDim() bool {
	m.dimmed = !m.dimmed
	return m.dimmed
}

// ToggleLabels flips the label toggle and returns the new value.
func (m *Map) ToggleLabels() bool {
	m.labels = !m.labels
	return m.labels
}

// ImageState returns the background image state.
func (m *Map) ImageState() ImageState { return m.imageState }

// State returns a snapshot of the observable state.
func (m *Map) State() State {
	return State{
		Width:       m.width,
		Height:      m.height,
		Clicks:      m.ClickCount(),
		Points:      m.PointCount(),
		Dimmed:      m.dimmed,
		LabelsShown: m.labels,
		Image:       m.imageState,
	}
}

// Frame composes the current state into a frame. Clusters are computed
// only when labels are shown.
func (m *Map) Frame() Frame {
	f := Frame{
		Width:      m.width,
		Height:     m.height,
		Background: m.background,
		Dimmed:     m.dimmed,
		DimOpacity: m.opts.dimOpacity,
		Grid:       m.grid,
		Colors:     m.opts.colors,
		ShowLabels: m.labels,
		Legend:     m.opts.legend,
	}
	if m.labels {
		f.Clusters = m.Clusters()
	}
	return f
}

// Render draws the current frame onto s.
func (m *Map) Render(s Surface) {
	m.renderer.Render(s, m.Frame())
}

// Renderer returns the renderer used by Render.
func (m *Map) Renderer() *Renderer { return m.renderer }
