// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package heatmap

import (
	"image"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Label appearance defaults.
const (
	DefaultLabelRadius = 12.0
	DefaultLabelSize   = 12.0
)

// Legend geometry in pixels.
const (
	legendSteps  = 32
	legendWidth  = 160.0
	legendHeight = 10.0
	legendMargin = 12.0
)

// LabelStyle describes how cluster labels are drawn: a ring around the
// centroid with the member count centered inside it.
type LabelStyle struct {
	Radius float64
	Ring   CircleStyle
	Text   TextStyle
}

// DefaultLabelStyle returns a dark translucent ring with white outlined
// digits.
func DefaultLabelStyle() LabelStyle {
	return LabelStyle{
		Radius: DefaultLabelRadius,
		Ring: CircleStyle{
			Fill:      RGBA{R: 0, G: 0, B: 0, A: 0.45},
			Stroke:    White.WithAlpha(0.9),
			LineWidth: 1.5,
		},
		Text: TextStyle{
			Fill:        White,
			Stroke:      Black.WithAlpha(0.8),
			StrokeWidth: 1,
			Size:        DefaultLabelSize,
		},
	}
}

// Frame is everything needed to draw one heatmap image.
type Frame struct {
	Width, Height int

	// Background is drawn scaled to the frame when non-nil.
	Background image.Image
	Dimmed     bool
	DimOpacity float64

	Grid   *Grid
	Colors ColorMapper

	// Clusters are drawn as labels when ShowLabels is set.
	Clusters   []Cluster
	ShowLabels bool

	Legend bool
}

// Bounds returns the frame rectangle.
func (f Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width, f.Height)
}

// Renderer draws frames onto a Surface.
//
// A Renderer keeps no per-frame state; it may be reused for any number of
// frames and surfaces.
type Renderer struct {
	Labels LabelStyle

	printer *message.Printer
}

// NewRenderer creates a renderer drawing labels with the given style.
func NewRenderer(labels LabelStyle) *Renderer {
	return &Renderer{
		Labels:  labels,
		printer: message.NewPrinter(language.English),
	}
}

// Render draws f: clear, background, heat cells, labels, then the
// optional legend.
func (r *Renderer) Render(s Surface, f Frame) {
	sw, sh := s.Size()
	s.ClearRect(0, 0, float64(sw), float64(sh))

	if f.Background == nil {
		if ir, ok := s.(ImageReleaser); ok {
			ir.ReleaseImage()
		}
	} else {
		opacity := 1.0
		if f.Dimmed {
			opacity = f.DimOpacity
		}
		s.DrawImage(f.Background, 0, 0, float64(f.Width), float64(f.Height), opacity)
	}

	if f.Grid != nil {
		r.drawCells(s, f)
	}

	if f.ShowLabels {
		for _, c := range f.Clusters {
			r.drawLabel(s, c)
		}
	}

	if f.Legend {
		r.drawLegend(s, f)
	}
}

func (r *Renderer) drawCells(s Surface, f Frame) {
	bounds := f.Bounds()
	for cell, v := range f.Grid.Active() {
		rect := f.Grid.CellRect(cell.X, cell.Y).Intersect(bounds)
		if rect.Empty() {
			continue
		}
		s.FillRect(
			float64(rect.Min.X), float64(rect.Min.Y),
			float64(rect.Dx()), float64(rect.Dy()),
			f.Colors.Color(v),
		)
	}
}

func (r *Renderer) drawLabel(s Surface, c Cluster) {
	s.DrawCircle(c.X, c.Y, r.Labels.Radius, r.Labels.Ring)
	s.DrawText(r.FormatCount(c.Count), c.X, c.Y, r.Labels.Text)
}

// FormatCount formats a cluster count for display, grouping digits.
func (r *Renderer) FormatCount(n int) string {
	return r.sprintf("%d", n)
}

func (r *Renderer) sprintf(format string, args ...any) string {
	if r.printer == nil {
		r.printer = message.NewPrinter(language.English)
	}
	return r.printer.Sprintf(format, args...)
}

// drawLegend draws the gradient strip in the bottom-left corner, from zero
// to the maximum intensity.
func (r *Renderer) drawLegend(s Surface, f Frame) {
	x := legendMargin
	y := float64(f.Height) - legendMargin - legendHeight
	if y < 0 || float64(f.Width) < legendWidth+2*legendMargin {
		return
	}

	maxIntensity := f.Colors.Max()
	step := legendWidth / legendSteps
	for i := range legendSteps {
		v := maxIntensity * float64(i+1) / legendSteps
		s.FillRect(x+float64(i)*step, y, step, legendHeight, f.Colors.Color(v).WithAlpha(1))
	}

	style := r.Labels.Text
	style.Size = legendHeight
	ty := y - legendHeight
	s.DrawText("0", x, ty, style)
	s.DrawText(strconv.FormatFloat(maxIntensity, 'g', 4, 64), x+legendWidth, ty, style)
}
