// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package heatmap

import "image"

// Surface is the drawing target a Map renders onto.
//
// It is the narrow set of primitives the renderer needs: rectangle clears
// and fills, scaled image blits with global opacity, circles and centered
// text with independent fill and stroke styling. [ContextSurface] adapts a
// gg.Context; tests use a recording implementation.
//
// Surfaces are NOT thread-safe. A surface is driven from the goroutine that
// owns the Map.
type Surface interface {
	// Size returns the surface dimensions in pixels.
	Size() (width, height int)

	// ClearRect resets the rectangle to fully transparent.
	ClearRect(x, y, w, h float64)

	// FillRect fills the rectangle with a solid color, blending over
	// existing content.
	FillRect(x, y, w, h float64, c RGBA)

	// DrawImage draws img scaled into the target rectangle.
	// Opacity is in [0, 1].
	DrawImage(img image.Image, x, y, w, h, opacity float64)

	// DrawCircle draws a circle centered at (cx, cy).
	DrawCircle(cx, cy, radius float64, style CircleStyle)

	// DrawText draws s centered on (cx, cy).
	DrawText(s string, cx, cy float64, style TextStyle)
}

// ImageReleaser is implemented by surfaces that cache converted images.
// The renderer calls ReleaseImage on frames without a background so the
// cached copy does not outlive the Map's handle.
type ImageReleaser interface {
	ReleaseImage()
}

// CircleStyle describes how a circle is painted. Either part is skipped
// when its alpha is zero.
type CircleStyle struct {
	Fill      RGBA
	Stroke    RGBA
	LineWidth float64
}

// TextStyle describes how text is painted. The stroke is an outline drawn
// beneath the fill; it is skipped when its alpha is zero.
type TextStyle struct {
	Fill        RGBA
	Stroke      RGBA
	StrokeWidth float64

	// Size is the font size in points.
	Size float64
}
