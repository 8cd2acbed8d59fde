// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package heatmap

import (
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// ContextSurface adapts a gg.Context to the Surface interface.
//
// Decoded images are converted to gg image buffers once and reused while
// the same image is drawn. Label faces are built lazily from the Go
// Regular font.
//
// ContextSurface is NOT thread-safe.
type ContextSurface struct {
	dc *gg.Context

	// last converted background
	src image.Image
	buf *gg.ImageBuf

	font    *text.FontSource
	fontErr error
	faces   map[float64]text.Face
}

var (
	_ Surface       = (*ContextSurface)(nil)
	_ ImageReleaser = (*ContextSurface)(nil)
)

// NewContextSurface wraps dc. The context is not owned; closing the
// surface leaves it open.
func NewContextSurface(dc *gg.Context) *ContextSurface {
	return &ContextSurface{dc: dc}
}

// Context returns the wrapped context.
func (s *ContextSurface) Context() *gg.Context { return s.dc }

// SetContext retargets the surface, for example after a canvas resize
// handed out a new context. Cached fonts are kept.
func (s *ContextSurface) SetContext(dc *gg.Context) { s.dc = dc }

// Size returns the context dimensions.
func (s *ContextSurface) Size() (width, height int) {
	return s.dc.Width(), s.dc.Height()
}

// ClearRect writes transparent pixels directly into the target pixmap.
func (s *ContextSurface) ClearRect(x, y, w, h float64) {
	r := image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	)
	s.dc.ResizeTarget().FillRect(r, 0, 0, 0, 0)
}

// FillRect fills a rectangle with c.
func (s *ContextSurface) FillRect(x, y, w, h float64, c RGBA) {
	if c.A <= 0 || w <= 0 || h <= 0 {
		return
	}
	s.dc.SetRGBA(c.R, c.G, c.B, c.A)
	s.dc.DrawRectangle(x, y, w, h)
	if err := s.dc.Fill(); err != nil {
		Logger().Debug("heatmap: fill rect", "err", err)
	}
}

// DrawImage draws img scaled into the target rectangle with bilinear
// sampling.
func (s *ContextSurface) DrawImage(img image.Image, x, y, w, h, opacity float64) {
	// gg treats zero opacity as "unset" and draws fully opaque.
	if img == nil || opacity <= 0 || w <= 0 || h <= 0 {
		return
	}
	if img != s.src {
		s.src = img
		s.buf = gg.ImageBufFromImage(img)
	}
	s.dc.DrawImageEx(s.buf, gg.DrawImageOptions{
		X:             x,
		Y:             y,
		DstWidth:      w,
		DstHeight:     h,
		Interpolation: gg.InterpBilinear,
		Opacity:       math.Min(opacity, 1),
		BlendMode:     gg.BlendNormal,
	})
}

// ReleaseImage drops the cached background conversion.
func (s *ContextSurface) ReleaseImage() {
	s.src, s.buf = nil, nil
}

// DrawCircle fills then strokes a circle.
func (s *ContextSurface) DrawCircle(cx, cy, radius float64, style CircleStyle) {
	if radius <= 0 {
		return
	}
	if style.Fill.A > 0 {
		s.dc.SetRGBA(style.Fill.R, style.Fill.G, style.Fill.B, style.Fill.A)
		s.dc.DrawCircle(cx, cy, radius)
		if err := s.dc.Fill(); err != nil {
			Logger().Debug("heatmap: fill circle", "err", err)
		}
	}
	if style.Stroke.A > 0 && style.LineWidth > 0 {
		s.dc.SetRGBA(style.Stroke.R, style.Stroke.G, style.Stroke.B, style.Stroke.A)
		s.dc.SetLineWidth(style.LineWidth)
		s.dc.DrawCircle(cx, cy, radius)
		if err := s.dc.Stroke(); err != nil {
			Logger().Debug("heatmap: stroke circle", "err", err)
		}
	}
}

// DrawText draws s centered on (cx, cy). The outline is approximated by
// drawing the string at eight offsets before the fill.
func (s *ContextSurface) DrawText(str string, cx, cy float64, style TextStyle) {
	if str == "" {
		return
	}
	face := s.face(style.Size)
	if face == nil {
		return
	}
	s.dc.SetFont(face)

	if style.Stroke.A > 0 && style.StrokeWidth > 0 {
		d := style.StrokeWidth
		s.dc.SetRGBA(style.Stroke.R, style.Stroke.G, style.Stroke.B, style.Stroke.A)
		for _, o := range outlineOffsets {
			s.dc.DrawStringAnchored(str, cx+o[0]*d, cy+o[1]*d, 0.5, 0.5)
		}
	}
	if style.Fill.A > 0 {
		s.dc.SetRGBA(style.Fill.R, style.Fill.G, style.Fill.B, style.Fill.A)
		s.dc.DrawStringAnchored(str, cx, cy, 0.5, 0.5)
	}
}

var outlineOffsets = [8][2]float64{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// face returns a cached face of the given size, loading the font on first
// use. A font that fails to load is reported once and text is skipped.
func (s *ContextSurface) face(size float64) text.Face {
	if s.fontErr != nil {
		return nil
	}
	if s.font == nil {
		src, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			s.fontErr = err
			Logger().Warn("heatmap: label font unavailable", "err", err)
			return nil
		}
		s.font = src
		s.faces = make(map[float64]text.Face)
	}
	if size <= 0 {
		size = DefaultLabelSize
	}
	f, ok := s.faces[size]
	if !ok {
		f = s.font.Face(size)
		s.faces[size] = f
	}
	return f
}

// Close releases the font source and the cached image buffer.
func (s *ContextSurface) Close() error {
	s.ReleaseImage()
	s.faces = nil
	if s.font == nil {
		return nil
	}
	err := s.font.Close()
	s.font = nil
	return err
}
