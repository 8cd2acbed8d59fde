// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package heatmap

import "math"

// Color mapping defaults.
const (
	DefaultMaxIntensity = 10.0
	DefaultGamma        = 0.7
	DefaultMinAlpha     = 0.03
)

// Palette holds the four gradient stops, coolest first.
type Palette [4]RGBA

// DefaultPalette returns the cyan, green, yellow, red ramp. Red never
// decreases and green never increases along it.
func DefaultPalette() Palette {
	return Palette{
		MustHex("#00ffff"),
		MustHex("#00ff00"),
		MustHex("#ffff00"),
		MustHex("#ff0000"),
	}
}

// LegacyPalette returns the plain green to red ramp of the first heatmap
// prototype, spread over four evenly spaced stops.
func LegacyPalette() Palette {
	var p Palette
	for i := range p {
		t := float64(i) / 3
		p[i] = RGB(t, 1-t, 0)
	}
	return p
}

// ParsePalette parses exactly four hex colors, coolest first.
func ParsePalette(hex []string) (Palette, error) {
	var p Palette
	if len(hex) != len(p) {
		return p, ErrInvalidColor
	}
	for i, s := range hex {
		c, err := Hex(s)
		if err != nil {
			return p, err
		}
		p[i] = c
	}
	return p, nil
}

// ColorMapper converts raw intensity into a display color.
//
// The zero value is usable and behaves like [DefaultColorMapper] except
// that a zero Palette maps everything to black.
type ColorMapper struct {
	// MaxIntensity is the intensity shown with the hottest stop.
	// Values <= 0 select DefaultMaxIntensity.
	MaxIntensity float64

	// Gamma is the exponent applied to the normalized intensity. Values
	// below 1 lift faint heat. Values <= 0 select DefaultGamma.
	Gamma float64

	// MinAlpha is the alpha floor so that minimal heat stays visible.
	MinAlpha float64

	// Palette holds the gradient stops.
	Palette Palette
}

// DefaultColorMapper returns a mapper with the package defaults.
func DefaultColorMapper() ColorMapper {
	return ColorMapper{
		MaxIntensity: DefaultMaxIntensity,
		Gamma:        DefaultGamma,
		MinAlpha:     DefaultMinAlpha,
		Palette:      DefaultPalette(),
	}
}

// Max returns the effective maximum intensity.
func (m ColorMapper) Max() float64 {
	if m.MaxIntensity > 0 {
		return m.MaxIntensity
	}
	return DefaultMaxIntensity
}

// Color maps intensity to a color. Intensity is capped at Max for display
// only; intensity <= 0 (and NaN) yields the coolest stop at the alpha floor.
func (m ColorMapper) Color(intensity float64) RGBA {
	boosted := m.boost(intensity)

	segment := int(boosted * 3)
	if segment > 2 {
		segment = 2
	}
	t := boosted*3 - float64(segment)

	from := m.Palette[segment].colorful()
	to := m.Palette[segment+1].colorful()

	alpha := math.Max(boosted, m.MinAlpha)
	return fromColorful(from.BlendRgb(to, t), math.Min(alpha, 1))
}

// boost normalizes intensity into [0, 1] and applies the gamma curve.
func (m ColorMapper) boost(intensity float64) float64 {
	if !(intensity > 0) {
		return 0
	}
	maxIntensity := m.Max()
	normalized := math.Min(intensity, maxIntensity) / maxIntensity

	gamma := m.Gamma
	if gamma <= 0 {
		gamma = DefaultGamma
	}
	return math.Pow(normalized, gamma)
}
