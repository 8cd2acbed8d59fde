package heatmap

import (
	"errors"
	"math"
	"testing"
)

func TestColorMapper_Endpoints(t *testing.T) {
	m := DefaultColorMapper()

	tests := []struct {
		name      string
		intensity float64
		want      RGBA
	}{
		{"zero", 0, RGBA{0, 1, 1, DefaultMinAlpha}},
		{"negative", -5, RGBA{0, 1, 1, DefaultMinAlpha}},
		{"nan", math.NaN(), RGBA{0, 1, 1, DefaultMinAlpha}},
		{"max", DefaultMaxIntensity, RGBA{1, 0, 0, 1}},
		{"above max", 1000, RGBA{1, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Color(tt.intensity)
			if !colorsClose(got, tt.want) {
				t.Errorf("Color(%v) = %+v, want %+v", tt.intensity, got, tt.want)
			}
		})
	}
}

func colorsClose(a, b RGBA) bool {
	const eps = 1e-9
	return approxEqual(a.R, b.R, eps) && approxEqual(a.G, b.G, eps) &&
		approxEqual(a.B, b.B, eps) && approxEqual(a.A, b.A, eps)
}

func TestColorMapper_SegmentBoundaries(t *testing.T) {
	m := DefaultColorMapper()
	// Intensity whose boosted value is exactly 1/3 lands on the green stop.
	v := math.Pow(1.0/3, 1/DefaultGamma) * DefaultMaxIntensity
	got := m.Color(v)
	if !approxEqual(got.R, 0, 1e-6) || !approxEqual(got.G, 1, 1e-6) || !approxEqual(got.B, 0, 1e-6) {
		t.Errorf("Color at first boundary = %+v, want green", got)
	}
	if !approxEqual(got.A, 1.0/3, 1e-6) {
		t.Errorf("alpha = %v, want 1/3", got.A)
	}
}

func TestColorMapper_Monotone(t *testing.T) {
	for name, m := range map[string]ColorMapper{
		"default": DefaultColorMapper(),
		"legacy":  {MaxIntensity: 10, Gamma: 0.7, MinAlpha: 0.03, Palette: LegacyPalette()},
	} {
		t.Run(name, func(t *testing.T) {
			prev := m.Color(0)
			for i := 1; i <= 1000; i++ {
				c := m.Color(float64(i) / 1000 * m.Max())
				if c.R < prev.R-1e-12 {
					t.Fatalf("red decreased at step %d: %v -> %v", i, prev.R, c.R)
				}
				if c.G > prev.G+1e-12 {
					t.Fatalf("green increased at step %d: %v -> %v", i, prev.G, c.G)
				}
				if c.A < prev.A-1e-12 {
					t.Fatalf("alpha decreased at step %d: %v -> %v", i, prev.A, c.A)
				}
				prev = c
			}
		})
	}
}

func TestColorMapper_AlphaFloor(t *testing.T) {
	m := DefaultColorMapper()
	c := m.Color(1e-9)
	if c.A != DefaultMinAlpha {
		t.Errorf("alpha for faint heat = %v, want floor %v", c.A, DefaultMinAlpha)
	}
}

func TestColorMapper_ZeroValueDefaults(t *testing.T) {
	var m ColorMapper
	m.Palette = DefaultPalette()
	want := DefaultColorMapper().Color(5)
	if got := m.Color(5); !approxEqual(got.R, want.R, 1e-12) || !approxEqual(got.G, want.G, 1e-12) {
		t.Errorf("zero-value mapper Color(5) = %+v, want %+v", got, want)
	}
}

func TestParsePalette(t *testing.T) {
	p, err := ParsePalette([]string{"#000000", "#444444", "#888888", "#ffffff"})
	if err != nil {
		t.Fatalf("ParsePalette() error: %v", err)
	}
	if p[3] != White {
		t.Errorf("last stop = %+v, want white", p[3])
	}

	if _, err := ParsePalette([]string{"#000"}); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("short palette error = %v, want ErrInvalidColor", err)
	}
	if _, err := ParsePalette([]string{"#000", "#111", "#222", "bogus"}); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("bad entry error = %v, want ErrInvalidColor", err)
	}
}

func TestLegacyPalette(t *testing.T) {
	p := LegacyPalette()
	if p[0] != RGB(0, 1, 0) || p[3] != RGB(1, 0, 0) {
		t.Errorf("LegacyPalette endpoints = %+v, %+v", p[0], p[3])
	}
}
