package heatmap

import (
	"fmt"
	"image"
	"strings"
	"testing"
)

// recordingSurface captures draw calls as readable strings.
type recordingSurface struct {
	w, h  int
	calls []string

	fills   []RGBA
	texts   []string
	opacity []float64
}

var _ Surface = (*recordingSurface)(nil)

func newRecordingSurface(w, h int) *recordingSurface {
	return &recordingSurface{w: w, h: h}
}

func (s *recordingSurface) Size() (int, int) { return s.w, s.h }

func (s *recordingSurface) ClearRect(x, y, w, h float64) {
	s.calls = append(s.calls, fmt.Sprintf("clear %g,%g %gx%g", x, y, w, h))
}

func (s *recordingSurface) FillRect(x, y, w, h float64, c RGBA) {
	s.calls = append(s.calls, fmt.Sprintf("fill %g,%g %gx%g", x, y, w, h))
	s.fills = append(s.fills, c)
}

func (s *recordingSurface) DrawImage(_ image.Image, x, y, w, h, opacity float64) {
	s.calls = append(s.calls, fmt.Sprintf("image %g,%g %gx%g", x, y, w, h))
	s.opacity = append(s.opacity, opacity)
}

func (s *recordingSurface) DrawCircle(cx, cy, r float64, _ CircleStyle) {
	s.calls = append(s.calls, fmt.Sprintf("circle %g,%g r%g", cx, cy, r))
}

func (s *recordingSurface) DrawText(str string, cx, cy float64, _ TextStyle) {
	s.calls = append(s.calls, fmt.Sprintf("text %q %g,%g", str, cx, cy))
	s.texts = append(s.texts, str)
}

func (s *recordingSurface) count(prefix string) int {
	n := 0
	for _, c := range s.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func TestRenderer_PassOrder(t *testing.T) {
	g := NewGrid(20, 20, 10)
	g.cells[0] = 4
	bg := image.NewRGBA(image.Rect(0, 0, 4, 4))

	s := newRecordingSurface(20, 20)
	NewRenderer(DefaultLabelStyle()).Render(s, Frame{
		Width: 20, Height: 20,
		Background: bg,
		Grid:       g,
		Colors:     DefaultColorMapper(),
		Clusters:   []Cluster{{X: 5, Y: 5, Count: 3}},
		ShowLabels: true,
	})

	want := []string{
		"clear 0,0 20x20",
		"image 0,0 20x20",
		"fill 0,0 10x10",
		"circle 5,5 r12",
		`text "3" 5,5`,
	}
	if strings.Join(s.calls, "\n") != strings.Join(want, "\n") {
		t.Errorf("calls:\n%s\nwant:\n%s", strings.Join(s.calls, "\n"), strings.Join(want, "\n"))
	}
	if s.opacity[0] != 1 {
		t.Errorf("undimmed opacity = %v, want 1", s.opacity[0])
	}
}

func TestRenderer_Dimmed(t *testing.T) {
	s := newRecordingSurface(10, 10)
	var r Renderer
	r.Render(s, Frame{
		Width: 10, Height: 10,
		Background: image.NewGray(image.Rect(0, 0, 1, 1)),
		Dimmed:     true,
		DimOpacity: 0.35,
	})
	if len(s.opacity) != 1 || s.opacity[0] != 0.35 {
		t.Errorf("dimmed opacity = %v, want [0.35]", s.opacity)
	}
}

func TestRenderer_SkipsZeroCellsAndHiddenLabels(t *testing.T) {
	g := NewGrid(40, 40, 10)
	g.cells[5] = 0.5

	s := newRecordingSurface(40, 40)
	NewRenderer(DefaultLabelStyle()).Render(s, Frame{
		Width: 40, Height: 40,
		Grid:     g,
		Colors:   DefaultColorMapper(),
		Clusters: []Cluster{{X: 15, Y: 15, Count: 1}},
	})
	if got := s.count("fill"); got != 1 {
		t.Errorf("fills = %d, want 1", got)
	}
	if s.count("circle") != 0 || s.count("text") != 0 {
		t.Error("labels drawn while hidden")
	}
	if s.count("image") != 0 {
		t.Error("image drawn without a background")
	}
}

func TestRenderer_ClipsEdgeCells(t *testing.T) {
	// 10x10 surface with 4px cells: the last column and row are 2px wide.
	g := NewGrid(10, 10, 4)
	g.cells[len(g.cells)-1] = 1

	s := newRecordingSurface(10, 10)
	NewRenderer(DefaultLabelStyle()).Render(s, Frame{Width: 10, Height: 10, Grid: g, Colors: DefaultColorMapper()})
	if s.calls[len(s.calls)-1] != "fill 8,8 2x2" {
		t.Errorf("edge cell fill = %q, want clipped to 2x2", s.calls[len(s.calls)-1])
	}
}

func TestRenderer_Legend(t *testing.T) {
	s := newRecordingSurface(400, 300)
	NewRenderer(DefaultLabelStyle()).Render(s, Frame{
		Width: 400, Height: 300,
		Grid:   NewGrid(400, 300, 4),
		Colors: DefaultColorMapper(),
		Legend: true,
	})
	if got := s.count("fill"); got != legendSteps {
		t.Errorf("legend fills = %d, want %d", got, legendSteps)
	}
	if len(s.texts) != 2 || s.texts[0] != "0" || s.texts[1] != "10" {
		t.Errorf("legend labels = %v, want [0 10]", s.texts)
	}
	last := s.fills[len(s.fills)-1]
	if last.R != 1 || last.G != 0 || last.A != 1 {
		t.Errorf("hottest legend step = %+v, want opaque red", last)
	}
}

func TestRenderer_LegendSkippedOnSmallSurface(t *testing.T) {
	s := newRecordingSurface(50, 50)
	NewRenderer(DefaultLabelStyle()).Render(s, Frame{Width: 50, Height: 50, Colors: DefaultColorMapper(), Legend: true})
	if s.count("fill") != 0 {
		t.Error("legend drawn on a surface too small to hold it")
	}
}

func TestRenderer_FormatCount(t *testing.T) {
	var r Renderer
	tests := map[int]string{
		1:       "1",
		999:     "999",
		1000:    "1,000",
		1234567: "1,234,567",
	}
	for n, want := range tests {
		if got := r.FormatCount(n); got != want {
			t.Errorf("FormatCount(%d) = %q, want %q", n, got, want)
		}
	}
}
