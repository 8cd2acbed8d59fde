package heatmap

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func TestFitSize(t *testing.T) {
	tests := []struct {
		name             string
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{"fits", 640, 480, 1600, 1200, 640, 480},
		{"no upscale", 10, 10, 1600, 1200, 10, 10},
		{"width bound", 3200, 1200, 1600, 1200, 1600, 600},
		{"height bound", 1000, 2400, 1600, 1200, 500, 1200},
		{"both bound", 4000, 4000, 1600, 1200, 1200, 1200},
		{"floored", 1000, 999, 500, 500, 500, 499},
		{"min one", 10000, 1, 100, 100, 100, 1},
		{"no bounds", 30, 40, 0, 0, 30, 40},
		{"degenerate", 0, 10, 100, 100, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitSize(tt.w, tt.h, tt.maxW, tt.maxH)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("FitSize(%d, %d, %d, %d) = %dx%d, want %dx%d",
					tt.w, tt.h, tt.maxW, tt.maxH, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestDecodeImage(t *testing.T) {
	src := testImage(7, 5)

	encoders := map[string]func(*bytes.Buffer) error{
		"png": func(b *bytes.Buffer) error { return png.Encode(b, src) },
		"bmp": func(b *bytes.Buffer) error { return bmp.Encode(b, src) },
	}
	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := encode(&buf); err != nil {
				t.Fatalf("encode: %v", err)
			}
			img, err := DecodeImage(&buf)
			if err != nil {
				t.Fatalf("DecodeImage() error: %v", err)
			}
			if got := img.Bounds().Size(); got != image.Pt(7, 5) {
				t.Errorf("decoded size = %v, want (7,5)", got)
			}
		})
	}
}

func TestDecodeImage_Unsupported(t *testing.T) {
	_, err := DecodeImage(strings.NewReader("definitely not an image"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("DecodeImage() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadImageFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bg.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, testImage(3, 2)); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	img, err := LoadImageFile(path)
	if err != nil {
		t.Fatalf("LoadImageFile() error: %v", err)
	}
	if img.Bounds().Dx() != 3 {
		t.Errorf("width = %d, want 3", img.Bounds().Dx())
	}

	if _, err := LoadImageFile(filepath.Join(dir, "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}
}

func TestImageLifecycle_Success(t *testing.T) {
	m := New(800, 600, WithMaxSize(400, 400))
	m.HandleClick(10, 10)

	req := m.BeginImage()
	if m.ImageState() != ImagePending {
		t.Fatalf("state = %v, want pending", m.ImageState())
	}
	if !m.FinishImage(req, testImage(800, 200), nil) {
		t.Fatal("FinishImage() = false for the latest request")
	}

	if m.ImageState() != ImageReady || m.Background() == nil {
		t.Errorf("state = %v, background = %v", m.ImageState(), m.Background())
	}
	if m.Width() != 400 || m.Height() != 100 {
		t.Errorf("fitted size = %dx%d, want 400x100", m.Width(), m.Height())
	}
	if m.ClickCount() != 0 {
		t.Error("loading an image must clear clicks")
	}

	s := newRecordingSurface(400, 100)
	m.Render(s)
	if s.count("image 0,0 400x100") != 1 {
		t.Errorf("background not drawn at the fitted size: %v", s.calls)
	}
}

func TestImageLifecycle_BoundedToWindow(t *testing.T) {
	m := New(800, 600, WithMaxSize(800, 600))
	m.FinishImage(m.BeginImage(), testImage(1600, 1200), nil)
	if m.Width() != 800 || m.Height() != 600 {
		t.Errorf("size after 1600x1200 image = %dx%d, want 800x600", m.Width(), m.Height())
	}
	if !m.HandleClick(799, 599) {
		t.Error("click at the window corner rejected")
	}
}

func TestImageLifecycle_Failure(t *testing.T) {
	m := New(640, 480)
	m.FinishImage(m.BeginImage(), testImage(100, 100), nil)
	if m.Width() != 100 {
		t.Fatalf("width = %d, want 100", m.Width())
	}

	req := m.BeginImage()
	if m.Background() != nil {
		t.Error("BeginImage must release the previous background")
	}
	if !m.FinishImage(req, nil, errors.New("decode failed")) {
		t.Fatal("FinishImage() = false for the latest request")
	}
	if m.ImageState() != ImageNone || m.Background() != nil {
		t.Errorf("state = %v after failure, want none", m.ImageState())
	}
	if m.Width() != 640 || m.Height() != 480 {
		t.Errorf("size after failure = %dx%d, want base 640x480", m.Width(), m.Height())
	}
}

func TestImageLifecycle_StaleIgnored(t *testing.T) {
	m := New(640, 480)
	first := m.BeginImage()
	second := m.BeginImage()

	if m.FinishImage(first, testImage(50, 50), nil) {
		t.Error("stale request was applied")
	}
	if m.ImageState() != ImagePending || m.Width() != 640 {
		t.Error("stale request changed state")
	}
	if !m.FinishImage(second, testImage(60, 40), nil) {
		t.Fatal("latest request rejected")
	}
	if m.FinishImage(second, testImage(10, 10), nil) {
		t.Error("completed request applied twice")
	}
	if m.Width() != 60 || m.Height() != 40 {
		t.Errorf("size = %dx%d, want 60x40", m.Width(), m.Height())
	}
}

func TestImageLifecycle_EmptyImage(t *testing.T) {
	m := New(640, 480)
	m.FinishImage(m.BeginImage(), image.NewRGBA(image.Rect(0, 0, 0, 0)), nil)
	if m.ImageState() != ImageNone {
		t.Errorf("state = %v, want none for an empty image", m.ImageState())
	}
}

func TestLoadBackground(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bg.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(120, 90)); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	m := New(800, 600)
	if err := m.LoadBackground(path); err != nil {
		t.Fatalf("LoadBackground() error: %v", err)
	}
	if m.Width() != 120 || m.Height() != 90 || m.ImageState() != ImageReady {
		t.Errorf("state = %+v", m.State())
	}

	if err := m.LoadBackground(filepath.Join(dir, "nope.png")); err == nil {
		t.Error("LoadBackground() of a missing file returned nil")
	}
	if m.ImageState() != ImageNone || m.Width() != 800 {
		t.Errorf("state after failed load = %+v", m.State())
	}

	m.ClearBackground()
	if m.Background() != nil || m.ImageState() != ImageNone {
		t.Error("ClearBackground left an image")
	}
}

func TestImageState_String(t *testing.T) {
	for s, want := range map[ImageState]string{
		ImageNone: "none", ImagePending: "pending", ImageReady: "ready", ImageState(9): "ImageState(9)",
	} {
		if got := s.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
