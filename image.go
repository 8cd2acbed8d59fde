// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package heatmap

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"os"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageState is the lifecycle of the background image.
type ImageState int

const (
	// ImageNone means no background is shown.
	ImageNone ImageState = iota

	// ImagePending means a load was requested and has not completed.
	ImagePending

	// ImageReady means a background is loaded and fitted.
	ImageReady
)

// String returns the state name.
func (s ImageState) String() string {
	switch s {
	case ImageNone:
		return "none"
	case ImagePending:
		return "pending"
	case ImageReady:
		return "ready"
	default:
		return fmt.Sprintf("ImageState(%d)", int(s))
	}
}

// ImageRequest identifies one background load started by [Map.BeginImage].
// Only the most recent request can complete.
type ImageRequest struct {
	gen uint64
}

// DecodeImage decodes a PNG, JPEG, GIF, BMP, TIFF or WebP image.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(bufio.NewReader(r))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrUnsupportedFormat
		}
		return nil, fmt.Errorf("heatmap: decode image: %w", err)
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w (%s)", ErrEmptyImage, format)
	}
	return img, nil
}

// LoadImageFile decodes the image stored at path.
func LoadImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("heatmap: open image: %w", err)
	}
	defer f.Close()

	img, err := DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// FitSize scales (width, height) to fit within (maxWidth, maxHeight)
// preserving the aspect ratio. Images are never upscaled. Results are
// floored and at least 1.
func FitSize(width, height, maxWidth, maxHeight int) (w, h int) {
	if width <= 0 || height <= 0 {
		return 1, 1
	}
	scale := 1.0
	if maxWidth > 0 {
		scale = math.Min(scale, float64(maxWidth)/float64(width))
	}
	if maxHeight > 0 {
		scale = math.Min(scale, float64(maxHeight)/float64(height))
	}
	w = max(int(math.Floor(float64(width)*scale)), 1)
	h = max(int(math.Floor(float64(height)*scale)), 1)
	return w, h
}

// BeginImage starts a background load. The current background is released
// immediately and the state becomes [ImagePending]. The returned request
// must be passed to [Map.FinishImage] when the load completes.
func (m *Map) BeginImage() ImageRequest {
	m.imageGen++
	m.background = nil
	m.imageState = ImagePending
	return ImageRequest{gen: m.imageGen}
}

// FinishImage completes req with the loaded image or the load error.
//
// On success the image is fitted within the maximum size and the map is
// resized to the fitted dimensions. On failure the error is logged and the
// map continues without a background at its base size. Either way
// accumulated heat is cleared.
//
// Results for anything but the latest request are ignored and FinishImage
// reports false.
func (m *Map) FinishImage(req ImageRequest, img image.Image, err error) bool {
	if req.gen != m.imageGen || m.imageState != ImagePending {
		Logger().Debug("heatmap: stale image result ignored", "request", req.gen, "latest", m.imageGen)
		return false
	}
	if err == nil && img == nil {
		err = ErrEmptyImage
	}
	if err == nil {
		if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
			err = ErrEmptyImage
		}
	}

	if err != nil {
		Logger().Warn("heatmap: background image failed", "err", err)
		m.background = nil
		m.imageState = ImageNone
		m.Resize(m.baseWidth, m.baseHeight)
		return true
	}

	b := img.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), m.opts.maxWidth, m.opts.maxHeight)
	m.background = img
	m.imageState = ImageReady
	m.Resize(w, h)
	Logger().Info("heatmap: background image applied",
		"natural", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
		"fitted", fmt.Sprintf("%dx%d", m.width, m.height))
	return true
}

// LoadBackground synchronously loads the image at path as the background.
// The returned error is informational; on failure the map has already
// fallen back to no background.
func (m *Map) LoadBackground(path string) error {
	req := m.BeginImage()
	img, err := LoadImageFile(path)
	m.FinishImage(req, img, err)
	return err
}

// ClearBackground removes the background image without resizing.
func (m *Map) ClearBackground() {
	m.imageGen++
	m.background = nil
	m.imageState = ImageNone
}

// Background returns the current background image, or nil.
func (m *Map) Background() image.Image { return m.background }
