// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package heatmap

import "errors"

// Sentinel errors for the heatmap package.
var (
	// ErrUnsupportedFormat is returned when image data is not in a
	// registered format (PNG, JPEG, GIF, BMP, TIFF, WebP).
	ErrUnsupportedFormat = errors.New("heatmap: unsupported image format")

	// ErrEmptyImage is returned when a decoded image has no pixels.
	ErrEmptyImage = errors.New("heatmap: image has zero width or height")

	// ErrInvalidColor is returned when a palette entry cannot be parsed.
	ErrInvalidColor = errors.New("heatmap: invalid color")
)
