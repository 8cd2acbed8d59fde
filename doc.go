// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package heatmap renders click density maps over a bounded 2D surface.
//
// # Overview
//
// A [Map] owns an intensity grid covering the surface. Every accepted click
// spreads a Gaussian blob of heat over nearby grid cells and is recorded as a
// raw point keyed by its exact pixel. Rendering composes three layers onto a
// [Surface]: an optional (optionally dimmed) background image, the intensity
// grid coloured through a [ColorMapper], and numeric labels produced by
// merging nearby raw points into weighted [Cluster] values.
//
// # Quick Start
//
//	m := heatmap.New(800, 600)
//	m.HandleClick(120, 80)
//	m.HandleClick(124, 82)
//
//	dc := gg.NewContext(m.Width(), m.Height())
//	s := heatmap.NewContextSurface(dc)
//	defer s.Close()
//
//	m.Render(s)
//	_ = dc.SavePNG("heat.png")
//
// # Coordinate System
//
// Surface coordinates are integer pixels with the origin at the top-left.
// A grid cell covers a square of GridSize x GridSize pixels; a pixel maps to
// its cell by integer division.
//
// # Concurrency
//
// A Map is NOT safe for concurrent use. All mutations (clicks, resets,
// resizes, image completions) must be delivered from a single goroutine,
// typically the window event loop. Background image decoding may happen
// elsewhere as long as the result is handed back through [Map.FinishImage]
// on the owning goroutine.
//
// # Logging
//
// The package is silent by default. Call [SetLogger] to receive diagnostics.
package heatmap
