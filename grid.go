// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package heatmap

import (
	"image"
	"iter"
	"slices"
)

// Grid accumulates heat over a discretized surface.
//
// Each cell covers CellSize x CellSize surface pixels. Cells are stored in
// row-major order. Values are never negative and are never clamped; capping
// happens only when mapping to color.
type Grid struct {
	cols, rows int
	cellSize   int
	cells      []float64
}

// NewGrid allocates a zeroed grid covering a width x height pixel surface.
// Dimensions and cell size are clamped to at least 1.
func NewGrid(width, height, cellSize int) *Grid {
	width = max(width, 1)
	height = max(height, 1)
	cellSize = max(cellSize, 1)

	cols := (width + cellSize - 1) / cellSize
	rows := (height + cellSize - 1) / cellSize
	return &Grid{
		cols:     cols,
		rows:     rows,
		cellSize: cellSize,
		cells:    make([]float64, cols*rows),
	}
}

// Cols returns the number of cell columns.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of cell rows.
func (g *Grid) Rows() int { return g.rows }

// CellSize returns the edge length of a cell in pixels.
func (g *Grid) CellSize() int { return g.cellSize }

// Cell returns the value of cell (gx, gy), or 0 outside the grid.
func (g *Grid) Cell(gx, gy int) float64 {
	if !g.inBounds(gx, gy) {
		return 0
	}
	return g.cells[gy*g.cols+gx]
}

// At returns the intensity of the cell containing pixel (px, py),
// or 0 outside the grid.
func (g *Grid) At(px, py int) float64 {
	if px < 0 || py < 0 {
		return 0
	}
	return g.Cell(px/g.cellSize, py/g.cellSize)
}

// CellOf returns the cell containing pixel (px, py). Negative coordinates
// round toward negative infinity so they never alias cell 0.
func (g *Grid) CellOf(px, py int) (gx, gy int) {
	return floorDiv(px, g.cellSize), floorDiv(py, g.cellSize)
}

// CellRect returns the pixel rectangle covered by cell (gx, gy).
func (g *Grid) CellRect(gx, gy int) image.Rectangle {
	x, y := gx*g.cellSize, gy*g.cellSize
	return image.Rect(x, y, x+g.cellSize, y+g.cellSize)
}

// Max returns the largest cell value.
func (g *Grid) Max() float64 {
	return slices.Max(g.cells)
}

// Values returns a copy of all cell values in row-major order.
func (g *Grid) Values() []float64 {
	return slices.Clone(g.cells)
}

// Active yields every cell with a positive value.
func (g *Grid) Active() iter.Seq2[image.Point, float64] {
	return func(yield func(image.Point, float64) bool) {
		for i, v := range g.cells {
			if v <= 0 {
				continue
			}
			if !yield(image.Pt(i%g.cols, i/g.cols), v) {
				return
			}
		}
	}
}

// Reset zeroes every cell.
func (g *Grid) Reset() {
	clear(g.cells)
}

func (g *Grid) inBounds(gx, gy int) bool {
	return gx >= 0 && gy >= 0 && gx < g.cols && gy < g.rows
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
